// Package features provides shared test utilities for UI feature tests.
package features

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/inkworks-labs/inkstudio/internal/studio"
	"github.com/inkworks-labs/inkstudio/internal/ui/features/common"
	"github.com/inkworks-labs/inkstudio/internal/ui/notifier"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Sessions *studio.Store
	Notifier *notifier.Notifier
	Cookies  *sessions.CookieStore
	Resolver *common.Resolver

	t *testing.T
}

// SetupTestFixture creates a session store, notifier and cookie store
// wired into a request resolver.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	cookies := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
	store := studio.NewStore(studio.DefaultSessionTTL)

	return &TestFixture{
		Sessions: store,
		Notifier: notifier.New(),
		Cookies:  cookies,
		Resolver: &common.Resolver{Cookies: cookies, Sessions: store},
		t:        t,
	}
}

// NewSession mints a fresh studio session.
func (f *TestFixture) NewSession() *studio.Session {
	return f.Sessions.Get("")
}

// Request builds a request carrying the session cookie for s, so the
// handler under test resolves to that session instead of minting a new
// one.
func (f *TestFixture) Request(method, target string, body io.Reader, s *studio.Session) *http.Request {
	f.t.Helper()

	req := httptest.NewRequest(method, target, body)

	bakery := httptest.NewRecorder()
	cookie, err := f.Cookies.Get(req, common.CookieName)
	require.NoError(f.t, err)
	cookie.Values["sid"] = s.ID
	require.NoError(f.t, cookie.Save(req, bakery))

	req.Header.Set("Cookie", bakery.Header().Get("Set-Cookie"))
	return req
}
