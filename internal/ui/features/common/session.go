// Package common provides shared plumbing for UI features: session
// resolution and datastar helpers.
package common

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/inkworks-labs/inkstudio/internal/studio"
)

// CookieName is the browser cookie carrying the studio session ID.
const CookieName = "inkstudio"

// Resolver maps an incoming request to its studio session, creating
// both the session and its cookie on first contact.
type Resolver struct {
	Cookies  sessions.Store
	Sessions *studio.Store
}

// Session returns the studio session for the request. A new session ID
// is written back to the cookie when one was minted.
func (r *Resolver) Session(w http.ResponseWriter, req *http.Request) *studio.Session {
	// A decode error yields a fresh cookie session; that is fine here.
	cookie, _ := r.Cookies.Get(req, CookieName)

	id, _ := cookie.Values["sid"].(string)
	s := r.Sessions.Get(id)
	if id != s.ID {
		cookie.Values["sid"] = s.ID
		_ = cookie.Save(req, w)
	}
	return s
}
