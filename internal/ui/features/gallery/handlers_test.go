package gallery

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkworks-labs/inkstudio/internal/studio"
	"github.com/inkworks-labs/inkstudio/internal/tattoo"
	"github.com/inkworks-labs/inkstudio/internal/testutil"
	"github.com/inkworks-labs/inkstudio/internal/ui/features"
)

func setupTestRouter(t *testing.T) (chi.Router, *features.TestFixture, *studio.Session) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	router := chi.NewRouter()
	SetupRoutes(router, fixture.Resolver, testutil.NewTestLogger(t))

	return router, fixture, fixture.NewSession()
}

func b64(data string) string {
	return base64.StdEncoding.EncodeToString([]byte(data))
}

func TestHandleToggle(t *testing.T) {
	router, fixture, s := setupTestRouter(t)
	s.SetResult(tattoo.Result{Idea: "rose", ImageBase64: b64("png-bytes")})

	toggle := func(target string) *httptest.ResponseRecorder {
		req := fixture.Request(http.MethodPost, target, nil, s)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := toggle("/gallery/toggle/0")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "selected")

	_, selected := s.GallerySnapshot()
	assert.True(t, selected[0])

	// Toggling again deselects.
	toggle("/gallery/toggle/0")
	_, selected = s.GallerySnapshot()
	assert.False(t, selected[0])
}

func TestHandleToggle_TextOnlyEntryNotSelectable(t *testing.T) {
	router, fixture, s := setupTestRouter(t)
	s.SetResult(tattoo.Result{Idea: "just an idea, no image"})

	req := fixture.Request(http.MethodPost, "/gallery/toggle/0", nil, s)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	_, selected := s.GallerySnapshot()
	assert.False(t, selected[0])
}

func TestHandleToggle_OutOfRangeIndex(t *testing.T) {
	router, fixture, s := setupTestRouter(t)
	s.SetResult(tattoo.Result{ImageBase64: b64("png")})

	req := fixture.Request(http.MethodPost, "/gallery/toggle/9", nil, s)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	_, selected := s.GallerySnapshot()
	assert.False(t, selected[0])
	assert.False(t, selected[9])
}

func TestHandleDownloadOne(t *testing.T) {
	router, fixture, s := setupTestRouter(t)
	s.SetResult(tattoo.Result{ImageBase64: b64("png-bytes")})

	req := fixture.Request(http.MethodGet, "/gallery/download/0", nil, s)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "tattoo-1.png")
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestHandleDownloadOne_MissingEntry(t *testing.T) {
	router, fixture, s := setupTestRouter(t)

	req := fixture.Request(http.MethodGet, "/gallery/download/0", nil, s)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDownloadSelected_EmptySelection(t *testing.T) {
	router, fixture, s := setupTestRouter(t)
	s.SetResult(tattoo.Result{ImageBase64: b64("png")})

	req := fixture.Request(http.MethodGet, "/gallery/download", nil, s)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandleDownloadSelected_Zip(t *testing.T) {
	router, fixture, s := setupTestRouter(t)

	// Newest first: index 0 is "second", index 1 is "first".
	s.SetResult(tattoo.Result{ImageBase64: b64("first")})
	s.SetResult(tattoo.Result{ImageBase64: b64("second")})

	for _, target := range []string{"/gallery/toggle/0", "/gallery/toggle/1"} {
		req := fixture.Request(http.MethodPost, target, nil, s)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	req := fixture.Request(http.MethodGet, "/gallery/download", nil, s)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	names := []string{zr.File[0].Name, zr.File[1].Name}
	assert.Contains(t, names, "tattoo-1.png")
	assert.Contains(t, names, "tattoo-2.png")
}

func TestView(t *testing.T) {
	fixture := features.SetupTestFixture(t)
	s := fixture.NewSession()

	assert.Empty(t, View(s).Entries)

	s.SetResult(tattoo.Result{Idea: "koi", ImageBase64: b64("png")})

	v := View(s)
	require.Len(t, v.Entries, 1)
	assert.Equal(t, "koi", v.Entries[0].Idea)
	assert.Contains(t, v.Entries[0].Preview, "data:image/png;base64,")
	assert.Equal(t, 0, v.SelectedCount)
}
