package studio

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	studiostate "github.com/inkworks-labs/inkstudio/internal/studio"
	"github.com/inkworks-labs/inkstudio/internal/tattoo"
	"github.com/inkworks-labs/inkstudio/internal/testutil"
	"github.com/inkworks-labs/inkstudio/internal/ui/features"
)

// testBackend is a stub generation backend counting requests.
type testBackend struct {
	server   *httptest.Server
	requests atomic.Int64
}

func newTestBackend(t *testing.T, result tattoo.Result) *testBackend {
	t.Helper()

	b := &testBackend{}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate-tattoo/", r.URL.Path)
		b.requests.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"idea":         result.Idea,
			"image_base64": result.ImageBase64,
		})
	}))
	t.Cleanup(b.server.Close)
	return b
}

func setupTestHandlers(t *testing.T, backend *testBackend) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	url := ""
	if backend != nil {
		url = backend.server.URL
	}
	h := NewHandlers(fixture.Resolver, tattoo.NewClient(url), fixture.Notifier, testutil.NewTestLogger(t))
	return h, fixture
}

// pngBytes returns a tiny valid PNG.
func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func generateSignals(style string) string {
	payload, _ := json.Marshal(map[string]string{
		"style": style, "theme": "dragon", "colormode": "color", "placement": "forearm",
	})
	return string(payload)
}

func TestHandleStudioPage(t *testing.T) {
	h, _ := setupTestHandlers(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.HandleStudioPage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Studio - InkStudio</title>")
	assert.Contains(t, body, "@get('/updates')")
	assert.Contains(t, body, `id="app"`)
	assert.Contains(t, body, "Generate tattoo")
	assert.Contains(t, body, `action="/photo"`)
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"), "first visit mints a session cookie")
}

func TestHandleGenerate_RequiresPhoto(t *testing.T) {
	backend := newTestBackend(t, tattoo.Result{})
	h, fixture := setupTestHandlers(t, backend)
	s := fixture.NewSession()

	req := fixture.Request(http.MethodPost, "/generate", strings.NewReader(generateSignals("realism")), s)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.HandleGenerate(rec, req)

	assert.Contains(t, rec.Body.String(), "Please select a photo to upload.")
	assert.Equal(t, int64(0), backend.requests.Load(), "validation must not call the backend")

	// Form values are kept even when validation fails.
	assert.Equal(t, "realism", s.Form().Style)
}

func TestHandleGenerate_Success(t *testing.T) {
	backend := newTestBackend(t, tattoo.Result{Idea: "a dragon", ImageBase64: "QUFB"})
	h, fixture := setupTestHandlers(t, backend)

	s := fixture.NewSession()
	s.SetPhoto(pngBytes(t), "image/png", "me.png")

	req := fixture.Request(http.MethodPost, "/generate", strings.NewReader(generateSignals("japanese")), s)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.HandleGenerate(rec, req)

	assert.Equal(t, int64(1), backend.requests.Load())
	assert.Equal(t, "a dragon", s.Result().Idea)
	assert.Empty(t, s.Error())

	entries, _ := s.GallerySnapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, "QUFB", entries[0].ImageBase64)

	// The slider froze the photo as its baseline.
	assert.NotEmpty(t, s.CompareState().FrozenBefore)

	body := rec.Body.String()
	assert.Contains(t, body, "a dragon")
	assert.Contains(t, body, "compare-slider")
}

func TestHandleGenerate_BackendUnreachable(t *testing.T) {
	h, fixture := setupTestHandlers(t, nil)
	// Point at a closed port.
	h.client = tattoo.NewClient("http://127.0.0.1:1")

	s := fixture.NewSession()
	s.SetPhoto(pngBytes(t), "image/png", "me.png")

	req := fixture.Request(http.MethodPost, "/generate", strings.NewReader(generateSignals("tribal")), s)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.HandleGenerate(rec, req)

	assert.NotEmpty(t, s.Error())
	assert.False(t, s.Result().HasImage())
	assert.Contains(t, rec.Body.String(), "error-banner")
}

func TestHandlePhoto_Upload(t *testing.T) {
	h, fixture := setupTestHandlers(t, nil)
	s := fixture.NewSession()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("photo", "holiday.png")
	require.NoError(t, err)
	_, err = part.Write(pngBytes(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := fixture.Request(http.MethodPost, "/photo", &body, s)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	h.HandlePhoto(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	photo := s.Photo()
	require.NotNil(t, photo)
	assert.Equal(t, "holiday.png", photo.Name)
	assert.Equal(t, "image/png", photo.MimeType)
	assert.True(t, strings.HasPrefix(photo.Preview, "data:image/png;base64,"))
}

func TestHandlePhoto_RejectsNonImage(t *testing.T) {
	h, fixture := setupTestHandlers(t, nil)
	s := fixture.NewSession()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("photo", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("not an image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := fixture.Request(http.MethodPost, "/photo", &body, s)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	h.HandlePhoto(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Nil(t, s.Photo())
	assert.Contains(t, s.Error(), "not a usable image")
}

func TestHandleSnapshot(t *testing.T) {
	h, fixture := setupTestHandlers(t, nil)
	s := fixture.NewSession()
	s.SetCameraActive(true)

	frame := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t))
	payload, _ := json.Marshal(map[string]string{"frame": frame})

	req := fixture.Request(http.MethodPost, "/snapshot", strings.NewReader(string(payload)), s)
	rec := httptest.NewRecorder()

	h.HandleSnapshot(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, s.Photo())
	assert.Equal(t, "camera.png", s.Photo().Name)
	assert.False(t, s.CameraActive(), "capture turns the camera off")
}

func TestHandleSnapshot_BadFrame(t *testing.T) {
	h, fixture := setupTestHandlers(t, nil)
	s := fixture.NewSession()

	payload, _ := json.Marshal(map[string]string{"frame": "data:image/png;base64,zzzz"})
	req := fixture.Request(http.MethodPost, "/snapshot", strings.NewReader(string(payload)), s)
	rec := httptest.NewRecorder()

	h.HandleSnapshot(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, s.Photo())
	assert.NotEmpty(t, s.Error())
}

func TestHandleCameraToggle(t *testing.T) {
	h, fixture := setupTestHandlers(t, nil)
	s := fixture.NewSession()

	req := fixture.Request(http.MethodPost, "/camera/toggle", nil, s)
	rec := httptest.NewRecorder()
	h.HandleCameraToggle(rec, req)

	assert.True(t, s.CameraActive())
	assert.Contains(t, rec.Body.String(), "camera-video")

	req = fixture.Request(http.MethodPost, "/camera/toggle", nil, s)
	rec = httptest.NewRecorder()
	h.HandleCameraToggle(rec, req)

	assert.False(t, s.CameraActive())
}

func TestHandleCameraError(t *testing.T) {
	h, fixture := setupTestHandlers(t, nil)
	s := fixture.NewSession()
	s.SetCameraActive(true)

	payload := `{"message": "Permission denied"}`
	req := fixture.Request(http.MethodPost, "/camera/error", strings.NewReader(payload), s)
	rec := httptest.NewRecorder()

	h.HandleCameraError(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Camera error: Permission denied", s.Error())
	assert.False(t, s.CameraActive())
}

func TestHandleReset_KeepsGallery(t *testing.T) {
	h, fixture := setupTestHandlers(t, nil)

	s := fixture.NewSession()
	s.SetForm(studiostate.Form{Style: "realism"})
	s.SetPhoto(pngBytes(t), "image/png", "me.png")
	s.SetResult(tattoo.Result{Idea: "rose", ImageBase64: "QUFB"})

	req := fixture.Request(http.MethodPost, "/reset", nil, s)
	rec := httptest.NewRecorder()

	h.HandleReset(rec, req)

	assert.Empty(t, s.Form().Style)
	assert.Nil(t, s.Photo())
	assert.False(t, s.Result().HasImage())

	entries, _ := s.GallerySnapshot()
	assert.Len(t, entries, 1, "reset must not clear the gallery")
	assert.Contains(t, rec.Body.String(), "gallery")
}

func TestHandleUpdates_RerendersOnBroadcast(t *testing.T) {
	h, fixture := setupTestHandlers(t, nil)
	s := fixture.NewSession()
	s.SetError("something went wrong")

	req := fixture.Request(http.MethodGet, "/updates", nil, s)
	ctx, cancel := context.WithTimeout(req.Context(), 300*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.HandleUpdates(rec, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	fixture.Notifier.Broadcast(s.ID)

	<-done

	body := rec.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, "something went wrong")
}
