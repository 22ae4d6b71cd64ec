package studio

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkworks-labs/inkstudio/internal/compare"
	"github.com/inkworks-labs/inkstudio/internal/gallery"
	"github.com/inkworks-labs/inkstudio/internal/tattoo"
)

func TestStore_GetCreatesAndReuses(t *testing.T) {
	st := NewStore(0)

	a := st.Get("")
	require.NotEmpty(t, a.ID)

	b := st.Get(a.ID)
	assert.Same(t, a, b)

	c := st.Get("unknown-id")
	assert.NotSame(t, a, c)
	assert.Equal(t, "unknown-id", c.ID)
	assert.Equal(t, 2, st.Len())
}

func TestStore_EvictIdle(t *testing.T) {
	st := NewStore(time.Minute)
	s := st.Get("")
	require.Equal(t, 1, st.Len())

	s.mu.Lock()
	s.touched = time.Now().Add(-2 * time.Minute)
	s.mu.Unlock()

	st.evictIdle(time.Now())
	assert.Equal(t, 0, st.Len())
}

func TestSession_SetPhotoBuildsPreview(t *testing.T) {
	s := newSession("s1")
	s.SetPhoto([]byte("foo"), "image/png", "me.png")

	p := s.Photo()
	require.NotNil(t, p)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("foo")), p.Preview)
	assert.Equal(t, "me.png", p.Name)
}

func TestSession_SetResultUpdatesGalleryAndFreeze(t *testing.T) {
	s := newSession("s1")
	s.SetPhoto([]byte("photo-a"), "image/png", "a.png")
	beforeA := s.Photo().Preview

	s.SetResult(tattoo.Result{Idea: "idea", ImageBase64: "AAA="})

	// Gallery head is the new result.
	entries, _ := s.GallerySnapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, "AAA=", entries[0].ImageBase64)

	// Freeze fired on the absent->present transition.
	cs := s.CompareState()
	assert.Equal(t, beforeA, cs.FrozenBefore)

	// A newly picked, not-yet-regenerated photo must not move the baseline.
	s.SetPhoto([]byte("photo-b"), "image/png", "b.png")
	cs = s.CompareState()
	assert.Equal(t, beforeA, cs.FrozenBefore)
}

func TestSession_ClearResultAllowsRefreeze(t *testing.T) {
	s := newSession("s1")
	s.SetPhoto([]byte("photo-a"), "image/png", "a.png")
	s.SetResult(tattoo.Result{ImageBase64: "AAA="})

	s.ClearResult()
	s.SetPhoto([]byte("photo-b"), "image/png", "b.png")
	previewB := s.Photo().Preview

	s.SetResult(tattoo.Result{ImageBase64: "BBB="})
	cs := s.CompareState()
	assert.Equal(t, previewB, cs.FrozenBefore)
}

func TestSession_InFlightGuardsDuplicates(t *testing.T) {
	s := newSession("s1")

	require.True(t, s.TryBegin(ActionGenerate))
	assert.False(t, s.TryBegin(ActionGenerate), "second begin while outstanding must fail")
	assert.True(t, s.TryBegin(ActionAlter), "other actions stay available")

	s.End(ActionGenerate)
	assert.True(t, s.TryBegin(ActionGenerate))
}

func TestSession_ResetKeepsGallery(t *testing.T) {
	s := newSession("s1")
	s.SetForm(Form{Style: "traditional", Theme: "dragon"})
	s.SetPhoto([]byte("x"), "image/png", "x.png")
	s.SetCameraActive(true)
	s.SetResult(tattoo.Result{ImageBase64: "AAA="})
	s.SetError("boom")

	s.Reset()

	assert.Equal(t, Form{}, s.Form())
	assert.Nil(t, s.Photo())
	assert.False(t, s.CameraActive())
	assert.Empty(t, s.Error())
	assert.False(t, s.Result().HasImage())

	entries, _ := s.GallerySnapshot()
	assert.Len(t, entries, 1, "gallery survives a form reset")
}

func TestSession_CompareAndGalleryAccessors(t *testing.T) {
	s := newSession("s1")

	s.Compare(func(c *compare.State) {
		c.BeginDrag()
		c.Move(0.2)
	})
	assert.InDelta(t, 0.2, s.CompareState().Position, 1e-9)

	s.SetResult(tattoo.Result{ImageBase64: "AAA="})
	s.Gallery(func(_ *gallery.Gallery, sel *gallery.Selection) {
		sel.Toggle(0)
	})
	_, selected := s.GallerySnapshot()
	assert.True(t, selected[0])
}
