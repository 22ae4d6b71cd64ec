package gallery

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkworks-labs/inkstudio/internal/tattoo"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestGallery_NewestFirst(t *testing.T) {
	var g Gallery
	g.Add(tattoo.Result{Idea: "first"})
	g.Add(tattoo.Result{Idea: "second"})
	g.Add(tattoo.Result{Idea: "third"})

	entries := g.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Idea)
	assert.Equal(t, "first", entries[2].Idea)
}

func TestGallery_Entry(t *testing.T) {
	var g Gallery
	g.Add(tattoo.Result{Idea: "only"})

	got, ok := g.Entry(0)
	require.True(t, ok)
	assert.Equal(t, "only", got.Idea)

	_, ok = g.Entry(1)
	assert.False(t, ok)
	_, ok = g.Entry(-1)
	assert.False(t, ok)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "tattoo-1.png", FileName(0))
	assert.Equal(t, "tattoo-12.png", FileName(11))
}

func TestGallery_Decode(t *testing.T) {
	var g Gallery
	g.Add(tattoo.Result{ImageBase64: b64("png-bytes")})
	g.Add(tattoo.Result{Idea: "text only"})

	data, err := g.Decode(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	_, err = g.Decode(0)
	assert.Error(t, err, "entry without image data must not decode")

	_, err = g.Decode(5)
	assert.Error(t, err)
}

func TestGallery_DecodeToleratesDataURL(t *testing.T) {
	var g Gallery
	g.Add(tattoo.Result{ImageBase64: "data:image/png;base64," + b64("x")})

	data, err := g.Decode(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)
}

func TestGallery_Archive(t *testing.T) {
	var g Gallery
	g.Add(tattoo.Result{ImageBase64: b64("older")}) // ends at index 1
	g.Add(tattoo.Result{ImageBase64: b64("newer")}) // index 0

	var buf bytes.Buffer
	require.NoError(t, g.Archive(&buf, []int{0, 1, 99}))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2, "undecodable index must be skipped")

	names := []string{zr.File[0].Name, zr.File[1].Name}
	assert.Contains(t, names, "tattoo-1.png")
	assert.Contains(t, names, "tattoo-2.png")
}

func TestSelection_ToggleIdempotentUnderDoubleToggle(t *testing.T) {
	s := NewSelection()
	s.Toggle(3)
	require.True(t, s.Selected(3))

	// Double-toggle of another index leaves the set as it was.
	s.Toggle(1)
	s.Toggle(1)
	assert.False(t, s.Selected(1))
	assert.True(t, s.Selected(3))
	assert.Equal(t, 1, s.Count())
}

func TestSelection_Clear(t *testing.T) {
	s := NewSelection()
	s.Toggle(0)
	s.Toggle(2)
	require.Equal(t, 2, s.Count())

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Indices())
}
