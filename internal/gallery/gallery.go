// Package gallery holds the in-memory session gallery of generated
// designs and the selection set driving bulk downloads. Nothing here is
// persisted: the gallery lives and dies with its session.
package gallery

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/inkworks-labs/inkstudio/internal/imaging"
	"github.com/inkworks-labs/inkstudio/internal/tattoo"
)

// Gallery is an ordered, append-only list of results, newest first.
// Callers serialize access.
type Gallery struct {
	entries []tattoo.Result
}

// Add prepends a result so index 0 is always the newest entry.
func (g *Gallery) Add(res tattoo.Result) {
	g.entries = append([]tattoo.Result{res}, g.entries...)
}

// Entries returns the gallery contents, newest first.
func (g *Gallery) Entries() []tattoo.Result {
	return g.entries
}

// Len returns the number of entries.
func (g *Gallery) Len() int {
	return len(g.entries)
}

// Entry returns the entry at index i.
func (g *Gallery) Entry(i int) (tattoo.Result, bool) {
	if i < 0 || i >= len(g.entries) {
		return tattoo.Result{}, false
	}
	return g.entries[i], true
}

// FileName returns the download name for entry i: tattoo-<i+1>.png.
func FileName(i int) string {
	return fmt.Sprintf("tattoo-%d.png", i+1)
}

// Decode returns the PNG bytes of entry i. Entries without image data
// or with undecodable payloads return an error.
func (g *Gallery) Decode(i int) ([]byte, error) {
	entry, ok := g.Entry(i)
	if !ok {
		return nil, fmt.Errorf("no gallery entry at index %d", i)
	}
	if !entry.HasImage() {
		return nil, fmt.Errorf("gallery entry %d has no image data", i)
	}
	return imaging.DecodeBase64Image(entry.ImageBase64)
}

// Archive writes a zip containing the decodable entries among indices,
// each under its FileName. Indices that cannot be decoded are skipped;
// the archive covers only entries present at invocation time.
func (g *Gallery) Archive(w io.Writer, indices []int) error {
	zw := zip.NewWriter(w)
	for _, i := range indices {
		data, err := g.Decode(i)
		if err != nil {
			continue
		}
		f, err := zw.Create(FileName(i))
		if err != nil {
			return fmt.Errorf("writing archive: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing archive: %w", err)
		}
	}
	return zw.Close()
}

// Selection is the set of gallery indices marked for download.
type Selection struct {
	indices map[int]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{indices: make(map[int]struct{})}
}

// Toggle flips membership of index i. Symmetric: toggling twice
// restores the prior state.
func (s *Selection) Toggle(i int) {
	if _, ok := s.indices[i]; ok {
		delete(s.indices, i)
		return
	}
	s.indices[i] = struct{}{}
}

// Selected reports whether index i is in the set.
func (s *Selection) Selected(i int) bool {
	_, ok := s.indices[i]
	return ok
}

// Count returns the selection size.
func (s *Selection) Count() int {
	return len(s.indices)
}

// Indices returns the selected indices in unspecified order.
func (s *Selection) Indices() []int {
	out := make([]int, 0, len(s.indices))
	for i := range s.indices {
		out = append(out, i)
	}
	return out
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.indices = make(map[int]struct{})
}
