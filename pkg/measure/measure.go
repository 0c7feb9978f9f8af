// Package measure implements [pielabel.Measurer] for label text.
//
// [Face] measures with real glyph advances from the embedded font. [Approx]
// estimates extents from a fixed per-character ratio and needs no font at
// all; it is what the HTTP server falls back to when a face cannot be built.
package measure

import (
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/pielabel/pkg/fonts"
	"github.com/matzehuels/pielabel/pkg/geom"
	"github.com/matzehuels/pielabel/pkg/pielabel"
)

const (
	// CharWidthRatio is the average advance of one character relative to
	// the font size.
	CharWidthRatio = 0.55
	// HeightRatio is the line box height relative to the font size.
	HeightRatio = 1.0
)

// Approx estimates text extents without font data.
type Approx struct{}

// Measure implements [pielabel.Measurer].
func (Approx) Measure(row pielabel.TextRow) geom.Rect {
	n := utf8.RuneCountInString(row.Text)
	return pielabel.BoxFor(row, float64(n)*row.FontSize*CharWidthRatio, row.FontSize*HeightRatio)
}

// Face measures text with glyph advances from the embedded font. Faces are
// built lazily per font size and cached. A Face is safe for concurrent use.
type Face struct {
	mu    sync.Mutex
	faces map[float64]font.Face
	// newFace is swapped in tests.
	newFace func(size float64) (font.Face, error)
}

// NewFace returns a measurer backed by [fonts.NewFace].
func NewFace() *Face {
	return &Face{faces: make(map[float64]font.Face), newFace: fonts.NewFace}
}

// Measure implements [pielabel.Measurer]. Rows whose face cannot be built
// are measured with [Approx].
func (f *Face) Measure(row pielabel.TextRow) geom.Rect {
	f.mu.Lock()
	defer f.mu.Unlock()

	face, err := f.faceLocked(row.FontSize)
	if err != nil {
		log.Warn("font face unavailable, estimating text size", "size", row.FontSize, "error", err)
		return Approx{}.Measure(row)
	}
	m := face.Metrics()
	width := toFloat(font.MeasureString(face, row.Text))
	height := toFloat(m.Ascent + m.Descent)
	return pielabel.BoxFor(row, width, height)
}

func (f *Face) faceLocked(size float64) (font.Face, error) {
	if face, ok := f.faces[size]; ok {
		return face, nil
	}
	face, err := f.newFace(size)
	if err != nil {
		return nil, err
	}
	f.faces[size] = face
	return face, nil
}

// Close releases all cached faces.
func (f *Face) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for size, face := range f.faces {
		face.Close()
		delete(f.faces, size)
	}
	return nil
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

var (
	_ pielabel.Measurer = Approx{}
	_ pielabel.Measurer = (*Face)(nil)
)
