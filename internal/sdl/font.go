package sdl

import (
	"image"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font is an opened TrueType font at a fixed point size. Lua sees fonts as
// opaque handles; every read goes through the functions below.
type Font struct {
	face font.Face
	size int
}

var (
	ttfMu   sync.Mutex
	ttfInit bool
)

// InitTTF initializes the font subsystem.
func InitTTF() error {
	ttfMu.Lock()
	ttfInit = true
	ttfMu.Unlock()
	return nil
}

// QuitTTF shuts down the font subsystem.
func QuitTTF() {
	ttfMu.Lock()
	ttfInit = false
	ttfMu.Unlock()
}

// WasInitTTF reports whether the font subsystem is initialized.
func WasInitTTF() bool {
	ttfMu.Lock()
	defer ttfMu.Unlock()
	return ttfInit
}

// OpenFont loads a TrueType font file at the given point size.
func OpenFont(path string, size int) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, SetError("OpenFont: %v", err)
	}
	return OpenFontData(data, size)
}

// OpenFontData parses TrueType data at the given point size.
func OpenFontData(data []byte, size int) (*Font, error) {
	if size <= 0 {
		return nil, SetError("OpenFont: invalid size %d", size)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, SetError("OpenFont: %v", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, SetError("OpenFont: %v", err)
	}
	return &Font{face: face, size: size}, nil
}

// DefaultFont opens the bundled Go Regular face at the given point size.
func DefaultFont(size int) (*Font, error) {
	return OpenFontData(goregular.TTF, size)
}

// Height returns the font's line height in pixels.
func (f *Font) Height() int32 {
	m := f.face.Metrics()
	return int32((m.Ascent + m.Descent).Ceil())
}

// SizeText measures the rendered width and height of text in pixels.
func SizeText(f *Font, text string) (int32, int32, error) {
	if f == nil {
		return 0, 0, SetError("SizeText: nil font")
	}
	d := font.Drawer{Face: f.face}
	w := int32(d.MeasureString(text).Ceil())
	return w, f.Height(), nil
}

// RenderText draws text into a freshly allocated surface. The surface is
// owned by this package like any other; the caller receives a pointer.
func RenderText(f *Font, text string, c Color) (*Surface, error) {
	if f == nil {
		return nil, SetError("RenderText: nil font")
	}
	w, h, err := SizeText(f, text)
	if err != nil {
		return nil, err
	}
	if w <= 0 {
		w = 1
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(w), int(h)))
	ascent := f.face.Metrics().Ascent
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: f.face,
		Dot:  fixed.Point26_6{X: 0, Y: ascent},
	}
	d.DrawString(text)

	s, err := CreateRGBSurface(SWSURFACE, w, h, 32)
	if err != nil {
		return nil, err
	}
	// Tint the white glyph mask with the requested color, keeping coverage
	// as alpha.
	for i := 0; i < len(img.Pix); i += 4 {
		cov := uint32(img.Pix[i+3])
		s.Pixels[i] = byte(uint32(c.R) * cov / 255)
		s.Pixels[i+1] = byte(uint32(c.G) * cov / 255)
		s.Pixels[i+2] = byte(uint32(c.B) * cov / 255)
		s.Pixels[i+3] = byte(uint32(c.A) * cov / 255)
	}
	return s, nil
}
