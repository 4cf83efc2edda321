package sdl

import (
	"image"
	"image/draw"
	"os"

	"golang.org/x/image/bmp"
)

// LoadBMP decodes a BMP file into a new surface.
func LoadBMP(path string) (*Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, SetError("LoadBMP: %v", err)
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		return nil, SetError("LoadBMP: %v", err)
	}

	b := img.Bounds()
	s, err := CreateRGBSurface(SWSURFACE, int32(b.Dx()), int32(b.Dy()), 32)
	if err != nil {
		return nil, err
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	// NRGBA rows are RGBA byte quads, the surface's native layout.
	for y := 0; y < b.Dy(); y++ {
		copy(s.Pixels[y*int(s.Pitch):(y+1)*int(s.Pitch)], nrgba.Pix[y*nrgba.Stride:y*nrgba.Stride+b.Dx()*4])
	}
	return s, nil
}

// SaveBMP encodes a surface to a BMP file.
func SaveBMP(s *Surface, path string) error {
	if s == nil || s.Pixels == nil {
		return SetError("SaveBMP: nil or freed surface")
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, int(s.W), int(s.H)))
	for y := 0; y < int(s.H); y++ {
		copy(nrgba.Pix[y*nrgba.Stride:y*nrgba.Stride+int(s.W)*4], s.Pixels[y*int(s.Pitch):y*int(s.Pitch)+int(s.W)*4])
	}

	f, err := os.Create(path)
	if err != nil {
		return SetError("SaveBMP: %v", err)
	}
	defer f.Close()

	if err := bmp.Encode(f, nrgba); err != nil {
		return SetError("SaveBMP: %v", err)
	}
	return nil
}
