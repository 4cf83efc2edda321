package sdl

import "sync/atomic"

// surfaceFrees counts FreeSurface calls. Tests use it to prove that dropping
// Lua handles never frees the underlying surface.
var surfaceFrees atomic.Int64

// FreeCount returns the number of surfaces freed since startup.
func FreeCount() int64 {
	return surfaceFrees.Load()
}

// CreateRGBSurface allocates a new 32-bit surface with its clip rectangle
// covering the whole surface.
func CreateRGBSurface(flags uint32, w, h, bpp int32) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, SetError("CreateRGBSurface: invalid size %dx%d", w, h)
	}
	if bpp != 0 && bpp != 32 {
		return nil, SetError("CreateRGBSurface: unsupported depth %d", bpp)
	}
	s := &Surface{
		Flags:  flags,
		Format: newPixelFormat(),
		W:      w,
		H:      h,
		Pitch:  w * 4,
		Pixels: make([]byte, int(w)*int(h)*4),
	}
	s.ClipRect = s.Bounds()
	return s, nil
}

// FreeSurface releases a surface's pixel storage. Existing pointers to the
// Surface struct stay valid but read an empty surface.
func FreeSurface(s *Surface) {
	if s == nil {
		return
	}
	s.Pixels = nil
	surfaceFrees.Add(1)
}

// SetClipRect sets the clip rectangle, clamped to the surface bounds.
// A nil rect restores the full-surface clip.
func SetClipRect(s *Surface, r *Rect) {
	if r == nil {
		s.ClipRect = s.Bounds()
		return
	}
	s.ClipRect = intersect(*r, s.Bounds())
}

// MapRGB packs a color into the surface's pixel value, with opaque alpha.
func MapRGB(s *Surface, r, g, b uint8) uint32 {
	return MapRGBA(s, r, g, b, 0xFF)
}

// MapRGBA packs a color into the surface's pixel value.
func MapRGBA(s *Surface, r, g, b, a uint8) uint32 {
	f := s.Format
	return uint32(r)<<f.Rshift | uint32(g)<<f.Gshift | uint32(b)<<f.Bshift | uint32(a)<<f.Ashift
}

// SetColorKey sets or clears the transparent pixel value used by blits.
func SetColorKey(s *Surface, flag uint32, key uint32) {
	if flag&SRCCOLORKEY != 0 {
		s.Flags |= SRCCOLORKEY
		s.Format.Colorkey = key
		return
	}
	s.Flags &^= SRCCOLORKEY
	s.Format.Colorkey = 0
}

// SetAlpha sets or clears the per-surface alpha used by blits.
func SetAlpha(s *Surface, flag uint32, alpha uint8) {
	if flag&SRCALPHA != 0 {
		s.Flags |= SRCALPHA
		s.Format.Alpha = alpha
		return
	}
	s.Flags &^= SRCALPHA
	s.Format.Alpha = 0xFF
}

// pixelAt returns the byte offset of (x, y).
func (s *Surface) pixelAt(x, y int32) int {
	return int(y)*int(s.Pitch) + int(x)*4
}

// FillRect fills a rectangle with a pixel value obtained from MapRGB or
// MapRGBA. A nil rect fills the whole surface. The fill is clipped to the
// surface's clip rectangle.
func FillRect(s *Surface, r *Rect, pixel uint32) error {
	if s == nil {
		return SetError("FillRect: nil surface")
	}
	if s.Pixels == nil {
		return SetError("FillRect: surface has been freed")
	}
	area := s.Bounds()
	if r != nil {
		area = *r
	}
	area = intersect(area, s.ClipRect)
	if area.Empty() {
		return nil
	}
	f := s.Format
	pr := byte(pixel >> f.Rshift)
	pg := byte(pixel >> f.Gshift)
	pb := byte(pixel >> f.Bshift)
	pa := byte(pixel >> f.Ashift)
	for y := area.Y; y < area.Y+area.H; y++ {
		off := s.pixelAt(area.X, y)
		for x := int32(0); x < area.W; x++ {
			s.Pixels[off] = pr
			s.Pixels[off+1] = pg
			s.Pixels[off+2] = pb
			s.Pixels[off+3] = pa
			off += 4
		}
	}
	return nil
}

// BlitSurface copies a region of src onto dst. A nil srcRect means the whole
// source; a nil dstRect means the destination origin. Honors the
// destination's clip rectangle, the source colorkey (SRCCOLORKEY) and the
// source per-surface alpha (SRCALPHA).
func BlitSurface(src *Surface, srcRect *Rect, dst *Surface, dstRect *Rect) error {
	if src == nil || dst == nil {
		return SetError("BlitSurface: nil surface")
	}
	if src.Pixels == nil || dst.Pixels == nil {
		return SetError("BlitSurface: surface has been freed")
	}

	sr := src.Bounds()
	if srcRect != nil {
		sr = intersect(*srcRect, src.Bounds())
	}
	if sr.Empty() {
		return nil
	}

	var dx, dy int32
	if dstRect != nil {
		dx, dy = dstRect.X, dstRect.Y
	}
	dr := intersect(Rect{X: dx, Y: dy, W: sr.W, H: sr.H}, dst.ClipRect)
	if dr.Empty() {
		return nil
	}
	// Shift the source region by however much clipping moved the destination.
	sr.X += dr.X - dx
	sr.Y += dr.Y - dy

	keyed := src.Flags&SRCCOLORKEY != 0
	key := src.Format.Colorkey
	alpha := uint32(0xFF)
	if src.Flags&SRCALPHA != 0 {
		alpha = uint32(src.Format.Alpha)
	}

	for y := int32(0); y < dr.H; y++ {
		so := src.pixelAt(sr.X, sr.Y+y)
		do := dst.pixelAt(dr.X, dr.Y+y)
		for x := int32(0); x < dr.W; x++ {
			r8, g8, b8, a8 := src.Pixels[so], src.Pixels[so+1], src.Pixels[so+2], src.Pixels[so+3]
			if keyed {
				f := src.Format
				pix := uint32(r8)<<f.Rshift | uint32(g8)<<f.Gshift | uint32(b8)<<f.Bshift
				if pix == key&^f.Amask {
					so += 4
					do += 4
					continue
				}
			}
			if alpha == 0xFF {
				dst.Pixels[do] = r8
				dst.Pixels[do+1] = g8
				dst.Pixels[do+2] = b8
				dst.Pixels[do+3] = a8
			} else {
				dst.Pixels[do] = blend(r8, dst.Pixels[do], alpha)
				dst.Pixels[do+1] = blend(g8, dst.Pixels[do+1], alpha)
				dst.Pixels[do+2] = blend(b8, dst.Pixels[do+2], alpha)
				dst.Pixels[do+3] = blend(a8, dst.Pixels[do+3], alpha)
			}
			so += 4
			do += 4
		}
	}
	return nil
}

func blend(src, dst byte, alpha uint32) byte {
	return byte((uint32(src)*alpha + uint32(dst)*(255-alpha)) / 255)
}
