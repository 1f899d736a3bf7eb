package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
	"testing"
)

func TestFrame(t *testing.T) {
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(256, 32),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			p := NewFrame(test.X, test.Y)

			if v := p.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected frame size %s, got %s", test, v)
			}
			if v := p.ColorModel(); v != XRGBModel {
				it.Errorf("expected XRGB color model, got %T", v)
			}
			if len(p.Pix) != test.X*test.Y {
				it.Errorf("expected %d pixels, got %d", test.X*test.Y, len(p.Pix))
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						want := RGB(uint8(x), uint8(y), uint8(x+y))
						p.Set(x, y, want)
						if v := p.At(x, y); v != want {
							itt.Fatalf("expected pixel at (%d,%d) to be %v, got %v", x, y, want, v)
						}
					}
				}
			})

			it.Run("out-of-bounds", func(itt *testing.T) {
				p.Set(-1, -1, White)
				p.Set(test.X, test.Y, White)
				if v := p.At(-1, -1); v != color.Transparent {
					itt.Errorf("expected transparent pixel outside bounds, got %v", v)
				}
			})
		})
	}
}

func TestFrameFill(t *testing.T) {
	p := NewFrame(4, 3)
	p.Fill(RGB(0xaa, 0xbb, 0xcc))
	for i, v := range p.Pix {
		if v != 0xaabbcc {
			t.Fatalf("expected pixel %d to be 0xaabbcc, got %#06x", i, v)
		}
	}
	p.Clear()
	for i, v := range p.Pix {
		if v != 0 {
			t.Fatalf("expected pixel %d to be cleared, got %#06x", i, v)
		}
	}
}

func TestPack(t *testing.T) {
	src := []uint32{0x00112233, 0x44556677}

	t.Run("little-endian", func(it *testing.T) {
		dst := make([]byte, 8)
		Pack(dst, src, binary.LittleEndian)
		want := []byte{0x33, 0x22, 0x11, 0x00, 0x77, 0x66, 0x55, 0x44}
		for i := range want {
			if dst[i] != want[i] {
				it.Fatalf("expected byte %d to be %#02x, got %#02x", i, want[i], dst[i])
			}
		}
	})

	t.Run("big-endian", func(it *testing.T) {
		dst := make([]byte, 8)
		Pack(dst, src, binary.BigEndian)
		want := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77}
		for i := range want {
			if dst[i] != want[i] {
				it.Fatalf("expected byte %d to be %#02x, got %#02x", i, want[i], dst[i])
			}
		}
	})
}
