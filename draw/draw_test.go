package draw

import (
	"image"
	"testing"

	"github.com/BeatGlow/blit/pixel"
)

func TestHorizontalLine(t *testing.T) {
	frame := pixel.NewFrame(8, 8)
	HorizontalLine(frame, 1, 2, 5, pixel.White)

	for x := 0; x < 8; x++ {
		expected := uint32(0)
		if x >= 1 && x < 6 {
			expected = pixel.White.V
		}
		if v := frame.Pix[frame.PixOffset(x, 2)]; v != expected {
			t.Errorf("expected pixel (%d,2) = %#08x, got %#08x", x, expected, v)
		}
	}
}

func TestLine(t *testing.T) {
	frame := pixel.NewFrame(8, 8)
	Line(frame, image.Pt(0, 0), image.Pt(7, 7), pixel.White)
	for i := 0; i < 8; i++ {
		if v := frame.Pix[frame.PixOffset(i, i)]; v != pixel.White.V {
			t.Errorf("expected pixel (%d,%d) on the diagonal to be set", i, i)
		}
	}
	if v := frame.Pix[frame.PixOffset(7, 0)]; v != 0 {
		t.Error("expected pixel (7,0) to stay clear")
	}

	frame.Clear()
	Line(frame, image.Pt(3, 7), image.Pt(3, 0), pixel.White)
	for y := 0; y < 8; y++ {
		if v := frame.Pix[frame.PixOffset(3, y)]; v != pixel.White.V {
			t.Errorf("expected pixel (3,%d) on the vertical to be set", y)
		}
	}
}

func TestRectangle(t *testing.T) {
	frame := pixel.NewFrame(6, 6)
	Rectangle(frame, image.Rect(1, 1, 5, 5), pixel.White)

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			inside := x >= 1 && x < 5 && y >= 1 && y < 5
			edge := inside && (x == 1 || x == 4 || y == 1 || y == 4)
			expected := uint32(0)
			if edge {
				expected = pixel.White.V
			}
			if v := frame.Pix[frame.PixOffset(x, y)]; v != expected {
				t.Errorf("expected pixel (%d,%d) = %#08x, got %#08x", x, y, expected, v)
			}
		}
	}
}

func TestBox(t *testing.T) {
	frame := pixel.NewFrame(6, 6)
	Box(frame, image.Rect(2, 2, 5, 4), pixel.White)

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			expected := uint32(0)
			if x >= 2 && x < 5 && y >= 2 && y < 4 {
				expected = pixel.White.V
			}
			if v := frame.Pix[frame.PixOffset(x, y)]; v != expected {
				t.Errorf("expected pixel (%d,%d) = %#08x, got %#08x", x, y, expected, v)
			}
		}
	}
}

func TestGradient(t *testing.T) {
	frame := pixel.NewFrame(3, 3)
	Gradient(frame, frame.Bounds())

	for _, test := range []struct {
		x, y     int
		expected pixel.XRGB
	}{
		{0, 0, pixel.RGB(0, 0, 0)},
		{2, 0, pixel.RGB(255, 0, 127)},
		{0, 2, pixel.RGB(0, 255, 127)},
		{2, 2, pixel.RGB(255, 255, 255)},
	} {
		if v := frame.Pix[frame.PixOffset(test.x, test.y)]; v != test.expected.V {
			t.Errorf("expected pixel (%d,%d) = %#08x, got %#08x", test.x, test.y, test.expected.V, v)
		}
	}
}

func TestCheckerboard(t *testing.T) {
	frame := pixel.NewFrame(4, 4)
	Checkerboard(frame, frame.Bounds(), 2, pixel.White, pixel.RGB(255, 0, 0))

	for _, test := range []struct {
		x, y     int
		expected pixel.XRGB
	}{
		{0, 0, pixel.White},
		{2, 0, pixel.RGB(255, 0, 0)},
		{0, 2, pixel.RGB(255, 0, 0)},
		{2, 2, pixel.White},
		{1, 1, pixel.White},
	} {
		if v := frame.Pix[frame.PixOffset(test.x, test.y)]; v != test.expected.V {
			t.Errorf("expected pixel (%d,%d) = %#08x, got %#08x", test.x, test.y, test.expected.V, v)
		}
	}
}

func TestString(t *testing.T) {
	face, err := Face(12)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	defer face.Close()

	frame := pixel.NewFrame(32, 16)
	String(frame, 2, 12, face, pixel.White, "Go")

	var set int
	for _, v := range frame.Pix {
		if v != 0 {
			set++
		}
	}
	if set == 0 {
		t.Error("expected the text to set pixels")
	}
}
