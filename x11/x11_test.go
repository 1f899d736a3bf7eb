package x11

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestSetupByteOrder(t *testing.T) {
	if order := setupByteOrder(0); order != binary.LittleEndian {
		t.Errorf("expected little endian, got %v", order)
	}
	if order := setupByteOrder(1); order != binary.BigEndian {
		t.Errorf("expected big endian, got %v", order)
	}
}

func TestHasFormat(t *testing.T) {
	formats := []xproto.Format{
		{Depth: 1, BitsPerPixel: 1, ScanlinePad: 32},
		{Depth: 24, BitsPerPixel: 32, ScanlinePad: 32},
		{Depth: 32, BitsPerPixel: 32, ScanlinePad: 32},
	}

	for _, test := range []struct {
		depth    byte
		expected bool
	}{
		{24, true},
		{32, true},
		{16, false},
		{1, false},
	} {
		if v := hasFormat(formats, test.depth); v != test.expected {
			t.Errorf("expected hasFormat(%d) = %t, got %t", test.depth, test.expected, v)
		}
	}
}

func TestCreateImage(t *testing.T) {
	c := new(Conn)

	if _, err := c.CreateImage(make([]byte, 2*16), 4, 2, 16); err != nil {
		t.Fatalf("CreateImage: %v", err)
	}

	for _, test := range []struct {
		name          string
		size          int
		width, height uint16
		stride        int
	}{
		{"short-data", 24, 4, 2, 16},
		{"short-stride", 32, 4, 2, 8},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := c.CreateImage(make([]byte, test.size), test.width, test.height, test.stride)
			if !errors.Is(err, ErrImageData) {
				t.Errorf("expected %v, got %v", ErrImageData, err)
			}
		})
	}
}

func TestRowsPerRequest(t *testing.T) {
	for _, test := range []struct {
		maxReq, stride int
		expected       int
	}{
		{16384, 8, 2045},
		{16384, 2560, 6},
		{16384, 262140, 0},
		{4194304, 2560, 1638},
		{16384, 0, 0},
	} {
		if v := rowsPerRequest(test.maxReq, test.stride); v != test.expected {
			t.Errorf("expected rowsPerRequest(%d, %d) = %d, got %d",
				test.maxReq, test.stride, test.expected, v)
		}
	}
}
