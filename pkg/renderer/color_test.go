package renderer

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/pgodschalk/raytracing/pkg/core"
)

func TestWriteColor(t *testing.T) {
	tests := []struct {
		name     string
		color    core.Vec3
		expected string
	}{
		{"black", core.NewVec3(0, 0, 0), "0 0 0\n"},
		{"white", core.NewVec3(1, 1, 1), "255 255 255\n"},
		{"quarter gamma corrects to half", core.NewVec3(0.25, 0.25, 0.25), "128 128 128\n"},
		{"mixed channels", core.NewVec3(0.25, 0.5, 0.75), "128 181 221\n"},
		{"exceeding one clamps", core.NewVec3(1.5, 2.0, 3.0), "255 255 255\n"},
		{"negative clamps to zero", core.NewVec3(-0.1, -0.5, -1.0), "0 0 0\n"},
		{"edge values", core.NewVec3(0.0, 1.0, 0.999), "0 255 255\n"},
		{"not a number", core.NewVec3(math.NaN(), 0, 0), "0 0 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteColor(&buf, tt.color); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if buf.String() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, buf.String())
			}
		})
	}
}

func TestEncodeChannel_Monotonic(t *testing.T) {
	previous := encodeChannel(-1)
	for x := -0.5; x <= 1.5; x += 0.0005 {
		current := encodeChannel(x)
		if current < previous {
			t.Fatalf("Encoding decreased at %f: %d < %d", x, current, previous)
		}
		previous = current
	}
	if previous != 255 {
		t.Errorf("Expected saturation at 255, got %d", previous)
	}
}

func TestColorToRGBA(t *testing.T) {
	got := ColorToRGBA(core.NewVec3(0.25, 0, 1))
	expected := color.RGBA{R: 128, G: 0, B: 255, A: 255}
	if got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestWritePPMHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPMHeader(&buf, 400, 225); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if buf.String() != "P3\n400 225\n255\n" {
		t.Errorf("Unexpected header %q", buf.String())
	}
}

type failingWriter struct{}

var errWriteFailed = errors.New("write failed")

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errWriteFailed
}

func TestWriteColor_PropagatesWriteError(t *testing.T) {
	if err := WriteColor(failingWriter{}, core.NewVec3(0, 0, 0)); !errors.Is(err, errWriteFailed) {
		t.Errorf("Expected write error, got %v", err)
	}
}
