package light

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/mmd-go/common"
)

func TestUniformSize(t *testing.T) {
	l := NewLight()
	var identity [16]float32
	common.Identity(identity[:])
	u := l.Uniform(identity)
	if u.Size() != 64 {
		t.Errorf("Uniform().Size() = %d, want 64", u.Size())
	}
	if got := len(u.Marshal()); got != 64 {
		t.Errorf("Marshal() length = %d, want 64", got)
	}
}

func TestUniformTransformsPositionToViewSpace(t *testing.T) {
	l := NewLight(WithLightPosition(1, 2, 3))

	var view [16]float32
	common.Identity(view[:])
	// A pure translation view matrix.
	view[12], view[13], view[14] = -1, -2, -3

	u := l.Uniform(view)
	for i, got := range u.Position {
		if math.Abs(float64(got)) > 1e-6 {
			t.Errorf("Position[%d] = %v, want 0 after view transform", i, got)
		}
	}
}

func TestUniformColorsPassThrough(t *testing.T) {
	l := NewLight(
		WithAmbient(0.1, 0.2, 0.3),
		WithDiffuse(0.4, 0.5, 0.6),
		WithSpecular(0.7, 0.8, 0.9),
	)
	var identity [16]float32
	common.Identity(identity[:])

	u := l.Uniform(identity)
	if u.Ambient != [3]float32{0.1, 0.2, 0.3} {
		t.Errorf("Ambient = %v", u.Ambient)
	}
	if u.Diffuse != [3]float32{0.4, 0.5, 0.6} {
		t.Errorf("Diffuse = %v", u.Diffuse)
	}
	if u.Specular != [3]float32{0.7, 0.8, 0.9} {
		t.Errorf("Specular = %v", u.Specular)
	}
}

func TestSetters(t *testing.T) {
	l := NewLight()
	l.SetAmbient(1, 0, 0)
	l.SetDiffuse(0, 1, 0)
	l.SetSpecular(0, 0, 1)
	l.SetPosition(4, 5, 6)

	if l.Ambient() != [3]float32{1, 0, 0} {
		t.Errorf("Ambient() = %v", l.Ambient())
	}
	if l.Diffuse() != [3]float32{0, 1, 0} {
		t.Errorf("Diffuse() = %v", l.Diffuse())
	}
	if l.Specular() != [3]float32{0, 0, 1} {
		t.Errorf("Specular() = %v", l.Specular())
	}
	if l.Position() != [3]float32{4, 5, 6} {
		t.Errorf("Position() = %v", l.Position())
	}
}
