package mc

import (
	"testing"

	"github.com/victorbstan/polyvox/volume"
)

func TestCentralDifferenceGradientPointsTowardDenserNeighbor(t *testing.T) {
	v := volume.New(5, 5, 5)
	v.Set(3, 2, 2, 200)
	g := centralDifferenceGradient(v, volume.Vec3I{X: 2, Y: 2, Z: 2})
	if g.X <= 0 {
		t.Fatalf("expected positive X gradient toward the denser +X neighbor, got %v", g)
	}
}

func TestSobelGradientIsZeroOnUniformField(t *testing.T) {
	v := volume.New(5, 5, 5)
	for z := int32(0); z < 5; z++ {
		for y := int32(0); y < 5; y++ {
			for x := int32(0); x < 5; x++ {
				v.Set(x, y, z, 7)
			}
		}
	}
	g := sobelGradient(v, volume.Vec3I{X: 2, Y: 2, Z: 2})
	if g.X != 0 || g.Y != 0 || g.Z != 0 {
		t.Fatalf("expected zero gradient on a uniform field, got %v", g)
	}
}

func TestNormalizeHandlesZeroVector(t *testing.T) {
	n := normalize(volume.Vec3F{})
	if n.X != 0 || n.Y != 0 || n.Z != 0 {
		t.Fatalf("expected zero vector to normalize to zero, got %v", n)
	}
}

func TestEstimateGradientNoneIsZero(t *testing.T) {
	v := volume.New(3, 3, 3)
	v.Set(1, 1, 1, 9)
	g := EstimateGradient(v, volume.Vec3I{X: 1, Y: 1, Z: 1}, GradientNone)
	if g.X != 0 || g.Y != 0 || g.Z != 0 {
		t.Fatal("expected GradientNone to return the zero vector")
	}
}
