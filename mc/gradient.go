package mc

import (
	"math"

	"github.com/victorbstan/polyvox/volume"
)

// GradientMode selects how a caller smoothing extracted normals
// estimates the gradient of the underlying voxel field at a lattice
// point. The extractor's own per-edge normal never uses this; it is for
// exporter-side post-processing only.
type GradientMode int

const (
	// GradientNone leaves normals at the zero vector; callers wanting flat
	// shading or computing normals from the mesh topology instead should
	// use this.
	GradientNone GradientMode = iota
	// GradientCentralDifference estimates the gradient from the six
	// face-adjacent neighbours of a lattice point.
	GradientCentralDifference
	// GradientSobel applies the full 3x3x3 Sobel kernel, which is less
	// sensitive to single-voxel noise than the central-difference estimate.
	GradientSobel
)

func sampleDensity(vol *volume.Volume, p volume.Vec3I) float32 {
	return float32(vol.SampleWithBounds(p.X, p.Y, p.Z))
}

// centralDifferenceGradient computes the gradient of the density field at
// p from its six face neighbours.
func centralDifferenceGradient(vol *volume.Volume, p volume.Vec3I) volume.Vec3F {
	gx := sampleDensity(vol, volume.Vec3I{X: p.X + 1, Y: p.Y, Z: p.Z}) -
		sampleDensity(vol, volume.Vec3I{X: p.X - 1, Y: p.Y, Z: p.Z})
	gy := sampleDensity(vol, volume.Vec3I{X: p.X, Y: p.Y + 1, Z: p.Z}) -
		sampleDensity(vol, volume.Vec3I{X: p.X, Y: p.Y - 1, Z: p.Z})
	gz := sampleDensity(vol, volume.Vec3I{X: p.X, Y: p.Y, Z: p.Z + 1}) -
		sampleDensity(vol, volume.Vec3I{X: p.X, Y: p.Y, Z: p.Z - 1})
	return volume.Vec3F{X: gx, Y: gy, Z: gz}
}

// sobelAxisWeight is the standard separable Sobel weighting: 2 on the
// center plane, 1 on the two adjacent planes.
func sobelAxisWeight(d int32) float32 {
	if d == 0 {
		return 2
	}
	return 1
}

// sobelGradient applies the full 3x3x3 Sobel operator centered at p.
func sobelGradient(vol *volume.Volume, p volume.Vec3I) volume.Vec3F {
	var gx, gy, gz float32
	for dz := int32(-1); dz <= 1; dz++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dx := int32(-1); dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				v := sampleDensity(vol, volume.Vec3I{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz})
				gx += float32(dx) * sobelAxisWeight(dy) * sobelAxisWeight(dz) * v
				gy += float32(dy) * sobelAxisWeight(dx) * sobelAxisWeight(dz) * v
				gz += float32(dz) * sobelAxisWeight(dx) * sobelAxisWeight(dy) * v
			}
		}
	}
	return volume.Vec3F{X: gx, Y: gy, Z: gz}
}

// EstimateGradient dispatches to the gradient estimator named by mode.
// The returned vector points in the direction of increasing density
// (i.e. from empty toward solid); callers deriving an outward-facing
// surface normal should negate it.
func EstimateGradient(vol *volume.Volume, p volume.Vec3I, mode GradientMode) volume.Vec3F {
	switch mode {
	case GradientSobel:
		return sobelGradient(vol, p)
	case GradientCentralDifference:
		return centralDifferenceGradient(vol, p)
	default:
		return volume.Vec3F{}
	}
}

func normalize(v volume.Vec3F) volume.Vec3F {
	lenSq := v.X*v.X + v.Y*v.Y + v.Z*v.Z
	if lenSq < 1e-12 {
		return volume.Vec3F{}
	}
	inv := float32(1.0 / math.Sqrt(float64(lenSq)))
	return volume.Vec3F{X: v.X * inv, Y: v.Y * inv, Z: v.Z * inv}
}

func lerpVec3F(a, b volume.Vec3F, t float32) volume.Vec3F {
	return volume.Vec3F{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}
