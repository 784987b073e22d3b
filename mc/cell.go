package mc

import "github.com/victorbstan/polyvox/volume"

// cornerOffset gives the corner positions for cube corners 0..7 in the
// classic Lorensen & Cline ordering used by edgeTable/triTable: 0-3 run
// counterclockwise around the lower Z face, 4-7 the matching corners on
// the upper Z face.
var cornerOffset = [8]volume.Vec3I{
	{X: 0, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: 1, Y: 1, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 1, Y: 0, Z: 1},
	{X: 1, Y: 1, Z: 1},
	{X: 0, Y: 1, Z: 1},
}

// edgeCorners gives the two cube-corner ids each of the 12 cube edges
// connects.
var edgeCorners = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}
