package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// project maps world X/Y to a terminal cell. The world origin sits at the
// horizontal center, a quarter of the height above the bottom row.
func project(p mgl64.Vec2, width, height int, scale float64) (int, int) {
	x := float64(width)/2 + p.X()/scale
	y := float64(height)*0.75 - p.Y()/(scale*cellAspect)
	return int(math.Round(x)), int(math.Round(y))
}

// line returns the cells of a Bresenham segment, both ends included
func line(x0, y0, x1, y1 int) [][2]int {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	points := make([][2]int, 0, max(dx, -dy)+1)
	err := dx + dy
	for {
		points = append(points, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return points
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
