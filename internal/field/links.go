package field

import "math"

// Links returns a line for every unordered pair of points closer than
// maxDist. Alpha falls linearly from alpha at distance 0 to 0 at maxDist.
func Links(points []Point, maxDist, alpha float64) []Link {
	var out []Link
	eachLink(points, maxDist, alpha, func(l Link) { out = append(out, l) })
	return out
}

// PointerLinks returns a line from every point closer than maxDist to the
// pointer at (px, py).
func PointerLinks(points []Point, px, py, maxDist, alpha float64) []Link {
	var out []Link
	eachPointerLink(points, px, py, maxDist, alpha, func(l Link) { out = append(out, l) })
	return out
}

// Fade is the linear opacity ramp used by both kinds of line.
func Fade(alpha, d, maxDist float64) float64 {
	if d >= maxDist {
		return 0
	}
	return alpha * (1 - d/maxDist)
}

// O(n²) per call; n is bounded by the density rule.
func eachLink(points []Point, maxDist, alpha float64, fn func(Link)) {
	for i := 0; i < len(points); i++ {
		a := points[i]
		for j := i + 1; j < len(points); j++ {
			b := points[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d < maxDist {
				fn(Link{X0: a.X, Y0: a.Y, X1: b.X, Y1: b.Y, Distance: d, Alpha: Fade(alpha, d, maxDist)})
			}
		}
	}
}

func eachPointerLink(points []Point, px, py, maxDist, alpha float64, fn func(Link)) {
	for _, p := range points {
		d := math.Hypot(px-p.X, py-p.Y)
		if d < maxDist {
			fn(Link{X0: p.X, Y0: p.Y, X1: px, Y1: py, Distance: d, Alpha: Fade(alpha, d, maxDist)})
		}
	}
}
