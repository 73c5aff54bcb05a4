package field

import "math"

// Point is a location in feature space.
type Point struct {
	X1 float64 `json:"x1"`
	X2 float64 `json:"x2"`
}

// Segment is the part of the decision boundary visible inside a domain.
type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// Boundary clips the line w1*x1 + w2*x2 + bias = 0 to d.
// ok is false when the line misses the rectangle or does not exist
// (w1 == w2 == 0). A line touching a single corner yields A == B.
func Boundary(d Domain, w Weights) (seg Segment, ok bool) {
	var pts []Point
	add := func(p Point) {
		if !d.Contains(p.X1, p.X2) {
			return
		}
		for _, q := range pts {
			if q == p {
				return
			}
		}
		pts = append(pts, p)
	}

	if w.W2 != 0 {
		for _, x1 := range []float64{d.X1Min, d.X1Max} {
			add(Point{X1: x1, X2: -(w.W1*x1 + w.Bias) / w.W2})
		}
	}
	if w.W1 != 0 {
		for _, x2 := range []float64{d.X2Min, d.X2Max} {
			add(Point{X1: -(w.W2*x2 + w.Bias) / w.W1, X2: x2})
		}
	}

	switch len(pts) {
	case 0:
		return Segment{}, false
	case 1:
		return Segment{A: pts[0], B: pts[0]}, true
	}

	// Rounding can leave near-duplicate corner hits; keep the farthest pair.
	best, bestDist := Segment{A: pts[0], B: pts[1]}, -1.0
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			dist := math.Hypot(pts[i].X1-pts[j].X1, pts[i].X2-pts[j].X2)
			if dist > bestDist {
				best, bestDist = Segment{A: pts[i], B: pts[j]}, dist
			}
		}
	}
	if best.A.X1 > best.B.X1 || (best.A.X1 == best.B.X1 && best.A.X2 > best.B.X2) {
		best.A, best.B = best.B, best.A
	}
	return best, true
}
