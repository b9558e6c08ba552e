package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Cubic is a cubic Bézier segment in pixel coordinates.
type Cubic struct {
	P0, C1, C2, P3 r2.Vec
}

// cubicFromQuad converts a quadratic Bézier to the equivalent cubic.
func cubicFromQuad(p0, c, p2 r2.Vec) Cubic {
	return Cubic{
		P0: p0,
		C1: r2.Add(p0, r2.Scale(2.0/3.0, r2.Sub(c, p0))),
		C2: r2.Add(p2, r2.Scale(2.0/3.0, r2.Sub(c, p2))),
		P3: p2,
	}
}

// quad is a quadratic Bézier segment.
type quad struct {
	p0, c, p2 r2.Vec
}

func (q quad) at(t float64) r2.Vec {
	u := 1 - t
	return r2.Add(r2.Add(r2.Scale(u*u, q.p0), r2.Scale(2*u*t, q.c)), r2.Scale(t*t, q.p2))
}

// sub returns the part of q between t0 and t1.
func (q quad) sub(t0, t1 float64) quad {
	return quad{
		p0: q.at(t0),
		c: r2.Add(r2.Add(
			r2.Scale((1-t0)*(1-t1), q.p0),
			r2.Scale((1-t0)*t1+t0*(1-t1), q.c)),
			r2.Scale(t0*t1, q.p2)),
		p2: q.at(t1),
	}
}

// arc3 returns the quadratic from a to b whose control point is offset
// from the chord midpoint by rad times the chord, rotated a quarter turn.
func arc3(a, b r2.Vec, rad float64) quad {
	mid := r2.Scale(0.5, r2.Add(a, b))
	d := r2.Sub(b, a)
	return quad{p0: a, c: r2.Add(mid, r2.Scale(rad, r2.Vec{X: -d.Y, Y: d.X})), p2: b}
}

const searchSteps = 256

// exitParam returns the smallest t at which q leaves the circle of radius r
// around center, searching forward from from. It returns from when q
// starts outside, and 1 when q never leaves.
func (q quad) exitParam(center r2.Vec, r, from float64) float64 {
	inside := func(t float64) bool { return r2.Norm(r2.Sub(q.at(t), center)) < r }
	if !inside(from) {
		return from
	}
	step := (1 - from) / searchSteps
	for t := from + step; t <= 1+1e-12; t += step {
		if !inside(t) {
			return bisect(inside, t-step, t)
		}
	}
	return 1
}

// entryParam returns the largest t at which q enters the circle of radius r
// around center, searching backward from from.
func (q quad) entryParam(center r2.Vec, r, from float64) float64 {
	inside := func(t float64) bool { return r2.Norm(r2.Sub(q.at(t), center)) < r }
	if !inside(from) {
		return from
	}
	step := from / searchSteps
	for t := from - step; t >= -1e-12; t -= step {
		if !inside(t) {
			return bisect(func(t float64) bool { return !inside(t) }, t, t+step)
		}
	}
	return 0
}

// bisect narrows [lo, hi] where pred(lo) is true and pred(hi) is false.
func bisect(pred func(float64) bool, lo, hi float64) float64 {
	for i := 0; i < 40; i++ {
		mid := (lo + hi) / 2
		if pred(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// arrowHead returns the triangle with its tip at tip pointing along dir.
func arrowHead(tip, dir r2.Vec, length, halfWidth float64) [3]r2.Vec {
	dir = unit(dir)
	base := r2.Sub(tip, r2.Scale(length, dir))
	perp := r2.Vec{X: -dir.Y, Y: dir.X}
	return [3]r2.Vec{
		tip,
		r2.Add(base, r2.Scale(halfWidth, perp)),
		r2.Sub(base, r2.Scale(halfWidth, perp)),
	}
}

func unit(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return r2.Vec{X: 1}
	}
	return r2.Scale(1/n, v)
}

// rect is an axis-aligned bounding box.
type rect struct {
	min, max r2.Vec
	empty    bool
}

func emptyRect() rect { return rect{empty: true} }

func (b *rect) add(p r2.Vec) {
	if b.empty {
		b.min, b.max, b.empty = p, p, false
		return
	}
	b.min = r2.Vec{X: math.Min(b.min.X, p.X), Y: math.Min(b.min.Y, p.Y)}
	b.max = r2.Vec{X: math.Max(b.max.X, p.X), Y: math.Max(b.max.Y, p.Y)}
}

func (b *rect) addBox(center r2.Vec, halfW, halfH float64) {
	b.add(r2.Vec{X: center.X - halfW, Y: center.Y - halfH})
	b.add(r2.Vec{X: center.X + halfW, Y: center.Y + halfH})
}
