package geomap

// Point is an integer 2D coordinate, used for both positions and extents.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Mul returns the component-wise product of two points.
// Multiplying an extent by an axis vector like (1,0) or (0,1) projects
// it onto that axis, which is how frame growth directions are applied.
func (p Point) Mul(q Point) Point {
	return Point{X: p.X * q.X, Y: p.Y * q.Y}
}
