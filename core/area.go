package core

// Point represents a 2D coordinate in surface units
type Point struct {
	X, Y int
}

// Add returns p translated by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the offset from q to p
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Area represents a rectangular region
type Area struct {
	X, Y          int // Top-left corner
	Width, Height int
}

// Square returns a size x size area anchored at p
func Square(p Point, size int) Area {
	return Area{X: p.X, Y: p.Y, Width: size, Height: size}
}

// Contains checks if point is within area, right and bottom edges exclusive
func (a Area) Contains(p Point) bool {
	return p.X >= a.X && p.X < a.X+a.Width && p.Y >= a.Y && p.Y < a.Y+a.Height
}

// Empty reports whether the area covers nothing
func (a Area) Empty() bool {
	return a.Width <= 0 || a.Height <= 0
}
