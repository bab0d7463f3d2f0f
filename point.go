package scatter

// Point2D is a point in mapped target space, the form stored in a
// PointBuffer and uploaded to the GPU.
type Point2D struct {
	X, Y float32
}

// Pt is a convenience function to create a Point2D.
func Pt(x, y float32) Point2D {
	return Point2D{X: x, Y: y}
}
