package core

// Ray represents a ray with an origin, direction and time tag
type Ray struct {
	Origin    Point3
	Direction Vec3
	Time      float64 // Reserved for motion blur; shapes ignore it
}

// NewRay creates a new ray at time zero
func NewRay(origin Point3, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// NewRayAt creates a new ray with an explicit time tag
func NewRayAt(origin Point3, direction Vec3, time float64) Ray {
	return Ray{Origin: origin, Direction: direction, Time: time}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
