package geometry

import "github.com/pgodschalk/raytracing/pkg/core"

// Translate wraps a shape and moves it by a fixed offset
type Translate struct {
	Object core.Shape
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate creates a translated instance of object
func NewTranslate(object core.Shape, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Translate(offset),
	}
}

// Hit moves the ray into object space, delegates, and moves the hit point back
func (t *Translate) Hit(ray core.Ray, rayT core.Interval) (*core.HitRecord, bool) {
	offsetRay := core.NewRayAt(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	hit, isHit := t.Object.Hit(offsetRay, rayT)
	if !isHit {
		return nil, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	return hit, true
}

// BoundingBox returns the wrapped object's box shifted by the offset
func (t *Translate) BoundingBox() core.AABB {
	return t.bbox
}
