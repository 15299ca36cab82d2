package geometry

import "github.com/pgodschalk/raytracing/pkg/core"

// HittableList is an unordered collection of shapes searched linearly for
// the closest hit
type HittableList struct {
	Objects []core.Shape
	bbox    core.AABB
}

// NewHittableList creates a list holding the given shapes
func NewHittableList(objects ...core.Shape) *HittableList {
	list := &HittableList{bbox: core.EmptyAABB}
	for _, object := range objects {
		list.Add(object)
	}
	return list
}

// Add appends a shape to the list
func (l *HittableList) Add(object core.Shape) {
	if len(l.Objects) == 0 {
		l.bbox = core.EmptyAABB
	}
	l.Objects = append(l.Objects, object)
	l.bbox = l.bbox.Union(object.BoundingBox())
}

// Clear removes every shape from the list
func (l *HittableList) Clear() {
	l.Objects = nil
	l.bbox = core.EmptyAABB
}

// Len returns the number of shapes in the list
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the closest hit among all shapes. The search interval shrinks
// to each accepted hit, so on equal t the earlier shape wins.
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := rayT.Max

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of every member's box
func (l *HittableList) BoundingBox() core.AABB {
	if len(l.Objects) == 0 {
		return core.EmptyAABB
	}
	return l.bbox
}
