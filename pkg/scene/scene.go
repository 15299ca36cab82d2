package scene

import (
	"github.com/pgodschalk/raytracing/pkg/core"
	"github.com/pgodschalk/raytracing/pkg/geometry"
	"github.com/pgodschalk/raytracing/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.HittableList // Objects in the scene
	CameraConfig renderer.CameraConfig
}

// NewScene creates an empty scene with the given camera settings
func NewScene(name string, config renderer.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		World:        geometry.NewHittableList(),
		CameraConfig: config,
	}
}

// Add appends a shape to the scene
func (s *Scene) Add(shape core.Shape) {
	s.World.Add(shape)
}

// NewCamera creates a camera from the scene's settings
func (s *Scene) NewCamera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}
