package scene

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/pgodschalk/raytracing/pkg/core"
	"github.com/pgodschalk/raytracing/pkg/geometry"
	"github.com/pgodschalk/raytracing/pkg/material"
	"github.com/pgodschalk/raytracing/pkg/renderer"
)

// ErrUnknownScene is returned when no built-in scene has the requested name
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed on the command line
	Description string `json:"description"` // One line summary
}

type builtinScene struct {
	info  SceneInfo
	build func() *Scene
}

var builtinScenes = map[string]builtinScene{
	"default": {
		info:  SceneInfo{ID: "default", Description: "Two touching diffuse spheres, blue and red"},
		build: NewDefaultScene,
	},
	"ground": {
		info:  SceneInfo{ID: "ground", Description: "A gray sphere resting on a checkered ground sphere"},
		build: NewGroundScene,
	},
	"translated": {
		info:  SceneInfo{ID: "translated", Description: "Three copies of one sphere placed with translations"},
		build: NewTranslatedScene,
	},
}

// ListBuiltinScenes returns the built-in scenes sorted by ID
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		scenes = append(scenes, s.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Builtin returns a freshly built scene by name
func Builtin(name string) (*Scene, error) {
	s, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return s.build(), nil
}

// NewDefaultScene creates two touching spheres that fill a 90° view
func NewDefaultScene() *Scene {
	config := renderer.DefaultCameraConfig()
	config.AspectRatio = 16.0 / 9.0
	config.ImageWidth = 400
	config.SamplesPerPixel = 100
	config.MaxDepth = 10
	config.VFov = 90

	s := NewScene("default", config)

	r := math.Cos(math.Pi / 4)
	materialLeft := material.NewLambertian(core.NewVec3(0, 0, 1))
	materialRight := material.NewLambertian(core.NewVec3(1, 0, 0))

	s.Add(geometry.NewSphere(core.NewVec3(-r, 0, -1), r, materialLeft))
	s.Add(geometry.NewSphere(core.NewVec3(r, 0, -1), r, materialRight))

	return s
}

// NewGroundScene creates a single sphere on a large checkered ground sphere
func NewGroundScene() *Scene {
	config := renderer.DefaultCameraConfig()
	config.AspectRatio = 16.0 / 9.0
	config.ImageWidth = 400
	config.SamplesPerPixel = 100
	config.MaxDepth = 50
	config.VFov = 90

	s := NewScene("ground", config)

	groundTexture := material.NewCheckerTexture(0.5, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	s.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewTexturedLambertian(groundTexture)))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	return s
}

// NewTranslatedScene places one shared sphere three times with Translate
func NewTranslatedScene() *Scene {
	config := renderer.DefaultCameraConfig()
	config.AspectRatio = 16.0 / 9.0
	config.ImageWidth = 400
	config.SamplesPerPixel = 50
	config.MaxDepth = 20
	config.VFov = 70

	s := NewScene("translated", config)

	s.Add(geometry.NewSphere(core.NewVec3(0, -1000.5, -1), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	// One sphere at the origin, shared by every instance
	base := geometry.NewSphere(core.NewVec3(0, 0, 0), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	s.Add(geometry.NewTranslate(base, core.NewVec3(-1.1, 0, -1.5)))
	s.Add(geometry.NewTranslate(base, core.NewVec3(0, 0, -1.5)))
	s.Add(geometry.NewTranslate(base, core.NewVec3(1.1, 0, -1.5)))

	// An absorbing sphere shows up as a black silhouette
	s.Add(geometry.NewSphere(core.NewVec3(0, 0.9, -2.5), 0.3, material.NewAbsorber()))

	return s
}
