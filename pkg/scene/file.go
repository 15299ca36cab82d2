package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pgodschalk/raytracing/pkg/core"
	"github.com/pgodschalk/raytracing/pkg/geometry"
	"github.com/pgodschalk/raytracing/pkg/material"
	"github.com/pgodschalk/raytracing/pkg/renderer"
)

var (
	// ErrUnknownMaterial is returned when a sphere names a material that is not defined
	ErrUnknownMaterial = errors.New("unknown material")
	// ErrInvalidScene is returned for structurally invalid scene files
	ErrInvalidScene = errors.New("invalid scene")
)

// File is the JSON representation of a scene
type File struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Camera      CameraFile              `json:"camera"`
	Materials   map[string]MaterialFile `json:"materials"`
	Spheres     []SphereFile            `json:"spheres"`
}

// CameraFile holds camera settings; omitted fields keep their defaults
type CameraFile struct {
	AspectRatio     float64 `json:"aspectRatio"`
	ImageWidth      int     `json:"imageWidth"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	MaxDepth        int     `json:"maxDepth"`
	VFov            float64 `json:"vfov"`
}

// MaterialFile describes one named material
type MaterialFile struct {
	Type   string      `json:"type"`             // "lambertian", "checker" or "absorber"
	Albedo *[3]float64 `json:"albedo,omitempty"` // lambertian
	Scale  float64     `json:"scale,omitempty"`  // checker cell size
	Even   *[3]float64 `json:"even,omitempty"`   // checker
	Odd    *[3]float64 `json:"odd,omitempty"`    // checker
}

// SphereFile describes a sphere, optionally moved by offset
type SphereFile struct {
	Center   [3]float64  `json:"center"`
	Radius   float64     `json:"radius"`
	Material string      `json:"material"`
	Offset   *[3]float64 `json:"offset,omitempty"`
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Load reads a scene from a JSON file
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Decode reads a JSON scene from r and builds it
func Decode(r io.Reader) (*Scene, error) {
	defaults := renderer.DefaultCameraConfig()
	file := File{
		Camera: CameraFile{
			AspectRatio:     defaults.AspectRatio,
			ImageWidth:      defaults.ImageWidth,
			SamplesPerPixel: defaults.SamplesPerPixel,
			MaxDepth:        defaults.MaxDepth,
			VFov:            defaults.VFov,
		},
	}
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return file.Build()
}

// Build turns the file description into a scene. Spheres share material
// instances by name.
func (f *File) Build() (*Scene, error) {
	if err := f.Camera.validate(); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	materials := make(map[string]core.Material, len(f.Materials))
	for name, m := range f.Materials {
		mat, err := m.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	s := NewScene(f.Name, renderer.CameraConfig{
		AspectRatio:     f.Camera.AspectRatio,
		ImageWidth:      f.Camera.ImageWidth,
		SamplesPerPixel: f.Camera.SamplesPerPixel,
		MaxDepth:        f.Camera.MaxDepth,
		VFov:            f.Camera.VFov,
	})

	for i, sf := range f.Spheres {
		mat, ok := materials[sf.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: %w: %q", i, ErrUnknownMaterial, sf.Material)
		}
		if sf.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: %w: radius must be positive, got %g", i, ErrInvalidScene, sf.Radius)
		}

		var shape core.Shape = geometry.NewSphere(vec(sf.Center), sf.Radius, mat)
		if sf.Offset != nil {
			shape = geometry.NewTranslate(shape, vec(*sf.Offset))
		}
		s.Add(shape)
	}

	return s, nil
}

func (c CameraFile) validate() error {
	switch {
	case c.ImageWidth < 0:
		return fmt.Errorf("%w: imageWidth must not be negative, got %d", ErrInvalidScene, c.ImageWidth)
	case !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0):
		return fmt.Errorf("%w: aspectRatio must be positive, got %g", ErrInvalidScene, c.AspectRatio)
	case c.SamplesPerPixel < 1:
		return fmt.Errorf("%w: samplesPerPixel must be at least 1, got %d", ErrInvalidScene, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: maxDepth must not be negative, got %d", ErrInvalidScene, c.MaxDepth)
	case !(c.VFov > 0 && c.VFov < 180):
		return fmt.Errorf("%w: vfov must be in (0, 180), got %g", ErrInvalidScene, c.VFov)
	}
	return nil
}

func (m MaterialFile) build() (core.Material, error) {
	switch m.Type {
	case "absorber":
		return material.NewAbsorber(), nil
	case "lambertian":
		if m.Albedo == nil {
			return nil, fmt.Errorf("%w: lambertian needs an albedo", ErrInvalidScene)
		}
		return material.NewLambertian(vec(*m.Albedo)), nil
	case "checker":
		if m.Even == nil || m.Odd == nil || m.Scale <= 0 {
			return nil, fmt.Errorf("%w: checker needs even, odd and a positive scale", ErrInvalidScene)
		}
		return material.NewTexturedLambertian(material.NewCheckerTexture(m.Scale, vec(*m.Even), vec(*m.Odd))), nil
	default:
		return nil, fmt.Errorf("%w: type %q", ErrUnknownMaterial, m.Type)
	}
}

// ListSceneFiles returns the JSON scenes found in dir, sorted by ID.
// Files that fail to parse are skipped.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var header struct {
			Description string `json:"description"`
		}
		if err := json.Unmarshal(data, &header); err != nil {
			continue
		}
		scenes = append(scenes, SceneInfo{ID: path, Description: header.Description})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes, nil
}
