package world

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// --- JSON types ---

type SceneFile struct {
	Name    string      `json:"name"`
	Objects []ObjectDef `json:"objects"`
}

type ObjectDef struct {
	Name     string       `json:"name"`
	Tags     []string     `json:"tags,omitempty"`
	Layer    string       `json:"layer,omitempty"`
	Position [3]float32   `json:"position"`
	Rotation [3]float32   `json:"rotation,omitempty"`
	Scale    [3]float32   `json:"scale,omitempty"`
	Collider *ColliderDef `json:"collider,omitempty"`
}

type ColliderDef struct {
	Kind   string     `json:"kind"` // "box" or "sphere"
	Size   [3]float32 `json:"size,omitempty"`
	Radius float32    `json:"radius,omitempty"`
}

// LoadSceneFile reads a scene definition and builds the live scene.
func LoadSceneFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}
	var file SceneFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse scene file %s: %w", path, err)
	}

	scene := NewScene(file.Name)
	for _, def := range file.Objects {
		obj := NewObject(def.Name)
		obj.Tags = def.Tags
		obj.Layer = LayerFromString(def.Layer)
		obj.Transform.Position = def.Position
		obj.Transform.Rotation = def.Rotation
		if def.Scale != ([3]float32{}) {
			obj.Transform.Scale = def.Scale
		}
		if def.Collider != nil {
			switch def.Collider.Kind {
			case "sphere":
				obj.Collider = &Collider{Kind: ColliderSphere, Radius: def.Collider.Radius}
			case "box", "":
				obj.Collider = &Collider{Kind: ColliderBox, Size: def.Collider.Size}
			default:
				return nil, fmt.Errorf("object %q: unknown collider kind %q", def.Name, def.Collider.Kind)
			}
		}
		scene.AddObject(obj)
	}

	log.Info().Str("path", path).Int("objects", len(scene.Objects)).Msg("world: scene loaded")
	return scene, nil
}

// SaveSceneFile writes the scene back out in the same format.
func SaveSceneFile(scene *Scene, path string) error {
	file := SceneFile{Name: scene.Name}
	for _, obj := range scene.Objects {
		def := ObjectDef{
			Name:     obj.Name,
			Tags:     obj.Tags,
			Layer:    obj.Layer.String(),
			Position: obj.Transform.Position,
			Rotation: obj.Transform.Rotation,
			Scale:    obj.Transform.Scale,
		}
		if obj.Collider != nil {
			switch obj.Collider.Kind {
			case ColliderSphere:
				def.Collider = &ColliderDef{Kind: "sphere", Radius: obj.Collider.Radius}
			default:
				def.Collider = &ColliderDef{Kind: "box", Size: obj.Collider.Size}
			}
		}
		file.Objects = append(file.Objects, def)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scene file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scene file: %w", err)
	}
	log.Info().Str("path", path).Int("objects", len(file.Objects)).Msg("world: scene saved")
	return nil
}
