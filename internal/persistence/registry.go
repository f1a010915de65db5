// Package persistence tracks edited objects and writes them out at explicit
// save boundaries. Nothing here runs on the per-frame path: editors record
// changes in memory and the host decides when to flush.
package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"vredit/internal/world"
)

// ChangedObject is the persisted record of one edited object.
type ChangedObject struct {
	UID      uint64     `yaml:"uid"`
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"`
	Scale    [3]float32 `yaml:"scale"`
}

// Registry accumulates the final transforms of edited objects, keyed by uid
// so repeated edits of the same object keep only the latest state.
type Registry struct {
	path    string
	changes map[uint64]ChangedObject
}

func NewRegistry(path string) *Registry {
	return &Registry{
		path:    path,
		changes: make(map[uint64]ChangedObject),
	}
}

// RecordTransform notes the committed transform of an edited object.
func (r *Registry) RecordTransform(obj *world.Object) {
	t := obj.Transform
	r.changes[obj.UID] = ChangedObject{
		UID:      obj.UID,
		Name:     obj.Name,
		Position: t.Position,
		Rotation: t.Rotation,
		Scale:    t.Scale,
	}
}

// Forget drops a recorded change, e.g. after an undo restored the original.
func (r *Registry) Forget(uid uint64) {
	delete(r.changes, uid)
}

func (r *Registry) Count() int {
	return len(r.changes)
}

func (r *Registry) Changed(uid uint64) (ChangedObject, bool) {
	c, ok := r.changes[uid]
	return c, ok
}

// Save writes all recorded changes. Called at save boundaries only.
func (r *Registry) Save() error {
	out := make([]ChangedObject, 0, len(r.changes))
	for _, c := range r.changes {
		out = append(out, c)
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode changes: %w", err)
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create changes dir: %w", err)
		}
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write changes: %w", err)
	}
	log.Info().Int("objects", len(out)).Str("path", r.path).Msg("persistence: saved changes")
	return nil
}

// Load reads previously saved changes and applies them to matching scene
// objects by name. Objects that no longer exist are kept in the registry so
// a later save does not lose them. A missing file is not an error.
func (r *Registry) Load(scene *world.Scene) error {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read changes: %w", err)
	}
	var loaded []ChangedObject
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse changes: %w", err)
	}

	applied := 0
	for _, c := range loaded {
		if obj := scene.FindByName(c.Name); obj != nil {
			obj.Transform = world.Transform{
				Position: c.Position,
				Rotation: c.Rotation,
				Scale:    c.Scale,
			}
			c.UID = obj.UID
			applied++
		}
		r.changes[c.UID] = c
	}
	log.Info().Int("loaded", len(loaded)).Int("applied", applied).Msg("persistence: loaded changes")
	return nil
}
