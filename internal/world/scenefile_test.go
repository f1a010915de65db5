package world

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleScene = `{
  "name": "bench",
  "objects": [
    {
      "name": "crate",
      "tags": ["movable"],
      "layer": "props",
      "position": [1, 0, 3],
      "collider": {"kind": "box", "size": [1, 1, 1]}
    },
    {
      "name": "boulder",
      "layer": "static",
      "position": [-2, 0, 5],
      "scale": [2, 2, 2],
      "collider": {"kind": "sphere", "radius": 0.5}
    }
  ]
}`

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSceneFile(t *testing.T) {
	scene, err := LoadSceneFile(writeScene(t, sampleScene))
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}
	if scene.Name != "bench" || len(scene.Objects) != 2 {
		t.Fatalf("scene %q with %d objects, want bench with 2", scene.Name, len(scene.Objects))
	}

	crate := scene.FindByName("crate")
	if crate == nil {
		t.Fatal("crate missing")
	}
	if crate.Layer != LayerProps || !crate.HasTag("movable") {
		t.Error("crate layer/tags did not load")
	}
	if crate.Collider == nil || crate.Collider.Kind != ColliderBox {
		t.Error("crate collider did not load")
	}
	if crate.Transform.Scale != ([3]float32{1, 1, 1}) {
		t.Error("omitted scale should default to 1")
	}

	boulder := scene.FindByName("boulder")
	if boulder == nil || boulder.Collider.Kind != ColliderSphere || boulder.Collider.Radius != 0.5 {
		t.Error("boulder sphere collider did not load")
	}
}

func TestSceneFileRoundTrip(t *testing.T) {
	scene, err := LoadSceneFile(writeScene(t, sampleScene))
	if err != nil {
		t.Fatal(err)
	}
	scene.FindByName("crate").Transform.Position = [3]float32{9, 9, 9}

	out := filepath.Join(t.TempDir(), "out.json")
	if err := SaveSceneFile(scene, out); err != nil {
		t.Fatalf("SaveSceneFile failed: %v", err)
	}
	reloaded, err := LoadSceneFile(out)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got := reloaded.FindByName("crate").Transform.Position; got != ([3]float32{9, 9, 9}) {
		t.Errorf("position after round trip = %v, want the edited value", got)
	}
}

func TestLoadSceneFileRejectsUnknownCollider(t *testing.T) {
	bad := `{"name": "x", "objects": [{"name": "o", "position": [0,0,0], "collider": {"kind": "capsule"}}]}`
	if _, err := LoadSceneFile(writeScene(t, bad)); err == nil {
		t.Error("unknown collider kind should fail the load")
	}
}

func TestLoadSceneFileMissing(t *testing.T) {
	if _, err := LoadSceneFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("missing scene file should be an error")
	}
}
