package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"vredit/internal/config"
	"vredit/internal/editmode"
	"vredit/internal/highlight"
	"vredit/internal/world"
)

var (
	colorIdle      = rl.NewColor(130, 130, 140, 255)
	colorTerrain   = rl.NewColor(70, 90, 70, 255)
	colorHover     = rl.NewColor(255, 200, 60, 255)
	colorSelection = rl.NewColor(80, 180, 255, 255)
	colorSphere    = rl.NewColor(80, 180, 255, 70)
)

func (a *app) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	rl.BeginMode3D(a.camera)
	rl.DrawGrid(40, 1)

	marks := a.highlights.Snapshot(a.scene)
	for _, obj := range a.scene.Objects {
		a.drawObject(obj, marks[obj.UID])
	}

	if a.machine.State() == editmode.StateVolumeSelecting {
		center := toRl(a.sphereCtrl.Center())
		rl.DrawSphereWires(center, a.sphereCtrl.Radius(), 12, 12, colorSphere)
	}
	rl.EndMode3D()

	a.drawHUD()
	if a.settingsOpen {
		a.drawSettings()
	}
	rl.EndDrawing()
}

func (a *app) drawObject(obj *world.Object, mark highlight.Kind) {
	if obj.Collider == nil {
		return
	}
	color := colorIdle
	if obj.Layer == world.LayerTerrain {
		color = colorTerrain
	}
	switch mark {
	case highlight.KindHover:
		color = colorHover
	case highlight.KindSelection:
		color = colorSelection
	}

	pos := toRl(obj.Transform.Position)
	switch obj.Collider.Kind {
	case world.ColliderSphere:
		rl.DrawSphere(pos, obj.Collider.Radius, color)
		if mark != highlight.KindNone {
			rl.DrawSphereWires(pos, obj.Collider.Radius+0.02, 10, 10, rl.White)
		}
	default:
		size := toRl(obj.WorldSize())
		rl.DrawCubeV(pos, size, color)
		if mark != highlight.KindNone {
			rl.DrawCubeWiresV(pos, size, rl.White)
		} else {
			rl.DrawCubeWiresV(pos, size, rl.NewColor(40, 40, 50, 255))
		}
	}
}

func (a *app) drawHUD() {
	mode := "play"
	if a.session.IsActive() {
		mode = a.machine.State().String()
	}
	rl.DrawText(fmt.Sprintf("mode: %s  selected: %d  edits: %d", mode, a.sel.Count(), a.registry.Count()),
		10, 10, 20, rl.RayWhite)
	rl.DrawText("Tab edit mode | LMB select/hold | Shift multi | C ray/sphere | X cancel | arrows/wheel move | Z/Y undo | F2 settings | F5 save",
		10, 35, 10, rl.Gray)
	rl.DrawFPS(10, 55)

	y := int32(85)
	for _, t := range a.toasts {
		rl.DrawText(t.text, 10, y, 20, colorHover)
		y += 25
	}
}

// drawSettings is a minimal options panel backed directly by the config
// store.
func (a *app) drawSettings() {
	panel := rl.NewRectangle(float32(rl.GetScreenWidth())-320, 40, 300, 180)
	if gui.WindowBox(panel, "Editor Settings") {
		a.settingsOpen = false
		a.tracker.OnMenuClosed("SettingsMenu")
		return
	}

	quick := a.cfg.GetBool(config.KeyQuickEditEnabled, config.DefaultQuickEditEnabled)
	newQuick := gui.CheckBox(rl.NewRectangle(panel.X+15, panel.Y+40, 20, 20), "Double-tap quick edit", quick)
	if newQuick != quick {
		a.cfg.SetBool(config.KeyQuickEditEnabled, newQuick)
	}

	hold := float32(a.cfg.GetFloat(config.KeyHoldToSelectSeconds, config.DefaultHoldToSelectSeconds))
	newHold := gui.Slider(rl.NewRectangle(panel.X+15, panel.Y+80, 200, 20),
		"", fmt.Sprintf("hold %.2fs", hold), hold, 0.1, 1.0)
	if newHold != hold {
		a.cfg.SetFloat(config.KeyHoldToSelectSeconds, float64(newHold))
		a.machine.SetHoldThreshold(newHold)
	}

	gui.Label(rl.NewRectangle(panel.X+15, panel.Y+120, 260, 20),
		"Changes persist on save (F5)")
}
