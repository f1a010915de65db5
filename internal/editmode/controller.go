package editmode

import (
	"vredit/internal/frame"
	"vredit/internal/vrinput"
)

// Button roles in edit mode: trigger selects and holds into placement, A is
// the multi-select modifier, the menu button cancels, and a touchpad click
// switches between ray and volume selection.
const editButtonsMask = 1<<uint(vrinput.ButtonTrigger) |
	1<<uint(vrinput.ButtonA) |
	1<<uint(vrinput.ButtonMenu) |
	1<<uint(vrinput.ButtonTouchpad)

// Dispatch priorities on the raw router. The gesture detector must see
// trigger presses before the edit filter so a completed double tap is
// consumed ahead of selection handling.
const (
	priorityDetector = 20
	priorityFilter   = 10
)

// Controller assembles the edit-mode input plumbing: it registers the filter
// and gesture detector on the raw router, binds the button roles to state
// machine actions, and hooks the timed components into the frame scheduler.
type Controller struct {
	router    *vrinput.Router
	filter    *Filter
	scheduler *frame.Scheduler
	machine   *Machine
	detector  *Detector

	routerIDs []vrinput.CallbackID
	filterIDs []HandlerID
}

func NewController(router *vrinput.Router, filter *Filter, scheduler *frame.Scheduler, machine *Machine, detector *Detector) *Controller {
	return &Controller{
		router:    router,
		filter:    filter,
		scheduler: scheduler,
		machine:   machine,
		detector:  detector,
	}
}

// Initialize wires everything up. Call once after the raw router is ready.
func (c *Controller) Initialize() {
	c.routerIDs = append(c.routerIDs,
		c.router.AddButtonCallback(vrinput.MaskFromButton(vrinput.ButtonTrigger), priorityDetector, c.detector.OnButtonEvent),
		c.router.AddButtonCallback(editButtonsMask, priorityFilter, c.filter.Dispatch),
	)

	c.filterIDs = append(c.filterIDs,
		c.filter.AddCallback(vrinput.MaskFromButton(vrinput.ButtonTrigger), c.onTrigger),
		c.filter.AddCallback(vrinput.MaskFromButton(vrinput.ButtonA), c.onMultiSelect),
		c.filter.AddCallback(vrinput.MaskFromButton(vrinput.ButtonMenu), c.onCancel),
		c.filter.AddCallback(vrinput.MaskFromButton(vrinput.ButtonTouchpad), c.onModeToggle),
	)

	c.scheduler.Register(c.machine, true)
	c.scheduler.Register(c.detector, false)
}

// Shutdown removes every registration made by Initialize.
func (c *Controller) Shutdown() {
	for _, id := range c.routerIDs {
		c.router.RemoveButtonCallback(id)
	}
	c.routerIDs = nil
	for _, id := range c.filterIDs {
		c.filter.RemoveCallback(id)
	}
	c.filterIDs = nil
	c.scheduler.Unregister(c.machine)
	c.scheduler.Unregister(c.detector)
}

func (c *Controller) onTrigger(hand vrinput.Hand, released bool, _ vrinput.Button) bool {
	if released {
		c.machine.OnTriggerRelease()
	} else {
		c.machine.OnTriggerPress()
	}
	return true
}

func (c *Controller) onMultiSelect(hand vrinput.Hand, released bool, _ vrinput.Button) bool {
	c.machine.SetMultiSelect(!released)
	return true
}

func (c *Controller) onCancel(hand vrinput.Hand, released bool, _ vrinput.Button) bool {
	if released {
		return false
	}
	c.machine.Cancel()
	return true
}

func (c *Controller) onModeToggle(hand vrinput.Hand, released bool, _ vrinput.Button) bool {
	if released {
		return false
	}
	c.machine.ToggleSelectionMode()
	return true
}
