package tui

import (
	"github.com/devcatalyst07/fitplan/internal/plan"
	"github.com/devcatalyst07/fitplan/internal/schedule"
)

// MsgPlanReloaded is sent when the plan directory changed on disk and a
// fresh schedule was computed. The watcher integration sends this via
// Program.Send from outside the event loop.
type MsgPlanReloaded struct {
	Plan   *plan.Plan
	Result *schedule.Result
}

// MsgReloadFailed is sent when a reload attempt could not produce a
// schedule. The previous schedule stays on screen.
type MsgReloadFailed struct {
	Err error
}
