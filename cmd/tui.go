package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devcatalyst07/fitplan/internal/config"
	"github.com/devcatalyst07/fitplan/internal/plan"
	"github.com/devcatalyst07/fitplan/internal/tui"
)

// tuiCmd launches the interactive schedule browser, recomputing live
// while the plan directory changes on disk.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the computed schedule interactively",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	p, _, err := loadValidPlan(cfg.PlanDir)
	if err != nil {
		return err
	}
	res, err := computeSchedule(p)
	if err != nil {
		return fmt.Errorf("schedule %s: %w", p.Manifest.Project.Name, err)
	}

	prog := tui.NewProgram(p, res)

	// Feed file changes into the running program. Reload failures keep
	// the schedule on screen.
	w, err := plan.NewWatcher(cfg.PlanDir, time.Duration(cfg.Watch.DebounceMs)*time.Millisecond)
	if err == nil && w.Start() == nil {
		defer w.Stop()
		go func() {
			for range w.Changes {
				np, _, err := loadValidPlan(cfg.PlanDir)
				if err != nil {
					prog.Send(tui.MsgReloadFailed{Err: err})
					continue
				}
				nres, err := computeSchedule(np)
				if err != nil {
					prog.Send(tui.MsgReloadFailed{Err: err})
					continue
				}
				prog.Send(tui.MsgPlanReloaded{Plan: np, Result: nres})
			}
		}()
	}

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
