package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/devcatalyst07/fitplan/internal/config"
	"github.com/devcatalyst07/fitplan/internal/plan"
	"github.com/devcatalyst07/fitplan/internal/store"
	"github.com/devcatalyst07/fitplan/internal/telemetry"
	"github.com/devcatalyst07/fitplan/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompute the schedule whenever the plan directory changes",
	Long: "Watch monitors the plan directory and recomputes the whole schedule on\n" +
		"every manifest or task file change. A cron entry (watch.cron, default\n" +
		"@daily) re-evaluates risk even when nothing changed, since backward-mode\n" +
		"risk depends on the current date. Failed recomputations are logged and\n" +
		"the previous schedule is kept.",
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	r := newRenderer(cfg)

	em, err := openTelemetry(cfg)
	if err != nil {
		return err
	}
	defer em.Close()

	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	w, err := plan.NewWatcher(cfg.PlanDir, time.Duration(cfg.Watch.DebounceMs)*time.Millisecond)
	if err != nil {
		return fmt.Errorf("watch %s: %w", cfg.PlanDir, err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watch %s: %w", cfg.PlanDir, err)
	}
	defer w.Stop()

	_ = em.Emit(telemetry.Event{Timestamp: time.Now(), Kind: telemetry.KindWatchStart})
	defer func() {
		_ = em.Emit(telemetry.Event{Timestamp: time.Now(), Kind: telemetry.KindWatchStop})
	}()

	// Initial computation is best-effort like every later one: a broken
	// plan logs and waits for the next change.
	recomputePlan(cmd.Context(), cfg, r, em, st, "startup")

	cronTrigger := make(chan struct{}, 1)
	c := cron.New()
	if _, err := c.AddFunc(cfg.Watch.Cron, func() {
		select {
		case cronTrigger <- struct{}{}:
		default:
		}
	}); err != nil {
		return fmt.Errorf("watch.cron %q: %w", cfg.Watch.Cron, err)
	}
	c.Start()
	defer c.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	fmt.Fprintf(os.Stderr, "watching %s (cron %s)\n", cfg.PlanDir, cfg.Watch.Cron)

	for {
		select {
		case ch, ok := <-w.Changes:
			if !ok {
				return nil
			}
			_ = em.Emit(telemetry.Event{
				Timestamp: time.Now(),
				Kind:      telemetry.KindPlanReloaded,
				TaskID:    ch.TaskID,
				Data:      map[string]string{"file": ch.File},
			})
			recomputePlan(cmd.Context(), cfg, r, em, st, ch.File)

		case <-cronTrigger:
			recomputePlan(cmd.Context(), cfg, r, em, st, "cron")

		case <-sig:
			fmt.Fprintln(os.Stderr, "stopping")
			return nil

		case <-cmd.Context().Done():
			return nil
		}
	}
}

// recomputePlan reloads, validates, computes, persists, and renders.
// Every failure is logged rather than returned; the stored schedule
// from the previous successful run stays authoritative.
func recomputePlan(ctx context.Context, cfg config.Config, r *ui.Renderer, em *telemetry.Emitter, st store.Store, trigger string) {
	p, warnings, err := loadValidPlan(cfg.PlanDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reload (%s): %v\n", trigger, err)
		return
	}
	project := p.Manifest.Project.Name

	res, err := computeSchedule(p)
	if err != nil {
		emitComputeFailure(em, project, err)
		fmt.Fprintf(os.Stderr, "reload (%s): %v\n", trigger, err)
		return
	}
	emitScheduleEvents(em, project, res)

	if err := st.Save(ctx, storedFromResult(p, res, time.Now())); err != nil {
		fmt.Fprintf(os.Stderr, "persist %s: %v\n", project, err)
		return
	}

	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, w.String())
	}
	fmt.Print(r.ScheduleTable(p, res))
	fmt.Print(r.RiskBanner(res))
}
