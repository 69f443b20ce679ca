package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devcatalyst07/fitplan/internal/config"
	"github.com/devcatalyst07/fitplan/internal/plan"
	"github.com/devcatalyst07/fitplan/internal/telemetry"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a plan directory without computing a schedule",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	r := newRenderer(cfg)

	em, err := openTelemetry(cfg)
	if err != nil {
		return err
	}
	defer em.Close()

	p, err := plan.Load(cfg.PlanDir)
	if err != nil {
		return err
	}

	warnings, errs := plan.Validate(p)
	fmt.Print(r.ValidationReport(warnings, errs))

	_ = em.Emit(telemetry.Event{
		Timestamp: time.Now(),
		Kind:      telemetry.KindValidation,
		Project:   p.Manifest.Project.Name,
		Data: map[string]int{
			"errors":   len(errs),
			"warnings": len(warnings),
		},
	})

	if len(errs) > 0 {
		return fmt.Errorf("plan %s: %d validation error(s)", cfg.PlanDir, len(errs))
	}
	return nil
}
