package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/devcatalyst07/fitplan/internal/calendar"
	"github.com/devcatalyst07/fitplan/internal/config"
	"github.com/devcatalyst07/fitplan/internal/plan"
	"github.com/devcatalyst07/fitplan/internal/schedule"
	"github.com/devcatalyst07/fitplan/internal/telemetry"
)

var scheduleJSON bool

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Compute and persist the schedule for a plan directory",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().BoolVar(&scheduleJSON, "json", false, "emit the computed schedule as JSON on stdout")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	r := newRenderer(cfg)

	em, err := openTelemetry(cfg)
	if err != nil {
		return err
	}
	defer em.Close()

	p, warnings, err := loadValidPlan(cfg.PlanDir)
	if err != nil {
		return err
	}
	project := p.Manifest.Project.Name

	_ = em.Emit(telemetry.Event{
		Timestamp: time.Now(),
		Kind:      telemetry.KindScheduleStart,
		Project:   project,
	})

	res, err := computeSchedule(p)
	if err != nil {
		emitComputeFailure(em, project, err)
		return fmt.Errorf("schedule %s: %w", project, err)
	}
	emitScheduleEvents(em, project, res)

	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Save(cmd.Context(), storedFromResult(p, res, time.Now())); err != nil {
		return fmt.Errorf("persist %s: %w", project, err)
	}

	if scheduleJSON {
		return writeScheduleJSON(p, res)
	}

	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, w.String())
	}
	fmt.Print(r.ScheduleTable(p, res))
	fmt.Print(r.Gantt(res))
	fmt.Print(r.RiskBanner(res))
	return nil
}

// scheduleJSONTask is the wire shape of one task in --json output.
type scheduleJSONTask struct {
	ID       string `json:"id"`
	Title    string `json:"title,omitempty"`
	Trade    string `json:"trade,omitempty"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Float    int    `json:"float_days"`
	Critical bool   `json:"critical"`
}

type scheduleJSONOut struct {
	Project      string             `json:"project"`
	ProjectStart string             `json:"project_start"`
	ProjectEnd   string             `json:"project_end"`
	AtRisk       bool               `json:"at_risk"`
	RiskReason   string             `json:"risk_reason,omitempty"`
	Tasks        []scheduleJSONTask `json:"tasks"`
}

func writeScheduleJSON(p *plan.Plan, res *schedule.Result) error {
	out := scheduleJSONOut{
		Project:      p.Manifest.Project.Name,
		ProjectStart: calendar.Format(res.ProjectStart),
		ProjectEnd:   calendar.Format(res.ProjectEnd),
		AtRisk:       res.AtRisk,
		RiskReason:   res.RiskReason,
	}
	for _, id := range res.Order {
		dates := res.Tasks[id]
		jt := scheduleJSONTask{
			ID:       id,
			Start:    calendar.Format(dates.Start),
			End:      calendar.Format(dates.End),
			Float:    res.Slack[id],
			Critical: res.Critical(id),
		}
		if t := p.Task(id); t != nil {
			jt.Title = t.Title
			jt.Trade = t.Trade
		}
		out.Tasks = append(out.Tasks, jt)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
