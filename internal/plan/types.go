package plan

import "github.com/devcatalyst07/fitplan/internal/dag"

// Manifest is parsed from project.toml in the plan directory root.
type Manifest struct {
	Project  Info           `toml:"project"`
	Schedule ScheduleConfig `toml:"schedule"`
	Defaults Defaults       `toml:"defaults"`
}

// Info holds the project's name and description from the manifest.
type Info struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// ScheduleConfig pins the schedule to its anchor. AnchorDate and
// TargetEnd are YYYY-MM-DD strings; Direction is "start" (anchor is the
// desired project start) or "end" (anchor is the required project end).
// TargetEnd is optional and only consulted for forward-mode risk.
type ScheduleConfig struct {
	AnchorDate string `toml:"anchor_date"`
	Direction  string `toml:"direction"`
	TargetEnd  string `toml:"target_end"`
}

// Defaults holds fallback values applied to tasks that omit those fields.
type Defaults struct {
	Trade        string `toml:"trade"`
	Priority     int    `toml:"priority"`
	DurationDays int    `toml:"duration_days"`
}

// TaskSpec is parsed from each *.md file's TOML frontmatter. Needs
// entries use the form "id", "id:fs", or "id:ss", optionally suffixed
// with a working-day lag such as "id:fs+2d".
type TaskSpec struct {
	ID           string   `toml:"id"`
	Title        string   `toml:"title"`
	DurationDays int      `toml:"duration_days"`
	Needs        []string `toml:"needs"`
	Trade        string   `toml:"trade"`
	Priority     int      `toml:"priority"`
	Body         string   // Markdown body after the +++ block
	SourceFile   string   // Relative path for error context
}

// Plan is the fully parsed representation of a plan directory.
type Plan struct {
	Dir      string
	Manifest Manifest
	Tasks    []TaskSpec
}

// DepRef is one parsed "needs" entry.
type DepRef struct {
	ID      string
	Type    dag.DepType
	LagDays int
}
