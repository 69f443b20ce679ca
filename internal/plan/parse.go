package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/devcatalyst07/fitplan/internal/dag"
)

// Load reads a plan directory, parsing project.toml and all *.md task files.
func Load(dir string) (*Plan, error) {
	manifestPath := filepath.Join(dir, "project.toml")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoManifest
		}
		return nil, fmt.Errorf("reading project.toml: %w", err)
	}

	var manifest Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing project.toml: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading plan directory: %w", err)
	}

	var tasks []TaskSpec
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}

		task, err := parseTaskFile(filepath.Join(dir, e.Name()), manifest.Defaults)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", e.Name(), err)
		}
		task.SourceFile = e.Name()
		tasks = append(tasks, task)
	}

	return &Plan{
		Dir:      dir,
		Manifest: manifest,
		Tasks:    tasks,
	}, nil
}

// parseTaskFile reads a markdown file with +++ TOML frontmatter.
func parseTaskFile(path string, defaults Defaults) (TaskSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TaskSpec{}, err
	}

	frontmatter, body, err := splitFrontmatter(string(data))
	if err != nil {
		return TaskSpec{}, err
	}

	var task TaskSpec
	if err := toml.Unmarshal([]byte(frontmatter), &task); err != nil {
		return TaskSpec{}, fmt.Errorf("parsing TOML frontmatter: %w", err)
	}

	task.Body = strings.TrimSpace(body)

	// Apply defaults for zero-valued fields.
	if task.Trade == "" {
		task.Trade = defaults.Trade
	}
	if task.Priority == 0 {
		task.Priority = defaults.Priority
	}
	if task.DurationDays == 0 {
		task.DurationDays = defaults.DurationDays
	}

	return task, nil
}

// splitFrontmatter splits content on +++ delimiters.
func splitFrontmatter(content string) (frontmatter, body string, err error) {
	const delim = "+++"

	content = strings.TrimLeft(content, " \t\r\n")

	if !strings.HasPrefix(content, delim) {
		return "", "", fmt.Errorf("file does not start with +++ frontmatter delimiter")
	}

	rest := content[len(delim):]
	idx := strings.Index(rest, delim)
	if idx < 0 {
		return "", "", fmt.Errorf("missing closing +++ frontmatter delimiter")
	}

	return rest[:idx], rest[idx+len(delim):], nil
}

// ParseDepRef decodes one needs entry. The grammar is
// id[:fs|:ss][+<n>d]: a bare id defaults to a finish-to-start edge with
// no lag, ":ss" selects start-to-start, and "+2d" adds a two-working-day
// lag after the constraint date.
func ParseDepRef(ref string) (DepRef, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return DepRef{}, fmt.Errorf("%w: empty entry", ErrBadDepRef)
	}

	dep := DepRef{Type: dag.FS}

	// Peel a "+<n>d" lag suffix first so ids may not contain '+'.
	if head, lag, found := strings.Cut(ref, "+"); found {
		if !strings.HasSuffix(lag, "d") {
			return DepRef{}, fmt.Errorf("%w: lag %q must end in 'd'", ErrBadDepRef, lag)
		}
		n, err := strconv.Atoi(strings.TrimSuffix(lag, "d"))
		if err != nil || n < 0 {
			return DepRef{}, fmt.Errorf("%w: lag %q is not a non-negative day count", ErrBadDepRef, lag)
		}
		dep.LagDays = n
		ref = head
	}

	if id, kind, found := strings.Cut(ref, ":"); found {
		switch strings.ToLower(kind) {
		case "fs":
			dep.Type = dag.FS
		case "ss":
			dep.Type = dag.SS
		default:
			return DepRef{}, fmt.Errorf("%w: unknown dependency type %q", ErrBadDepRef, kind)
		}
		ref = id
	}

	if ref == "" {
		return DepRef{}, fmt.Errorf("%w: missing task id", ErrBadDepRef)
	}
	dep.ID = ref
	return dep, nil
}
