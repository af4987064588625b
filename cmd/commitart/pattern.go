package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"commitart/internal/config"
	"commitart/internal/generation"
	"commitart/internal/grid"
	"commitart/internal/schedule"
	"commitart/internal/services"
)

var (
	activeCell = lipgloss.NewStyle().Foreground(lipgloss.Color("#39d353"))
	idleCell   = lipgloss.NewStyle().Foreground(lipgloss.Color("#30363d"))
)

// patternFlags selects the grid a command works on: compiled text, a grid
// file, and free-hand toggles applied on top.
type patternFlags struct {
	gridPath string
	toggles  []string
	pad      bool
}

func (p *patternFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.gridPath, "grid", "", "Load a hand-drawn grid (JSON matrix or text art) instead of compiling text")
	cmd.Flags().StringArrayVar(&p.toggles, "toggle", nil, "Flip the cell at ROW,COL (repeatable)")
	cmd.Flags().BoolVar(&p.pad, "pad", false, "Pad the grid to a full year of weeks")
}

// custom reports whether the grid is anything other than plain compiled text.
func (p *patternFlags) custom() bool {
	return strings.TrimSpace(p.gridPath) != "" || len(p.toggles) > 0
}

func (p *patternFlags) build(text string, yearWeeks int) (grid.Grid, error) {
	var g grid.Grid
	if path := strings.TrimSpace(p.gridPath); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return grid.Grid{}, err
		}
		file, err := os.Open(expanded)
		if err != nil {
			return grid.Grid{}, fmt.Errorf("open grid: %w", err)
		}
		defer file.Close()
		g, err = grid.Parse(file)
		if err != nil {
			return grid.Grid{}, err
		}
	} else {
		g = grid.Compile(text)
	}

	if len(p.toggles) > 0 {
		editor := grid.NewEditor(g)
		for _, raw := range p.toggles {
			row, col, err := parseCell(raw)
			if err != nil {
				return grid.Grid{}, err
			}
			if err := editor.Toggle(row, col); err != nil {
				return grid.Grid{}, fmt.Errorf("--toggle %s: %w", raw, err)
			}
		}
		g = editor.Grid()
	}

	if p.pad {
		if yearWeeks <= 0 {
			yearWeeks = grid.YearWeeks
		}
		g = g.PadTo(yearWeeks)
	}
	return g, nil
}

func parseCell(raw string) (int, int, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return 0, 0, services.Wrap(services.ErrValidation, "cli", "toggle", fmt.Sprintf("cell %q must be ROW,COL", raw), nil)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, services.Wrap(services.ErrValidation, "cli", "toggle", fmt.Sprintf("cell %q has a bad row", raw), err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, services.Wrap(services.ErrValidation, "cli", "toggle", fmt.Sprintf("cell %q has a bad column", raw), err)
	}
	return row, col, nil
}

// planFlags carries the date and intensity shared by schedule and generate.
type planFlags struct {
	patternFlags
	date      string
	intensity int
	repo      string
}

func (p *planFlags) register(cmd *cobra.Command) {
	p.patternFlags.register(cmd)
	cmd.Flags().StringVarP(&p.date, "date", "d", "", "Any day in the first week (YYYY-MM-DD, default today)")
	cmd.Flags().IntVarP(&p.intensity, "intensity", "i", 0, "Commits per active cell (default from config)")
	cmd.Flags().StringVar(&p.repo, "repo", "", "Repository name (default derived from the text)")
}

func (p *planFlags) request(cfg *config.Config, args []string) (generation.Request, error) {
	text := strings.Join(args, " ")
	req := generation.Request{
		Text:      text,
		RepoName:  strings.TrimSpace(p.repo),
		Intensity: p.intensity,
	}
	if strings.TrimSpace(p.date) != "" {
		anchor, err := schedule.ParseDate(p.date)
		if err != nil {
			return generation.Request{}, err
		}
		req.Anchor = anchor
	}
	if p.custom() || p.pad {
		g, err := p.build(text, cfg.Generation.YearWeeks)
		if err != nil {
			return generation.Request{}, err
		}
		req.Grid = &g
	}
	return req, nil
}

func (p *planFlags) plan(cfg *config.Config, args []string) (generation.Plan, error) {
	req, err := p.request(cfg, args)
	if err != nil {
		return generation.Plan{}, err
	}
	return generation.Prepare(req, generation.LimitsFromConfig(cfg), time.Now())
}

func renderGrid(g grid.Grid, colorize bool) string {
	if colorize {
		return grid.Render(g, activeCell.Render("■ "), idleCell.Render("■ "))
	}
	return grid.Render(g, "#", ".")
}
