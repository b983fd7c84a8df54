package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/cloudconfig"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/plugins"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/userdata"
)

// Plan handles the plan command. It prints the execution order of the
// document at path without running any directive.
func Plan(ctx context.Context, out io.Writer, configPath, path string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	data, err := userdata.Read(ctx, userdata.FileSource{Path: path})
	if err != nil {
		return err
	}
	directives, err := cloudconfig.ParseDocument(bytes.NewReader(data))
	if err != nil {
		return err
	}

	sys := newSystem(logr.Discard())
	registry, err := plugins.NewRegistry(plugins.Deps{Config: cfg, Accounts: sys, Hostname: sys})
	if err != nil {
		return fmt.Errorf("failed to build directive registry: %w", err)
	}

	steps := cloudconfig.NewExecutor(directives, cfg.CloudConfigPlugins, registry).Plan()
	return renderPlan(out, steps)
}

var (
	planColorRed = lipgloss.Color("#ef4444")
	planColorDim = lipgloss.Color("#6b7280")
)

// renderPlan prints one row per step. Colors are dropped when out is not a
// terminal.
func renderPlan(out io.Writer, steps []cloudconfig.Step) error {
	if len(steps) == 0 {
		_, err := fmt.Fprintln(out, "No directives.")
		return err
	}

	renderer := lipgloss.NewRenderer(out)
	var (
		plainStyle       = renderer.NewStyle()
		headerStyle      = renderer.NewStyle().Bold(true)
		unsupportedStyle = renderer.NewStyle().Foreground(planColorRed)
		defaultStyle     = renderer.NewStyle().Foreground(planColorDim)
	)

	rows := [][]string{{"ORDER", "DIRECTIVE", "PRIORITY", "SUPPORTED"}}
	for i, s := range steps {
		priority := strconv.Itoa(s.Priority)
		if s.Priority == cloudconfig.DefaultOrderValue {
			priority = "default"
		}
		supported := "yes"
		if !s.Supported {
			supported = "no"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), s.Name, priority, supported})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for c, cell := range row {
			widths[c] = max(widths[c], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	for r, row := range rows {
		for c, cell := range row {
			style := plainStyle
			switch {
			case r == 0:
				style = headerStyle
			case c == 2 && cell == "default":
				style = defaultStyle
			case c == 3 && cell == "no":
				style = unsupportedStyle
			}
			if c < len(row)-1 {
				b.WriteString(style.Width(widths[c] + 2).Render(cell))
			} else {
				b.WriteString(style.Render(cell))
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(out, b.String())
	return err
}
