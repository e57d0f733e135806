package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/gothub-kernel/internal/application"
	"github.com/bnema/gothub-kernel/internal/domain"
)

const barWidth = 24

type Report struct {
	UserID string
	Name   string
	Email  string
	Model  domain.ModelID
	Usage  []application.UsageStatus
}

type RenderOptions struct {
	Now time.Time
}

func renderView(report Report, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("GotHub Usage"),
		s.header.Render(identityLine(report)),
	}
	if report.Model != "" {
		lines = append(lines, s.header.Render("model: "+string(report.Model)))
	}

	if len(report.Usage) == 0 {
		lines = append(lines, s.empty.Render("No usage recorded."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, usage := range report.Usage {
		lines = append(lines, s.section.Render(renderCapability(usage, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func identityLine(report Report) string {
	name := strings.TrimSpace(report.Name)
	if name == "" {
		name = report.UserID
	}
	if report.Email != "" {
		return fmt.Sprintf("user: %s <%s>", name, report.Email)
	}
	return "user: " + name
}

func renderCapability(usage application.UsageStatus, opts RenderOptions, s styles) string {
	record := usage.Record
	parts := []string{
		s.capability.Render(capabilityTitle(usage.Capability)),
		quotaLine(usage, s),
	}

	detail := fmt.Sprintf("characters: %s", record.CharactersCompact())
	if usage.Capability == domain.CapabilityImage {
		detail += fmt.Sprintf("  images: %d", record.Images)
	}
	parts = append(parts, s.detail.Render(detail))

	if !record.UpdatedAt.IsZero() {
		parts = append(parts, s.meta.Render("last used "+formatRelative(record.UpdatedAt, opts.Now)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func quotaLine(usage application.UsageStatus, s styles) string {
	used := clampPercent(usage.UsedPercent)
	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render("calls:"),
		" ",
		renderProgressBar(used, barWidth, s),
		" ",
		lipgloss.NewStyle().Foreground(interpolateColor(100-used, 0, 100)).Render(fmt.Sprintf("%2.0f%% used", used)),
		" ",
		s.meta.Render(fmt.Sprintf("(%d/%d)", usage.Record.Chats, usage.MaxCalls)),
	)

	if usage.MaxCalls > 0 && usage.Record.Chats >= usage.MaxCalls {
		line += " " + s.warning.Render("[quota reached]")
	}
	return line
}

func capabilityTitle(capability domain.Capability) string {
	switch capability {
	case domain.CapabilityImage:
		return "Images"
	default:
		return "Chat"
	}
}

// renderProgressBar fills the bar with what is still available.
func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	leftFraction := (100.0 - clampPercent(usedPercent)) / 100.0
	filled := int(math.Round(float64(width) * leftFraction))
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatRelative(at, now time.Time) string {
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour") + " ago"
	default:
		return plural(int(elapsed.Hours()/24), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, lo, hi float64) lipgloss.Color {
	if hi == lo {
		return lipgloss.Color("255")
	}

	normalized := (value - lo) / (hi - lo)
	normalized = min(max(normalized, 0), 1)

	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
