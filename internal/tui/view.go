package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/countdown/internal/countdown"
	"github.com/ensigniasec/countdown/internal/selector"
)

func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	sections := []string{
		renderHeader(m),
		renderTimer(m.snap, m.settings.FinishedMessage),
	}
	if bar := renderProgress(m); bar != "" {
		sections = append(sections, bar)
	}
	sections = append(sections, renderForm(m))
	if m.helpVisible {
		sections = append(sections, renderHelp(m))
	}
	sections = append(sections, renderFooter())

	body := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body + "\n"
}

func renderHeader(m Model) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(primaryColor)).Render(m.settings.Title)
	if m.settings.Subtitle == "" {
		return title + "\n"
	}
	subtitle := lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor)).Render(m.settings.Subtitle)
	return lipgloss.JoinVertical(lipgloss.Center, title, subtitle) + "\n"
}

// timerStyle picks the digit style for an urgency band. Critical blinks.
func timerStyle(u countdown.Urgency) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch u {
	case countdown.Critical, countdown.Expired:
		return style.Foreground(lipgloss.Color(dangerColor)).Blink(true)
	case countdown.Urgent:
		return style.Foreground(lipgloss.Color(warningColor))
	default:
		return style.Foreground(lipgloss.Color(primaryColor))
	}
}

func renderTimer(snap countdown.Snapshot, finishedMessage string) string {
	switch snap.State {
	case countdown.StateIdle:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(mutedColor)).
			Render("Set a deadline to start the countdown") + "\n"

	case countdown.StateExpired:
		headline := timerStyle(countdown.Expired).Render("TIME'S UP!")
		message := lipgloss.NewStyle().Foreground(lipgloss.Color(primaryColor)).Render(finishedMessage)
		return lipgloss.JoinVertical(lipgloss.Center, headline, "", message) + "\n"
	}

	digits := timerStyle(snap.Urgency)
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))
	column := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)

	fields := snap.Remaining.Fields()
	cols := make([]string, 0, len(fields)*2) //nolint:mnd // field plus separator
	for i, f := range fields {
		if i > 0 {
			cols = append(cols, digits.Render(":"))
		}
		cols = append(cols, column.Render(lipgloss.JoinVertical(lipgloss.Center, digits.Render(f.Value), label.Render(f.Label))))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	if snap.Urgency == countdown.Critical {
		warn := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(dangerColor)).Render("⚠ FINAL COUNTDOWN ⚠")
		out = lipgloss.JoinVertical(lipgloss.Center, out, "", warn)
	}
	return out + "\n"
}

// renderProgress shows how much of the window between confirmation and the
// deadline has elapsed. Empty while idle or expired.
func renderProgress(m Model) string {
	if m.snap.State != countdown.StateCounting {
		return ""
	}
	window := m.deadline.Sub(m.setAt)
	if window <= 0 {
		return ""
	}
	pct := 1 - float64(m.snap.Remaining.Total)/float64(window)
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	return m.progress.ViewAs(pct) + "\n"
}

func renderForm(m Model) string {
	label := lipgloss.NewStyle().Bold(true)
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))

	dateHint := "Pick a date"
	if m.sel.HasDate() {
		dateHint = selector.FormatDate(m.sel.Date)
	}

	var b strings.Builder
	b.WriteString(label.Render("Select Date"))
	b.WriteString("\n")
	b.WriteString(m.dateInput.View())
	b.WriteString("  ")
	b.WriteString(hint.Render(dateHint))
	b.WriteString("\n\n")
	b.WriteString(label.Render("Select Time"))
	b.WriteString("\n")
	b.WriteString(m.timeInput.View())
	b.WriteString("\n\n")
	b.WriteString(renderButton(m.canConfirm()))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(accentColor)).
		Padding(1, 2)

	out := box.Render(b.String())
	if !m.deadline.IsZero() {
		current := hint.Render("Current deadline: ") +
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(primaryColor)).Render(selector.FormatDeadline(m.deadline))
		out = lipgloss.JoinVertical(lipgloss.Center, out, current)
	}
	return out + "\n"
}

func renderButton(enabled bool) string {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 2)
	if !enabled {
		return style.Foreground(lipgloss.Color(disabledColor)).Render("[ START COUNTDOWN ]")
	}
	return style.Foreground(lipgloss.Color("0")).Background(lipgloss.Color(primaryColor)).Render("[ START COUNTDOWN ]")
}

func renderFooter() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor)).
		Render("tab: field • t: today • ↑/↓: day • enter: start • x: clear • ?: help • esc: quit")
}

func renderHelp(m Model) string {
	border := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Foreground(lipgloss.Color(accentColor))
	content := []string{"Help", ""}
	for _, b := range m.keys.helpBindings() {
		h := b.Help()
		content = append(content, h.Key+": "+h.Desc)
	}
	return border.Render(strings.Join(content, "\n")) + "\n"
}
