package drill

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomdyson/go-amee/internal/domain"
)

func drillView(path string, choices domain.Choices, result domain.DrillResult, s styles) string {
	lines := []string{
		s.title.Render("Drilldown " + path),
	}
	lines = append(lines, choiceLines(choices, s)...)

	if result.Resolved() {
		lines = append(lines, s.section.Render(lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.key.Render("data item:"),
			" ",
			s.uid.Render(result.UID),
		)))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	next := []string{
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.key.Render("choose"),
			" ",
			s.attr.Render(result.Next.Name),
			" ",
			s.header.Render(fmt.Sprintf("(%d options)", len(result.Next.Choices))),
		),
	}
	if len(result.Next.Choices) == 0 {
		next = append(next, s.empty.Render("No options available."))
	}
	for _, option := range result.Next.Choices {
		next = append(next, s.option.Render("- "+option))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, next...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func choiceLines(choices domain.Choices, s styles) []string {
	if len(choices) == 0 {
		return []string{s.header.Render("no choices made")}
	}

	names := make([]string, 0, len(choices))
	for name := range choices {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render(name), " = ", s.value.Render(choices[name])))
	}

	return lines
}

func profilesView(uids []string, s styles) string {
	lines := []string{
		s.title.Render("AMEE Profiles"),
		s.header.Render(fmt.Sprintf("profiles: %d", len(uids))),
	}
	if len(uids) == 0 {
		lines = append(lines, s.empty.Render("No profiles."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, uid := range uids {
		lines = append(lines, s.uid.Render(uid))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func amountView(uri string, amount domain.Amount, s styles) string {
	unit := amount.Unit
	if unit == "" {
		unit = "unknown unit"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		s.title.Render("Profile item"),
		s.header.Render(uri),
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.key.Render("amount:"),
			" ",
			s.quantity.Render(strconv.FormatFloat(amount.Value, 'f', -1, 64)),
			" ",
			s.unit.Render(unit),
		),
	)
}
