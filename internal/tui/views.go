package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/steamrun/internal/query"
	"github.com/mmcdole/steamrun/internal/tui/styles"
)

// View renders the UI
func (m Model) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(styles.DimStyle.Render("Reading Steam library..."))
		b.WriteString("\n")
	case len(m.results) == 0:
		b.WriteString(styles.DimStyle.Render("No matches"))
		b.WriteString("\n")
	default:
		end := min(len(m.results), m.offset+m.visibleRows())
		for i := m.offset; i < end; i++ {
			b.WriteString(renderResult(m.results[i], i == m.cursor, width))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter(width))
	return b.String()
}

// renderResult renders a two-line result row
func renderResult(r query.Result, selected bool, width int) string {
	badge := badgeFor(r)
	titleWidth := width - lipgloss.Width(badge) - 3

	title := r.Title
	matched := r.MatchedIndexes
	if truncated := styles.Truncate(title, titleWidth); truncated != title {
		title = truncated
		matched = nil
	}

	rowStyle := styles.NormalItemStyle
	subStyle := styles.DimStyle
	if selected {
		rowStyle = styles.SelectedItemStyle
		subStyle = styles.SelectedSubtitleStyle
	}

	line := " " + badge + rowStyle.Render(" ") + highlightMatches(title, matched, selected)
	line = padRow(line, width, rowStyle)

	sub := strings.Repeat(" ", lipgloss.Width(badge)+2) + styles.Truncate(r.Subtitle, titleWidth)
	return line + "\n" + padRow(subStyle.Render(sub), width, rowStyle) + "\n"
}

func badgeFor(r query.Result) string {
	switch r.Kind {
	case query.KindApp:
		return styles.BadgeStyle.Render("APP")
	case query.KindSourceMod:
		return styles.DimBadgeStyle.Render("MOD")
	case query.KindShortcut:
		return styles.DimBadgeStyle.Render("EXT")
	default:
		return styles.ErrorBadgeStyle.Render("ERR")
	}
}

// padRow fills the rest of the row so a selected row has a uniform background
func padRow(s string, width int, style lipgloss.Style) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + style.Render(strings.Repeat(" ", pad))
	}
	return s
}

// highlightMatches renders text with the bytes at matchedIndexes highlighted.
// Consecutive bytes with the same style are rendered together.
func highlightMatches(text string, matchedIndexes []int, selected bool) string {
	normal := styles.NormalItemStyle
	match := styles.MatchHighlightStyle
	if selected {
		normal = styles.SelectedItemStyle
		match = styles.MatchHighlightSelectedStyle
	}
	if len(matchedIndexes) == 0 {
		return normal.Render(text)
	}

	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	var out, run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runMatched {
			out.WriteString(match.Render(run.String()))
		} else {
			out.WriteString(normal.Render(run.String()))
		}
		run.Reset()
	}
	for i, r := range text {
		isMatch := matchSet[i]
		if isMatch != runMatched {
			flush()
			runMatched = isMatch
		}
		run.WriteRune(r)
	}
	flush()
	return out.String()
}

func (m Model) renderFooter(width int) string {
	if m.status != "" {
		style := styles.SuccessStyle
		if m.statusErr {
			style = styles.ErrorStyle
		}
		return style.Render(styles.Truncate(m.status, width))
	}

	var parts []string
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	count := styles.DimStyle.Render(fmt.Sprintf("%d results", len(m.results)))
	return strings.Join(parts, styles.HelpDescStyle.Render(" • ")) + "  " + count
}
