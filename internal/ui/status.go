package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"xl-vim/internal/grid"
	"xl-vim/internal/session"
)

// RenderHeader renders the title line: source and modified marker.
func RenderHeader(v session.View, width int) string {
	title := fmt.Sprintf(" xl-vim: %s", v.Source)
	if v.Dirty {
		title += " [modified]"
	}
	if v.Saving {
		title += " [saving]"
	}
	return headerStyle.Width(width).Render(title)
}

func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// RenderStatusBar renders the mode line, or the prompt while a command or
// search is being typed.
func RenderStatusBar(v session.View, width int) string {
	maxRow, maxCol := v.Sheet.Extent()
	right := fmt.Sprintf(" %s │ %d×%d ", grid.RefName(v.Cursor), maxRow+1, maxCol+1)

	if v.Prompt != "" {
		return commandBarStyle.Width(width).Render(spread(" "+v.Prompt, right, width))
	}

	mode := v.Mode.String()
	if v.Editor != nil {
		mode += ":" + v.Editor.Mode().String()
	}
	left := modeStyle.Render(fmt.Sprintf(" %s ", mode))
	info := " " + v.Sheet.Name()
	if c, ok := v.Sheet.Cell(v.Cursor.Row, v.Cursor.Col); ok && v.Editor == nil {
		info += " │ " + c.Content
	}
	return statusStyle.Width(width).Render(spread(left+info, right, width))
}

// RenderEditLine shows the cell editor's buffer with its cursor or selection.
func RenderEditLine(v session.View, width int) string {
	e := v.Editor
	prefix := fmt.Sprintf(" %s │ ", grid.RefName(v.Cursor))
	buf := []rune(e.Value())
	start, end, visual := e.Selection()

	var sb strings.Builder
	sb.WriteString(prefix)
	for i, r := range buf {
		ch := string(r)
		switch {
		case i == e.Cursor():
			sb.WriteString(editorCursorStyle.Render(ch))
		case visual && i >= start && i <= end:
			sb.WriteString(editorVisualStyle.Render(ch))
		default:
			sb.WriteString(ch)
		}
	}
	if e.Cursor() >= len(buf) {
		sb.WriteString(editorCursorStyle.Render(" "))
	}
	line := sb.String()
	if st := e.Status(); st != "" {
		line = spread(line, st+" ", width)
	}
	if e.Pending() != 0 {
		line = spread(line, string(e.Pending())+" ", width)
	}
	return commandBarStyle.Width(width).Render(line)
}

// RenderNotices renders one line per notice, oldest first.
func RenderNotices(notices []string, width int) string {
	lines := make([]string, len(notices))
	for i, n := range notices {
		lines[i] = noticeStyle.Width(width).Render(" " + n)
	}
	return strings.Join(lines, "\n")
}

// RenderKeyHints renders the short key help line.
func RenderKeyHints(h help.Model, keys session.KeyMap, width int) string {
	h.Width = width
	return h.View(keys)
}

// Screen lays out the whole browse screen and scrolls vp to keep the cursor
// visible.
func Screen(v session.View, vp *Viewport, hints help.Model, keys session.KeyMap, width, height int) string {
	header := RenderHeader(v, width)
	tabs := RenderTabBar(tabsFor(v), v.Active, width)
	status := RenderStatusBar(v, width)
	hintLine := RenderKeyHints(hints, keys, width)

	fixed := []string{header, tabs}
	bottom := []string{}
	if v.Editor != nil {
		bottom = append(bottom, RenderEditLine(v, width))
	}
	if len(v.Notices) > 0 {
		bottom = append(bottom, RenderNotices(v.Notices, width))
	}
	bottom = append(bottom, status, hintLine)

	used := 0
	for _, s := range append(fixed, bottom...) {
		used += lipgloss.Height(s)
	}
	rows := max(1, height-used-1)
	vp.Follow(v, width, rows)
	body := RenderGrid(v, *vp, width, rows)

	parts := append(fixed, body)
	parts = append(parts, bottom...)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func tabsFor(v session.View) []Tab {
	tabs := make([]Tab, len(v.SheetNames))
	for i, name := range v.SheetNames {
		tabs[i] = Tab{Title: TabTitle(name, i), Modified: i < len(v.SheetDirty) && v.SheetDirty[i]}
	}
	return tabs
}
