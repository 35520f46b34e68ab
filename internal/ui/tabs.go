package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one sheet in the tab bar.
type Tab struct {
	Title    string
	Modified bool
}

var (
	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Background(lipgloss.Color("#1A1A1A")).
				Padding(0, 2)

	tabBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#0F0F0F"))
)

// RenderTabBar renders the sheet tabs with the active one highlighted. When
// the tabs are wider than width, tabs before the active one are dropped.
func RenderTabBar(tabs []Tab, active int, width int) string {
	parts := make([]string, len(tabs))
	for i, tab := range tabs {
		label := tab.Title
		if tab.Modified {
			label = "● " + label
		}
		if i == active {
			parts[i] = tabActiveStyle.Render(label)
		} else {
			parts[i] = tabInactiveStyle.Render(label)
		}
	}

	first := 0
	for first < active && lipgloss.Width(strings.Join(parts[first:], " ")) > width {
		first++
	}
	bar := strings.Join(parts[first:], " ")
	if first > 0 {
		bar = tabInactiveStyle.Render("‹") + " " + bar
	}
	if padding := width - lipgloss.Width(bar); padding > 0 {
		bar += strings.Repeat(" ", padding)
	}

	return tabBarStyle.Width(width).Render(bar)
}

// TabTitle returns the sheet name, or a numbered placeholder for a blank one.
func TabTitle(name string, index int) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return fmt.Sprintf("Sheet %d", index+1)
}
