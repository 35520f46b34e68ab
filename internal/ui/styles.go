package ui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#7D56F4")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	gutterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))

	columnHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#AAAAAA")).
				Bold(true)

	activeHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7D56F4")).
				Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FFFFFF")).
			Foreground(lipgloss.Color("#000000"))

	editCellStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#264F78")).
			Foreground(lipgloss.Color("#FFFFFF"))

	searchHLStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#9E6A03")).
			Foreground(lipgloss.Color("#FFFFFF"))

	formulaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6CB6FF"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA"))

	modeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#7D56F4")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	commandBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1E1E1E")).
			Foreground(lipgloss.Color("#FFFFFF"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5C07B"))

	editorCursorStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#FFFFFF")).
				Foreground(lipgloss.Color("#000000"))

	editorVisualStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#264F78")).
				Foreground(lipgloss.Color("#FFFFFF"))
)
