package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"xl-vim/internal/clip"
	"xl-vim/internal/config"
	"xl-vim/internal/export"
	"xl-vim/internal/session"
	"xl-vim/internal/ui"
)

var (
	jsonExport  bool
	direction   string
	headerCount int
)

var rootCmd = &cobra.Command{
	Use:   "xl-vim [flags] <file|user@host:path>",
	Short: "Vim-style terminal editor for Excel workbooks",
	Long: `Browse and edit Excel workbooks (.xlsx, .xlsm) with Vim key bindings.

A workbook on another host is given as [user@]host:path. It is copied over
SCP, and :w uploads the saved copy next to it.

Saving never overwrites: :w writes <name>_<YYYYMMDD_HHMMSS>.xlsx.

Examples:
  xl-vim report.xlsx
  xl-vim alice@files:/srv/data/report.xlsx
  xl-vim -j -d v -r 2 report.xlsx > report.json`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().BoolVarP(&jsonExport, "json-export", "j", false, "Print every sheet as JSON to stdout and exit")
	rootCmd.Flags().StringVarP(&direction, "direction", "d", "h", "Header direction for JSON export: h (rows) or v (columns)")
	rootCmd.Flags().IntVarP(&headerCount, "header-count", "r", 1, "Number of header rows or columns for JSON export")
}

// AppModel is the root application model.
type AppModel struct {
	session  *session.Session
	vp       *ui.Viewport
	hints    help.Model
	help     ui.Help
	showHelp bool
	width    int
	height   int
}

func newAppModel(s *session.Session) AppModel {
	return AppModel{
		session: s,
		vp:      &ui.Viewport{},
		hints:   help.New(),
		help:    ui.NewHelp(80, 24),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		return m, nil

	case session.QuitMsg:
		log.Printf("[AppModel] quit")
		return m, tea.Quit

	case session.HelpMsg:
		m.showHelp = !m.showHelp
		return m, nil

	case tea.KeyMsg:
		log.Printf("[AppModel] key: type=%d string=%q mode=%s", msg.Type, msg.String(), m.session.Mode().Kind())
		if msg.Type == tea.KeyCtrlC {
			if m.session.Workbook().Dirty() {
				log.Printf("[AppModel] ctrl+c with unsaved changes")
			}
			return m, tea.Quit
		}
		if m.showHelp {
			switch msg.String() {
			case "esc", "q", "enter":
				m.showHelp = false
				return m, nil
			}
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			return m, cmd
		}
	}

	return m, m.session.Update(msg)
}

func (m AppModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.showHelp {
		return m.help.View(m.width, m.height)
	}
	return ui.Screen(m.session.View(), m.vp, m.hints, m.session.Keys(), m.width, m.height)
}

func run(cmd *cobra.Command, args []string) error {
	dir, err := export.ParseDirection(direction)
	if err != nil {
		return err
	}
	if headerCount < 1 {
		return fmt.Errorf("%w: %d", export.ErrHeaderCount, headerCount)
	}
	if !jsonExport && !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal; use -j to export JSON instead")
	}

	f, err := tea.LogToFile(logPath(), "debug")
	if err != nil {
		return fmt.Errorf("could not open debug log: %w", err)
	}
	defer func() { _ = f.Close() }()
	log.Printf("=== xl-vim starting (log: %s) ===", logPath())

	cfg, err := config.Load()
	if err != nil || cfg == nil {
		cfg = config.Default()
	}

	src, err := openSource(args[0], cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := src.close(); err != nil {
			log.Printf("close source: %v", err)
		}
	}()
	if err := config.Save(cfg); err != nil {
		log.Printf("failed to save config: %v", err)
	}

	if jsonExport {
		return writeJSON(cmd.OutOrStdout(), src.wb, dir, headerCount)
	}

	s := session.New(src.wb, session.Options{
		Source:     src.name,
		ExportBase: src.exportBase,
		Config:     cfg,
		Store:      &recordingStore{Store: src.store},
		Clipboard:  clip.New(),
	})
	p := tea.NewProgram(newAppModel(s), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// logPath returns the path for the debug log file.
// When running from the project directory (go run / ./bin/xl-vim), logs go
// to .logs/debug.log.  When installed (e.g. /usr/local/bin), logs go to
// ~/.local/state/xl-vim/debug.log following XDG conventions.
func logPath() string {
	exe, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exe)
		cwd, _ := os.Getwd()
		if strings.HasPrefix(exeDir, cwd) || strings.Contains(exeDir, "go-build") {
			dir := filepath.Join(cwd, ".logs")
			_ = os.MkdirAll(dir, 0o755)
			return filepath.Join(dir, "debug.log")
		}
	}
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, _ := os.UserHomeDir()
		stateDir = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateDir, "xl-vim")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "debug.log")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
