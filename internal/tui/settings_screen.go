package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoiceflow/internal/app"
)

// SettingsModel shows the configuration the session was started with.
// Changes go in the config file and apply to the next session.
type SettingsModel struct {
	app *app.App
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{app: a}
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m *SettingsModel) View() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	cfg := m.app.Config

	labelStyle := lipgloss.NewStyle().Bold(true).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)
	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s\n", labelStyle.Render(label), valueStyle.Render(value))
	}

	seedFile := cfg.Session.SeedFile
	if seedFile == "" {
		seedFile = "built-in"
	}
	hold := "off"
	if cfg.Review.HoldUnverified {
		hold = "on (suspicious and flagged vendors cannot be approved)"
	}
	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = "none"
	}

	s += subtitleStyle.Render("  Session") + "\n\n"
	s += row("Seed File:", seedFile)
	s += row("Verification Hold:", hold)
	s += row("Recent Invoices:", strconv.Itoa(cfg.Dashboard.RecentCount))
	s += "\n"

	s += subtitleStyle.Render("  Logging") + "\n\n"
	s += row("Level:", cfg.Logging.Level)
	s += row("Format:", cfg.Logging.Format)
	s += row("File:", logFile)

	s += "\n" + helpStyle.Render("  Edit the config file and restart to change these. Decisions are not saved.")
	return s
}
