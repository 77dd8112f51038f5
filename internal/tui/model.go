package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoiceflow/internal/app"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenInvoices
	ScreenHistory
	ScreenPayments
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenDashboard:
		return "Dashboard"
	case ScreenInvoices:
		return "Invoices"
	case ScreenHistory:
		return "History"
	case ScreenPayments:
		return "Payment Methods"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	ctx           context.Context
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	screens map[Screen]tea.Model

	// Error state
	err error
}

// New creates a new root model
func New(ctx context.Context, a *app.App) Model {
	return Model{
		ctx:           ctx,
		app:           a,
		currentScreen: ScreenDashboard,
		screens: map[Screen]tea.Model{
			ScreenDashboard: NewDashboardModel(ctx, a),
		},
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.screens[ScreenDashboard].Init()
}

func (m *Model) newScreen(screen Screen) tea.Model {
	switch screen {
	case ScreenDashboard:
		return NewDashboardModel(m.ctx, m.app)
	case ScreenInvoices:
		return NewInvoicesModel(m.ctx, m.app)
	case ScreenHistory:
		return NewHistoryModel(m.ctx, m.app)
	case ScreenPayments:
		return NewPaymentsModel(m.ctx, m.app)
	case ScreenSettings:
		return NewSettingsModel(m.app)
	}
	return nil
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	if _, ok := m.screens[screen]; !ok {
		s := m.newScreen(screen)
		if s == nil {
			return nil
		}
		m.screens[screen] = s
		return s.Init()
	}
	return func() tea.Msg { return RefreshDataMsg{} }
}

// switchTo makes screen current and loads its data
func (m *Model) switchTo(screen Screen) tea.Cmd {
	m.currentScreen = screen
	m.err = nil
	return m.initScreen(screen)
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys (O, I, H, P, Q) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.screens[m.currentScreen].(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			// Global key handlers (screen navigation)
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit
			case key.Matches(msg, DefaultKeyMap.Dashboard):
				return m, m.switchTo(ScreenDashboard)
			case key.Matches(msg, DefaultKeyMap.Invoices):
				return m, m.switchTo(ScreenInvoices)
			case key.Matches(msg, DefaultKeyMap.History):
				return m, m.switchTo(ScreenHistory)
			case key.Matches(msg, DefaultKeyMap.Payments):
				return m, m.switchTo(ScreenPayments)
			case key.Matches(msg, DefaultKeyMap.Settings):
				return m, m.switchTo(ScreenSettings)
			}
		}

	case SwitchScreenMsg:
		return m, m.switchTo(msg.Screen)

	case OpenInvoiceMsg:
		// The invoices screen loads the detail itself; a first visit also loads the list
		m.currentScreen = ScreenInvoices
		m.err = nil
		var cmds []tea.Cmd
		if _, ok := m.screens[ScreenInvoices]; !ok {
			m.screens[ScreenInvoices] = NewInvoicesModel(m.ctx, m.app)
			cmds = append(cmds, m.screens[ScreenInvoices].Init())
		}
		var cmd tea.Cmd
		m.screens[ScreenInvoices], cmd = m.screens[ScreenInvoices].Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	if screen, ok := m.screens[m.currentScreen]; ok {
		m.screens[m.currentScreen], cmd = screen.Update(msg)
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Header
	header := headerStyle.Render(fmt.Sprintf("invoiceflow - %s", m.currentScreen.String()))

	// Footer with navigation keys
	footer := footerStyle.Render("[O]verview  [I]nvoices  [H]istory  [P]ayments  [,] Settings  [Q]uit")

	// Current screen content
	content := "Loading..."
	if screen, ok := m.screens[m.currentScreen]; ok {
		content = screen.View()
	}

	// Error display
	errorDisplay := ""
	if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled
func Run(ctx context.Context, a *app.App) error {
	p := tea.NewProgram(New(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
