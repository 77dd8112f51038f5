package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/invoiceflow/internal/app"
	"github.com/andy/invoiceflow/internal/domain"
	"github.com/andy/invoiceflow/internal/service"
)

type historyTab int

const (
	historyTabApproved historyTab = iota
	historyTabRejected
)

// HistoryModel lists decided invoices split by outcome
type HistoryModel struct {
	ctx     context.Context
	app     *app.App
	history *service.History
	tab     historyTab
	cursor  int
	loading bool
	err     error
}

type historyDataMsg struct {
	history *service.History
	err     error
}

// NewHistoryModel creates a new history screen model
func NewHistoryModel(ctx context.Context, a *app.App) tea.Model {
	return &HistoryModel{
		ctx:     ctx,
		app:     a,
		loading: true,
	}
}

func (m *HistoryModel) Init() tea.Cmd {
	return m.loadHistory()
}

func (m *HistoryModel) loadHistory() tea.Cmd {
	return func() tea.Msg {
		h, err := m.app.InvoiceService.History(m.ctx)
		return historyDataMsg{history: h, err: err}
	}
}

// current returns the invoices of the active tab
func (m *HistoryModel) current() []domain.Invoice {
	if m.history == nil {
		return nil
	}
	if m.tab == historyTabRejected {
		return m.history.Rejected
	}
	return m.history.Approved
}

func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadHistory()

	case historyDataMsg:
		m.loading = false
		m.err = msg.err
		m.history = msg.history
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch {
		case key.Matches(msg, DefaultKeyMap.Left), key.Matches(msg, DefaultKeyMap.Right), msg.String() == "tab":
			if m.tab == historyTabApproved {
				m.tab = historyTabRejected
			} else {
				m.tab = historyTabApproved
			}
			m.cursor = 0
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.current())-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			if invoices := m.current(); len(invoices) > 0 {
				id := invoices[m.cursor].ID
				return m, func() tea.Msg { return OpenInvoiceMsg{ID: id} }
			}
		}
	}

	return m, nil
}

func (m *HistoryModel) View() string {
	if m.loading {
		return "Loading history..."
	}

	var s string
	s += titleStyle.Render("Invoice History") + "\n\n"
	s += renderError(m.err)
	if m.history == nil {
		return s
	}

	approved := fmt.Sprintf(" Approved (%d) ", len(m.history.Approved))
	rejected := fmt.Sprintf(" Rejected (%d) ", len(m.history.Rejected))
	if m.tab == historyTabApproved {
		s += "  " + selectedStyle.Render(approved) + "  " + subtitleStyle.Render(rejected) + "\n\n"
	} else {
		s += "  " + subtitleStyle.Render(approved) + "  " + selectedStyle.Render(rejected) + "\n\n"
	}

	invoices := m.current()
	if len(invoices) == 0 {
		s += subtitleStyle.Render("  Nothing here yet") + "\n"
	}
	for i, inv := range invoices {
		line := fmt.Sprintf("  %-4s  %-24s  %10s  %-8s  %s",
			truncateStr(inv.ID, 4),
			truncateStr(inv.Vendor, 24),
			inv.Amount,
			truncateStr(inv.Date, 8),
			verificationBadge(inv.VerificationStatus),
		)
		if i == m.cursor {
			s += selectedStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  tab/←/→: switch list  j/k: navigate  enter: open invoice")
	return s
}
