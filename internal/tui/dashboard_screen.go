package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoiceflow/internal/app"
	"github.com/andy/invoiceflow/internal/domain"
	"github.com/andy/invoiceflow/internal/service"
)

// DashboardModel represents the dashboard home screen
type DashboardModel struct {
	ctx context.Context
	app *app.App

	// Data
	dashboard *service.Dashboard
	cursor    int

	loading bool
	err     error
}

type dashboardDataMsg struct {
	dashboard *service.Dashboard
	err       error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(ctx context.Context, a *app.App) tea.Model {
	return &DashboardModel{
		ctx:     ctx,
		app:     a,
		loading: true,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		d, err := m.app.DashboardService.GetDashboard(m.ctx)
		if err != nil {
			return dashboardDataMsg{err: fmt.Errorf("dashboard: %w", err)}
		}
		return dashboardDataMsg{dashboard: d}
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.dashboard = msg.dashboard
			if m.cursor >= len(m.dashboard.Recent) {
				m.cursor = max(len(m.dashboard.Recent)-1, 0)
			}
		}
		return m, nil

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()

	case tea.KeyMsg:
		if m.loading || m.dashboard == nil {
			return m, nil
		}
		recent := m.dashboard.Recent
		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(recent)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(recent) > 0 {
				id := recent[m.cursor].ID
				return m, func() tea.Msg { return OpenInvoiceMsg{ID: id} }
			}
		}
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	if m.loading {
		return "Loading dashboard..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string
	s += m.renderCards() + "\n\n"

	if def := m.dashboard.DefaultMethod; def != nil {
		s += fmt.Sprintf("  Paying with %s", lipgloss.NewStyle().Bold(true).Render(def.Label()))
		s += subtitleStyle.Render(fmt.Sprintf("  (%d method(s) on file)", m.dashboard.PaymentMethods)) + "\n"
	} else {
		s += lipgloss.NewStyle().Foreground(warningColor).Render("  No default payment method") + "\n"
	}

	s += "\n" + m.renderRecent()
	return s
}

func (m *DashboardModel) renderCards() string {
	metrics := m.dashboard.Metrics
	cards := []string{
		metricCard("Pending Invoices", fmt.Sprintf("%d", metrics.PendingCount),
			domain.FormatAmount(metrics.PendingAmount)+" awaiting review"),
		metricCard("Approved", domain.FormatAmount(metrics.ApprovedAmount),
			fmt.Sprintf("%d invoice(s)", metrics.ApprovedCount)),
		metricCard("Rejected", domain.FormatAmount(metrics.RejectedAmount),
			fmt.Sprintf("%d invoice(s)", metrics.RejectedCount)),
		metricCard("Needs Attention", fmt.Sprintf("%d", metrics.FlaggedCount),
			"suspicious or flagged vendors"),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(title, value, caption string) string {
	body := subtitleStyle.Render(title) + "\n" +
		cardValueStyle.Render(value) + "\n" +
		subtitleStyle.Render(truncateStr(caption, 20))
	return cardStyle.Render(body)
}

func (m *DashboardModel) renderRecent() string {
	header := "  Recent Invoices\n"
	recent := m.dashboard.Recent
	if len(recent) == 0 {
		return header + subtitleStyle.Render("  No invoices") + "\n"
	}

	s := header
	for i, inv := range recent {
		line := fmt.Sprintf("  %-24s %10s  %-8s  %-9s %s",
			truncateStr(inv.Vendor, 24),
			inv.Amount,
			truncateStr(inv.Date, 8),
			statusBadge(inv.Status),
			verificationBadge(inv.VerificationStatus),
		)
		if i == m.cursor {
			s += selectedStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: open invoice")
	return s
}
