package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoiceflow/internal/app"
	"github.com/andy/invoiceflow/internal/domain"
)

type invoiceViewMode int

const (
	invoiceViewList    invoiceViewMode = iota
	invoiceViewDetail                  // Viewing a single invoice
	invoiceViewComment                 // Typing a comment on the open invoice
)

// InvoicesModel is the review queue: a selectable list and a detail view
type InvoicesModel struct {
	ctx       context.Context
	app       *app.App
	mode      invoiceViewMode
	invoices  []domain.Invoice
	cursor    int
	selection *domain.Selection
	selected  *domain.Invoice
	changes   []*domain.StatusChange
	loading   bool
	err       error
	toast     *toast

	commentInput textinput.Model
}

// IsCapturingInput returns true when the comment input is active
func (m *InvoicesModel) IsCapturingInput() bool {
	return m.mode == invoiceViewComment
}

type invoicesDataMsg struct {
	invoices []domain.Invoice
	err      error
}

type invoiceDetailMsg struct {
	invoice *domain.Invoice
	changes []*domain.StatusChange
	err     error
}

// invoicesDecidedMsg reports a finished approve or reject
type invoicesDecidedMsg struct {
	status  domain.InvoiceStatus
	count   int
	skipped int
	single  bool
	err     error
}

type commentAddedMsg struct {
	err error
}

// NewInvoicesModel creates a new invoices screen model
func NewInvoicesModel(ctx context.Context, a *app.App) tea.Model {
	return &InvoicesModel{
		ctx:       ctx,
		app:       a,
		mode:      invoiceViewList,
		selection: domain.NewSelection(),
		loading:   true,
	}
}

func (m *InvoicesModel) Init() tea.Cmd {
	return m.loadInvoices()
}

func (m *InvoicesModel) loadInvoices() tea.Cmd {
	return func() tea.Msg {
		invoices, err := m.app.InvoiceService.ListInvoices(m.ctx)
		return invoicesDataMsg{invoices: invoices, err: err}
	}
}

func (m *InvoicesModel) loadDetail(id string) tea.Cmd {
	return func() tea.Msg {
		invoice, err := m.app.InvoiceService.GetInvoice(m.ctx, id)
		if err != nil {
			return invoiceDetailMsg{err: err}
		}

		changes, err := m.app.InvoiceService.StatusHistory(m.ctx, id)
		if err != nil {
			return invoiceDetailMsg{err: err}
		}

		return invoiceDetailMsg{invoice: invoice, changes: changes}
	}
}

// decideSelection approves or rejects every selected invoice
func (m *InvoicesModel) decideSelection(status domain.InvoiceStatus) tea.Cmd {
	ids := m.selection.IDs()
	svc := m.app.InvoiceService
	return func() tea.Msg {
		decide := svc.ApproveMany
		if status == domain.InvoiceStatusRejected {
			decide = svc.RejectMany
		}
		result, err := decide(m.ctx, ids)
		if err != nil {
			return invoicesDecidedMsg{status: status, err: err}
		}
		return invoicesDecidedMsg{status: status, count: len(result.Matched), skipped: len(result.Skipped)}
	}
}

// decideOpen approves or rejects the invoice shown in the detail view
func (m *InvoicesModel) decideOpen(status domain.InvoiceStatus) tea.Cmd {
	id := m.selected.ID
	svc := m.app.InvoiceService
	return func() tea.Msg {
		decide := svc.Approve
		if status == domain.InvoiceStatusRejected {
			decide = svc.Reject
		}
		err := decide(m.ctx, id)
		return invoicesDecidedMsg{status: status, count: 1, single: true, err: err}
	}
}

func (m *InvoicesModel) addComment() tea.Cmd {
	id := m.selected.ID
	body := m.commentInput.Value()
	return func() tea.Msg {
		_, err := m.app.InvoiceService.AddComment(m.ctx, id, body)
		return commentAddedMsg{err: err}
	}
}

func (m *InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadInvoices()

	case OpenInvoiceMsg:
		m.loading = true
		m.err = nil
		m.toast = nil
		return m, m.loadDetail(msg.ID)

	case invoicesDataMsg:
		m.loading = false
		m.err = msg.err
		m.invoices = msg.invoices
		if m.cursor >= len(m.invoices) {
			m.cursor = max(len(m.invoices)-1, 0)
		}
		return m, nil

	case invoiceDetailMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.selected = msg.invoice
		m.changes = msg.changes
		m.mode = invoiceViewDetail
		return m, nil

	case invoicesDecidedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.toast = decisionToast(msg)
		if msg.single {
			m.mode = invoiceViewList
			m.selected = nil
			m.changes = nil
		} else {
			m.selection.Clear()
		}
		m.loading = true
		return m, m.loadInvoices()

	case commentAddedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = invoiceViewDetail
		m.commentInput.Blur()
		m.toast = &toast{text: "Comment added"}
		m.loading = true
		return m, m.loadDetail(m.selected.ID)

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch m.mode {
		case invoiceViewList:
			return m.updateList(msg)
		case invoiceViewDetail:
			return m.updateDetail(msg)
		case invoiceViewComment:
			return m.updateComment(msg)
		}
	}

	// Forward all non-key messages to the comment input (for cursor blink, etc.)
	if m.mode == invoiceViewComment {
		var cmd tea.Cmd
		m.commentInput, cmd = m.commentInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *InvoicesModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	m.toast = nil

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.invoices)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.Toggle):
		if len(m.invoices) > 0 {
			m.selection.Toggle(m.invoices[m.cursor].ID)
		}
	case key.Matches(msg, DefaultKeyMap.ToggleAll):
		m.selection.ToggleAll(m.invoices)
	case key.Matches(msg, DefaultKeyMap.Clear):
		m.selection.Clear()
	case key.Matches(msg, DefaultKeyMap.Approve):
		if m.selection.Len() > 0 {
			m.loading = true
			return m, m.decideSelection(domain.InvoiceStatusApproved)
		}
	case key.Matches(msg, DefaultKeyMap.Reject):
		if m.selection.Len() > 0 {
			m.loading = true
			return m, m.decideSelection(domain.InvoiceStatusRejected)
		}
	case key.Matches(msg, DefaultKeyMap.Select):
		if len(m.invoices) > 0 {
			m.loading = true
			return m, m.loadDetail(m.invoices[m.cursor].ID)
		}
	}

	return m, nil
}

func (m *InvoicesModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		m.mode = invoiceViewList
		m.selected = nil
		m.changes = nil
		m.toast = nil
	case key.Matches(msg, DefaultKeyMap.Approve):
		m.toast = nil
		m.loading = true
		return m, m.decideOpen(domain.InvoiceStatusApproved)
	case key.Matches(msg, DefaultKeyMap.Reject):
		m.toast = nil
		m.loading = true
		return m, m.decideOpen(domain.InvoiceStatusRejected)
	case key.Matches(msg, DefaultKeyMap.Comment):
		m.toast = nil
		m.commentInput = textinput.New()
		m.commentInput.Placeholder = "Add a note for other reviewers"
		m.commentInput.CharLimit = 500
		m.commentInput.Width = 60
		m.mode = invoiceViewComment
		return m, m.commentInput.Focus()
	}
	return m, nil
}

func (m *InvoicesModel) updateComment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = invoiceViewDetail
		m.err = nil
		m.commentInput.Blur()
		return m, nil
	case "enter":
		if strings.TrimSpace(m.commentInput.Value()) == "" {
			m.err = fmt.Errorf("comment cannot be empty")
			return m, nil
		}
		m.err = nil
		m.loading = true
		return m, m.addComment()
	}

	// Update the text input
	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)
	return m, cmd
}

// decisionToast words a finished decision the way the review pages announce it
func decisionToast(msg invoicesDecidedMsg) *toast {
	t := &toast{kind: toastSuccess}
	if msg.status == domain.InvoiceStatusRejected {
		t.kind = toastError
	}
	switch {
	case msg.single && msg.status == domain.InvoiceStatusApproved:
		t.text = "Invoice approved successfully"
	case msg.single:
		t.text = "Invoice rejected"
	default:
		t.text = fmt.Sprintf("%d invoice(s) %s", msg.count, msg.status)
		if msg.skipped > 0 {
			t.text += fmt.Sprintf(", %d already decided", msg.skipped)
		}
	}
	return t
}

func (m *InvoicesModel) View() string {
	if m.loading {
		return "Loading..."
	}

	switch m.mode {
	case invoiceViewDetail, invoiceViewComment:
		return m.viewDetail()
	default:
		return m.viewList()
	}
}

func (m *InvoicesModel) viewList() string {
	var s string
	s += titleStyle.Render("Invoice Review") + "\n\n"

	s += renderToast(m.toast)
	s += renderError(m.err)

	if len(m.invoices) == 0 && m.err == nil {
		s += subtitleStyle.Render("  No invoices to review.")
		return s
	}

	if n := m.selection.Len(); n > 0 {
		s += lipgloss.NewStyle().Bold(true).Foreground(accentColor).
			Render(fmt.Sprintf("  %d selected", n)) +
			helpStyle.Render("   A: approve selected  R: reject selected  u: clear") + "\n\n"
	}

	// Header
	s += subtitleStyle.Render(fmt.Sprintf(
		"  %s %-4s  %-24s  %10s  %-8s  %-9s %s",
		checkbox(m.selection.AllSelected(m.invoices)), "ID", "Vendor", "Amount", "Date", "Status", "Vendor check",
	)) + "\n"

	for i, inv := range m.invoices {
		invLine := fmt.Sprintf("  %s %-4s  %-24s  %10s  %-8s  %-9s %s",
			checkbox(m.selection.Contains(inv.ID)),
			truncateStr(inv.ID, 4),
			truncateStr(inv.Vendor, 24),
			inv.Amount,
			truncateStr(inv.Date, 8),
			statusBadge(inv.Status),
			verificationBadge(inv.VerificationStatus),
		)

		if i == m.cursor {
			s += selectedStyle.Render(invLine) + "\n"
		} else {
			s += invLine + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  space: select  a: select all  enter: view detail")

	return s
}

func (m *InvoicesModel) viewDetail() string {
	inv := m.selected
	if inv == nil {
		return "No invoice selected"
	}

	var s string

	title := inv.InvoiceNumber
	if title == "" {
		title = "#" + inv.ID
	}

	// Header
	s += titleStyle.Render(fmt.Sprintf("Invoice %s", title)) + "  " + statusBadge(inv.Status) + "\n\n"
	s += renderToast(m.toast)

	s += fmt.Sprintf("  Vendor:   %s  %s\n", inv.Vendor, verificationBadge(inv.VerificationStatus))
	s += detailLine("Address:", inv.VendorAddress)
	s += detailLine("Tax ID:", inv.VendorTaxID)
	s += fmt.Sprintf("  Amount:   %s\n", lipgloss.NewStyle().Bold(true).Render(inv.Amount))
	s += fmt.Sprintf("  Date:     %s\n", inv.Date)
	s += detailLine("Due:", inv.DueDate)
	s += detailLine("Dept:", inv.Department)
	s += detailLine("Cost ctr:", inv.CostCenter)
	s += detailLine("File:", string(inv.FileType))
	s += "\n"

	// Line items
	if len(inv.LineItems) > 0 {
		s += subtitleStyle.Render(fmt.Sprintf(
			"  %-32s  %4s  %12s  %12s",
			"Description", "Qty", "Unit Price", "Total",
		)) + "\n"

		for _, item := range inv.LineItems {
			s += fmt.Sprintf("  %-32s  %4d  %12s  %12s\n",
				truncateStr(item.Description, 32),
				item.Quantity,
				item.UnitPrice,
				item.Total,
			)
		}
		s += "\n"
	}

	// Comments
	s += subtitleStyle.Render("  Comments") + "\n"
	if len(inv.Comments) == 0 {
		s += subtitleStyle.Render("  No comments yet") + "\n"
	}
	for _, c := range inv.Comments {
		s += fmt.Sprintf("  %s  %s\n", subtitleStyle.Render(c.CreatedAt.Format("15:04")), c.Body)
	}

	// Status changes made this session
	if len(m.changes) > 0 {
		s += "\n" + subtitleStyle.Render("  Activity") + "\n"
		for _, ch := range m.changes {
			s += fmt.Sprintf("  %s  %s -> %s\n",
				subtitleStyle.Render(ch.ChangedAt.Format("15:04")),
				ch.From.Label(),
				ch.To.Label(),
			)
		}
	}

	if m.mode == invoiceViewComment {
		s += "\n" + lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Render("  Add comment:") + "\n"
		s += "  " + m.commentInput.View() + "\n\n"
		s += renderError(m.err)
		s += helpStyle.Render("  enter: save comment  esc: cancel")
		return s
	}

	s += "\n" + renderError(m.err)
	if inv.Status.IsOpen() {
		s += helpStyle.Render("  A: approve  R: reject  c: comment  esc: back to list")
	} else {
		s += helpStyle.Render("  c: comment  esc: back to list")
	}

	return s
}

func detailLine(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("  %-9s %s\n", label, value)
}
