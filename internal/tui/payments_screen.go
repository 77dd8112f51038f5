package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoiceflow/internal/app"
	"github.com/andy/invoiceflow/internal/domain"
	"github.com/andy/invoiceflow/internal/service"
)

type paymentsMode int

const (
	paymentsModeList paymentsMode = iota
	paymentsModeNew
)

// form field indices
const (
	methodFieldBrand = iota
	methodFieldLast4
	methodFieldAccount
	methodFieldEmail
	methodFieldCount
)

var methodFieldLabels = [methodFieldCount]string{
	methodFieldBrand:   "Card brand:",
	methodFieldLast4:   "Last 4 digits:",
	methodFieldAccount: "Account name:",
	methodFieldEmail:   "PayPal email:",
}

// methodTypeFields lists the inputs shown for each method type, in form order
var methodTypeFields = map[domain.PaymentMethodType][]int{
	domain.PaymentMethodCard:   {methodFieldBrand, methodFieldLast4},
	domain.PaymentMethodBank:   {methodFieldAccount, methodFieldLast4},
	domain.PaymentMethodPayPal: {methodFieldEmail},
	domain.PaymentMethodCrypto: {methodFieldLast4},
}

// PaymentsModel manages the payment method registry
type PaymentsModel struct {
	ctx     context.Context
	app     *app.App
	methods []domain.PaymentMethod
	cursor  int
	loading bool
	err     error
	toast   *toast

	// Form state. Focus 0 is the type picker, focus n is visibleFields()[n-1].
	mode       paymentsMode
	typeIndex  int
	fields     []textinput.Model
	fieldFocus int
}

type paymentsDataMsg struct {
	methods []domain.PaymentMethod
	err     error
}

// methodChangedMsg reports a finished registry mutation
type methodChangedMsg struct {
	text string
	err  error
}

// NewPaymentsModel creates a new payments screen model
func NewPaymentsModel(ctx context.Context, a *app.App) tea.Model {
	return &PaymentsModel{
		ctx:     ctx,
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true when the form is active
func (m *PaymentsModel) IsCapturingInput() bool {
	return m.mode == paymentsModeNew
}

func (m *PaymentsModel) Init() tea.Cmd {
	return m.loadMethods()
}

func (m *PaymentsModel) loadMethods() tea.Cmd {
	return func() tea.Msg {
		methods, err := m.app.PaymentService.List(m.ctx)
		return paymentsDataMsg{methods: methods, err: err}
	}
}

func (m *PaymentsModel) setDefault(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.app.PaymentService.SetDefault(m.ctx, id)
		return methodChangedMsg{text: "Default payment method updated", err: err}
	}
}

func (m *PaymentsModel) remove(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.app.PaymentService.Remove(m.ctx, id)
		return methodChangedMsg{text: "Payment method removed", err: err}
	}
}

func (m *PaymentsModel) selectedType() domain.PaymentMethodType {
	return domain.PaymentMethodTypes[m.typeIndex]
}

func (m *PaymentsModel) visibleFields() []int {
	return methodTypeFields[m.selectedType()]
}

func (m *PaymentsModel) initForm() {
	m.fields = make([]textinput.Model, methodFieldCount)

	m.fields[methodFieldBrand] = textinput.New()
	m.fields[methodFieldBrand].Placeholder = "Visa"
	m.fields[methodFieldBrand].CharLimit = 30
	m.fields[methodFieldBrand].Width = 30

	m.fields[methodFieldLast4] = textinput.New()
	m.fields[methodFieldLast4].Placeholder = "1234"
	m.fields[methodFieldLast4].CharLimit = 4
	m.fields[methodFieldLast4].Width = 10

	m.fields[methodFieldAccount] = textinput.New()
	m.fields[methodFieldAccount].Placeholder = "New Account"
	m.fields[methodFieldAccount].CharLimit = 60
	m.fields[methodFieldAccount].Width = 40

	m.fields[methodFieldEmail] = textinput.New()
	m.fields[methodFieldEmail].Placeholder = "billing@company.com"
	m.fields[methodFieldEmail].CharLimit = 120
	m.fields[methodFieldEmail].Width = 40

	m.typeIndex = 0
	m.fieldFocus = 0
}

// focusField moves focus to index n of the form, wrapping around
func (m *PaymentsModel) focusField(n int) tea.Cmd {
	count := len(m.visibleFields()) + 1
	if m.fieldFocus > 0 {
		m.fields[m.visibleFields()[m.fieldFocus-1]].Blur()
	}
	m.fieldFocus = (n + count) % count
	if m.fieldFocus == 0 {
		return nil
	}
	return m.fields[m.visibleFields()[m.fieldFocus-1]].Focus()
}

func (m *PaymentsModel) saveMethod() tea.Cmd {
	input := service.NewPaymentMethodInput{
		Type:        m.selectedType(),
		Brand:       m.fields[methodFieldBrand].Value(),
		Last4:       m.fields[methodFieldLast4].Value(),
		AccountName: m.fields[methodFieldAccount].Value(),
		Email:       m.fields[methodFieldEmail].Value(),
	}
	return func() tea.Msg {
		_, err := m.app.PaymentService.Add(m.ctx, input)
		return methodChangedMsg{text: "Payment method added (pending verification)", err: err}
	}
}

func (m *PaymentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadMethods()

	case paymentsDataMsg:
		m.loading = false
		m.err = msg.err
		m.methods = msg.methods
		if m.cursor >= len(m.methods) {
			m.cursor = max(len(m.methods)-1, 0)
		}
		return m, nil

	case methodChangedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = paymentsModeList
		m.toast = &toast{text: msg.text}
		m.loading = true
		return m, m.loadMethods()
	}

	if m.mode == paymentsModeNew {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.loading {
		return m.updateList(msg)
	}
	return m, nil
}

func (m *PaymentsModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	m.toast = nil

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.methods)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.SetDefault):
		if len(m.methods) > 0 {
			m.loading = true
			return m, m.setDefault(m.methods[m.cursor].ID)
		}
	case key.Matches(msg, DefaultKeyMap.Remove):
		if len(m.methods) > 0 {
			m.loading = true
			return m, m.remove(m.methods[m.cursor].ID)
		}
	case key.Matches(msg, DefaultKeyMap.New):
		m.mode = paymentsModeNew
		m.initForm()
	}
	return m, nil
}

func (m *PaymentsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.mode = paymentsModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			return m, m.focusField(m.fieldFocus + 1)

		case "shift+tab", "up":
			return m, m.focusField(m.fieldFocus - 1)

		case "left", "right", " ", "space":
			if m.fieldFocus == 0 {
				step := 1
				if msg.String() == "left" {
					step = len(domain.PaymentMethodTypes) - 1
				}
				m.typeIndex = (m.typeIndex + step) % len(domain.PaymentMethodTypes)
				return m, nil
			}

		case "enter":
			if m.fieldFocus == len(m.visibleFields()) {
				m.err = nil
				m.loading = true
				return m, m.saveMethod()
			}
			return m, m.focusField(m.fieldFocus + 1)

		case "ctrl+s":
			m.err = nil
			m.loading = true
			return m, m.saveMethod()
		}
	}

	if m.fieldFocus == 0 {
		return m, nil
	}

	// Update the focused text input
	n := m.visibleFields()[m.fieldFocus-1]
	var cmd tea.Cmd
	m.fields[n], cmd = m.fields[n].Update(msg)
	return m, cmd
}

func (m *PaymentsModel) View() string {
	if m.loading {
		return "Loading..."
	}
	if m.mode == paymentsModeNew {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *PaymentsModel) viewList() string {
	var s string
	s += m.viewAccount()
	s += titleStyle.Render("Payment Methods") + "\n\n"

	s += renderToast(m.toast)
	s += renderError(m.err)

	if len(m.methods) == 0 && m.err == nil {
		s += subtitleStyle.Render("  No payment methods. Press 'n' to add one.")
		return s
	}

	s += subtitleStyle.Render(fmt.Sprintf("  %-8s  %-32s  %-10s  %s", "Type", "Method", "Status", "")) + "\n"
	for i, pm := range m.methods {
		def := ""
		if pm.IsDefault {
			def = lipgloss.NewStyle().Foreground(accentColor).Render("★ default")
		}
		line := fmt.Sprintf("  %-8s  %-32s  %-10s  %s",
			pm.Type,
			truncateStr(pm.Label(), 32),
			methodStatusBadge(pm.Status),
			def,
		)
		if i == m.cursor {
			s += selectedStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  d: make default  x: remove  n: add method")
	return s
}

// viewAccount shows the reviewer profile above the registry
func (m *PaymentsModel) viewAccount() string {
	account := m.app.Account
	if account.IsZero() {
		return ""
	}

	var s string
	s += titleStyle.Render("Account Information") + "\n\n"
	s += fmt.Sprintf("  %s %-28s %s %s\n",
		subtitleStyle.Render("Full Name:"), account.Name,
		subtitleStyle.Render("Email:"), account.Email)
	s += fmt.Sprintf("  %s %-30s %s %s\n\n",
		subtitleStyle.Render("Company:"), account.Company,
		subtitleStyle.Render("Phone:"), account.Phone)
	return s
}

func (m *PaymentsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Add Payment Method") + "\n\n"

	focused := lipgloss.NewStyle().Bold(true).Foreground(primaryColor)

	// Type picker
	indicator, labelStyle := "  ", subtitleStyle
	if m.fieldFocus == 0 {
		indicator, labelStyle = "> ", focused
	}
	var types string
	for i, t := range domain.PaymentMethodTypes {
		if i == m.typeIndex {
			types += selectedStyle.Render(" "+string(t)+" ") + " "
		} else {
			types += subtitleStyle.Render(" "+string(t)+" ") + " "
		}
	}
	s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render("Type:"), types)

	for i, n := range m.visibleFields() {
		indicator, labelStyle := "  ", subtitleStyle
		if i+1 == m.fieldFocus {
			indicator, labelStyle = "> ", focused
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(methodFieldLabels[n]), m.fields[n].View())
	}

	s += renderError(m.err)
	s += subtitleStyle.Render("  New methods start pending verification.") + "\n"
	s += helpStyle.Render("  ←/→: change type  tab/shift+tab: navigate fields  ctrl+s: save  esc: cancel")
	return s
}
