package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/naveenspark/moviemania/internal/guard"
	"github.com/naveenspark/moviemania/pkg/client"
	"github.com/naveenspark/moviemania/pkg/domain"
)

const (
	msgLoginSucceeded = "Login successful!"
	msgLoginFailed    = "Invalid login credentials, please try again."
	msgFieldsRequired = "Email and password are required."
)

const (
	credEmail = iota
	credPassword
)

// loginSucceededMsg hands the new session to the App, which owns the store.
type loginSucceededMsg struct {
	token   string
	isAdmin bool
}

// navigateMsg asks the App to switch views; the guard still applies.
type navigateMsg struct{ view guard.View }

func navigate(v guard.View) tea.Cmd {
	return func() tea.Msg { return navigateMsg{view: v} }
}

type loginResultMsg struct {
	owner   uuid.UUID
	token   string
	isAdmin bool
	err     error
}

func newCredentialsForm() formModel {
	return newFormModel(
		formField{label: "Email", placeholder: "you@example.com"},
		formField{label: "Password", placeholder: "••••••", masked: true},
	)
}

func (f formModel) credentials() domain.Credentials {
	return domain.Credentials{
		Email:    strings.TrimSpace(f.value(credEmail)),
		Password: f.value(credPassword),
	}
}

type loginModel struct {
	id         uuid.UUID
	client     *client.Client
	form       formModel
	submitting bool
	err        string
	frame      int
}

func newLoginModel(c *client.Client) loginModel {
	return loginModel{id: uuid.New(), client: c, form: newCredentialsForm()}
}

func (m loginModel) Init() tea.Cmd { return nil }

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		if msg.owner != m.id {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			m.form = m.form.setValue(credPassword, "")
			return m, notifyError(msgLoginFailed)
		}
		m.form = m.form.reset()
		token, isAdmin := msg.token, msg.isAdmin
		return m, func() tea.Msg { return loginSucceededMsg{token: token, isAdmin: isAdmin} }

	case marqueeTickMsg:
		m.frame++

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		if msg.String() == "esc" {
			return m, navigate(guard.Home)
		}
		m.err = ""
		var submit bool
		m.form, submit = m.form.update(msg)
		if submit {
			return m.submit()
		}
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	creds := m.form.credentials()
	if creds.Email == "" || creds.Password == "" {
		m.err = msgFieldsRequired
		return m, nil
	}
	m.submitting = true
	c, owner := m.client, m.id
	return m, func() tea.Msg {
		token, isAdmin, err := c.Authenticate(context.Background(), creds)
		return loginResultMsg{owner: owner, token: token, isAdmin: isAdmin, err: err}
	}
}

func (m loginModel) View() string {
	return credentialsView("Login", "Sign in to comment on movies.", m.form, m.frame, m.submitting, "logging in...", m.err)
}

func credentialsView(title, subtitle string, form formModel, frame int, busy bool, busyText, errText string) string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render(title) + "\n")
	b.WriteString(" " + dimStyle.Render(subtitle) + "\n\n")
	b.WriteString(form.View(frame))
	b.WriteString("\n")
	switch {
	case busy:
		b.WriteString(" " + dimStyle.Render(busyText) + "\n")
	case errText != "":
		b.WriteString(" " + errorStyle.Render(errText) + "\n")
	}
	return b.String()
}
