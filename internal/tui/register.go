package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/naveenspark/moviemania/internal/guard"
	"github.com/naveenspark/moviemania/pkg/client"
)

const (
	msgRegisterSucceeded = "Registration successful!"
	msgRegisterFailed    = "Registration failed. Please try again."
)

type registerResultMsg struct {
	owner uuid.UUID
	err   error
}

type registerModel struct {
	id         uuid.UUID
	client     *client.Client
	form       formModel
	submitting bool
	err        string
	frame      int
}

func newRegisterModel(c *client.Client) registerModel {
	return registerModel{id: uuid.New(), client: c, form: newCredentialsForm()}
}

func (m registerModel) Init() tea.Cmd { return nil }

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		if msg.owner != m.id {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			return m, notifyError(msgRegisterFailed)
		}
		m.form = m.form.reset()
		return m, tea.Batch(notifySuccess(msgRegisterSucceeded), navigate(guard.Login))

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

func (m registerModel) submit() (registerModel, tea.Cmd) {
	creds := m.form.credentials()
	if creds.Email == "" || creds.Password == "" {
		m.err = msgFieldsRequired
		return m, nil
	}
	m.submitting = true
	c, owner := m.client, m.id
	return m, func() tea.Msg {
		err := c.Register(context.Background(), creds)
		return registerResultMsg{owner: owner, err: err}
	}
}

func (m registerModel) View() string {
	return credentialsView("Register", "Create an account to join the conversation.", m.form, m.frame, m.submitting, "creating account...", m.err)
}
