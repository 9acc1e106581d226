package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	rootCmd := NewRootCommand(&Container{})

	expected := []string{"login", "register", "logout", "whoami", "status", "events", "gifts", "chat", "profile"}
	for _, name := range expected {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "missing subcommand %q", name)
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	rootCmd := NewRootCommand(&Container{})

	for _, name := range []string{"debug", "config", "api-url"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing flag %q", name)
	}
}

func typeString(model tea.Model, s string) tea.Model {
	for _, r := range s {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return model
}

func TestLoginForm_TypesIntoFocusedField(t *testing.T) {
	var model tea.Model = loginFormModel{}

	model = typeString(model, "alice@example.com")
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = typeString(model, "s3cret")

	form := model.(loginFormModel)
	assert.Equal(t, "alice@example.com", form.fields[fieldEmail])
	assert.Equal(t, "s3cret", form.fields[fieldPassword])
}

func TestLoginForm_EnterAdvancesThenSubmits(t *testing.T) {
	var model tea.Model = loginFormModel{}

	model = typeString(model, "alice@example.com")
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = typeString(model, "s3cret")
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	form := model.(loginFormModel)
	assert.True(t, form.submitted)
	require.NotNil(t, cmd)
}

func TestLoginForm_EmptyFieldsDoNotSubmit(t *testing.T) {
	var model tea.Model = loginFormModel{focus: fieldPassword}

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	form := model.(loginFormModel)
	assert.False(t, form.submitted)
	assert.Nil(t, cmd)
}

func TestLoginForm_EscapeCancels(t *testing.T) {
	var model tea.Model = loginFormModel{}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})

	form := model.(loginFormModel)
	assert.True(t, form.cancelled)
}

func TestLoginForm_BackspaceRemovesLastRune(t *testing.T) {
	var model tea.Model = loginFormModel{}

	model = typeString(model, "ab")
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	form := model.(loginFormModel)
	assert.Equal(t, "a", form.fields[fieldEmail])
}

func TestLoginForm_ViewMasksPassword(t *testing.T) {
	form := loginFormModel{}
	form.fields[fieldPassword] = "s3cret"

	view := form.View()
	assert.NotContains(t, view, "s3cret")
	assert.Contains(t, view, "••••••")
}
