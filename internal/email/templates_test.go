package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_RendersEmbeddedTemplates(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	body, err := tm.Render(TemplatePasswordReset, passwordResetData{
		Name:     "Ana",
		Link:     "http://localhost:5173/reset-password?token=abc",
		ValidFor: formatValidity(time.Hour),
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Hello Ana")
	assert.Contains(t, body, "token=abc")
	assert.Contains(t, body, "1 hour")

	body, err = tm.Render(TemplateApplicationStatus, applicationStatusData{
		Name:         "Ana",
		VacancyTitle: "Go developer",
		Status:       "accepted",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "was accepted")
	assert.Contains(t, body, "Go developer")
}

func TestTemplateManager_UnknownTemplate(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestNewSMTPNotifier_RequiresHost(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	_, err = NewSMTPNotifier(SMTPConfig{Port: 587}, tm)
	assert.Error(t, err)

	_, err = NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: 70000}, tm)
	assert.Error(t, err)
}
