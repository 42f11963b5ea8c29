package services

import (
	"testing"
	"unicode/utf8"

	"social_cases_go/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlanReminderEmail(t *testing.T) {
	email, err := BuildPlanReminderEmail(" ana@example.cl ", PlanReminderEmailData{
		ProfessionalName: "Ana Soto",
		ManagementName:   "Visita <domiciliaria>",
		Frequency:        "SEMANAL",
		Date:             "05-03-2026 10:00",
		SocialCaseID:     12,
		EmployeeNames:    "Juan Perez",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ana@example.cl"}, email.To)
	assert.Contains(t, email.Subject, "05-03-2026 10:00")
	assert.Contains(t, email.HTMLBody, "Hola Ana Soto")
	assert.Contains(t, email.HTMLBody, "Visita &lt;domiciliaria&gt;")
	assert.Contains(t, email.TextBody, "Visita <domiciliaria>")
	assert.Contains(t, email.TextBody, "Caso social: #12")
	assert.Contains(t, email.TextBody, "Trabajador: Juan Perez")
}

func TestLoadTemplate_NotFound(t *testing.T) {
	_, _, err := loadTemplate("non_existent", nil)
	assert.Error(t, err)
}

func TestSendEmail(t *testing.T) {
	email := &Email{To: []string{"ana@example.cl"}, Subject: "Hola", TextBody: "Hola"}

	t.Run("test mode logs instead of sending", func(t *testing.T) {
		assert.NoError(t, SendEmail(&config.Config{EmailTestMode: true}, email))
	})

	t.Run("missing api key", func(t *testing.T) {
		err := SendEmail(&config.Config{EmailTestMode: false}, email)
		assert.ErrorContains(t, err, "RESEND_API_KEY")
	})

	t.Run("no recipients", func(t *testing.T) {
		err := SendEmail(&config.Config{EmailTestMode: true}, &Email{TextBody: "Hola"})
		assert.Error(t, err)
	})

	t.Run("no body", func(t *testing.T) {
		err := SendEmail(&config.Config{EmailTestMode: true}, &Email{To: []string{"a@b.cl"}})
		assert.Error(t, err)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hola", truncate("hola", 10))
	assert.Equal(t, "Peñ", truncate("Peñalolén", 3))
	assert.Equal(t, "ñ", truncate("ñá", 1))
	assert.True(t, utf8.ValidString(truncate("Año de intervención", 2)))
}
