package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mumanal/actualizacion-datos/config"
	"github.com/mumanal/actualizacion-datos/internal/domain/entity"
)

func TestRegistrationReceiptDataName(t *testing.T) {
	cfg := &config.Config{CompanyName: "MUMANAL", SupportURL: "https://mumanal.example/ayuda"}
	r := entity.Registration{FirstName: "Ana", MaternalLastName: "Mamani", Email: "ana@example.bo", CI: "1234567"}

	data := NewRegistrationReceiptData(cfg, r, WithTime(time.Date(2025, 3, 1, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "Ana Mamani", data["Name"])
	assert.Equal(t, "01/03/2025 14:30 UTC", data["Time"])
	assert.Equal(t, "ana@example.bo", data["Email"])

	subject, text, html, err := Render(RegistrationReceipt, data)
	require.NoError(t, err)
	assert.Equal(t, "MUMANAL: actualización de datos recibida", subject)
	assert.Contains(t, text, "Hola Ana Mamani,")
	assert.Contains(t, html, "https://mumanal.example/ayuda")
}

func TestSubjectFallsBackWithoutCompany(t *testing.T) {
	subject, _, _, err := Render(RegistrationReceipt, map[string]any{"Name": "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "MUMANAL: actualización de datos recibida", subject)
}
