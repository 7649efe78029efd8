package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coopfondos/coopfondos-api/internal/domain/validate"
)

func TestPassword_Politica(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"válida", "Abc12345", nil},
		{"sin mayúscula", "abc12345", validate.ErrPasswordNoUpper},
		{"sin minúscula", "ABC12345", validate.ErrPasswordNoLower},
		{"sin número", "Abcdefgh", validate.ErrPasswordNoDigit},
		{"muy corta", "Ab1", validate.ErrPasswordTooShort},
		{"vacía", "", validate.ErrPasswordTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Password(tc.password)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	assert.NoError(t, validate.Email("tesorera@coopvivienda.cl"))
	assert.ErrorIs(t, validate.Email(""), validate.ErrEmailRequired)
	assert.ErrorIs(t, validate.Email("   "), validate.ErrEmailRequired)
	assert.ErrorIs(t, validate.Email("sin-arroba.cl"), validate.ErrEmailInvalid)
	assert.ErrorIs(t, validate.Email("a@b"), validate.ErrEmailInvalid)
	assert.ErrorIs(t, validate.Email("con espacios@x.cl"), validate.ErrEmailInvalid)
}

// Un .txt debe rechazarse antes de invocar el endpoint de carga; .csv y .xlsx pasan.
func TestUploadFile(t *testing.T) {
	assert.ErrorIs(t, validate.UploadFile("notas.txt", "text/plain"), validate.ErrFileTypeNotAllowed)
	assert.ErrorIs(t, validate.UploadFile("balance.pdf", "application/pdf"), validate.ErrFileTypeNotAllowed)

	assert.NoError(t, validate.UploadFile("balance.csv", "text/csv"))
	assert.NoError(t, validate.UploadFile("balance.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
	assert.NoError(t, validate.UploadFile("BALANCE.XLSX", "application/octet-stream"),
		"la extensión se compara sin distinguir mayúsculas")

	// Extensión permitida pero contenido declarado texto plano: rechazar
	assert.ErrorIs(t, validate.UploadFile("balance.csv", "text/plain; charset=utf-8"),
		validate.ErrFileTypeNotAllowed)
}
