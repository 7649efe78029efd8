// Package validate centraliza las validaciones de entrada compartidas entre el
// cliente y el servidor: correo, política de contraseñas y archivos de carga.
// Devuelve errores tipados para que la capa de presentación decida cómo mostrarlos.
package validate

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// Errores de validación. Los mensajes se muestran tal cual al usuario final.
var (
	ErrEmailRequired       = errors.New("el correo electrónico es requerido")
	ErrEmailInvalid        = errors.New("ingresa un correo electrónico válido")
	ErrPasswordTooShort    = errors.New("la contraseña debe tener al menos 8 caracteres")
	ErrPasswordNoUpper     = errors.New("la contraseña debe contener al menos una letra mayúscula")
	ErrPasswordNoLower     = errors.New("la contraseña debe contener al menos una letra minúscula")
	ErrPasswordNoDigit     = errors.New("la contraseña debe contener al menos un número")
	ErrFileTypeNotAllowed  = errors.New("seleccione un archivo Excel (.xlsx, .xls) o CSV")
	ErrFileEmpty           = errors.New("el archivo está vacío")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email verifica que el correo tenga forma válida.
func Email(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if !emailRe.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// Password aplica la política de contraseñas: mínimo 8 caracteres, al menos una
// mayúscula, una minúscula y un dígito.
func Password(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return ErrPasswordNoUpper
	}
	if !hasLower {
		return ErrPasswordNoLower
	}
	if !hasDigit {
		return ErrPasswordNoDigit
	}
	return nil
}

// extensiones aceptadas para carga de datos financieros.
var allowedUploadExts = map[string]bool{
	".xlsx": true,
	".xls":  true,
	".csv":  true,
}

// UploadFile verifica extensión y MIME del archivo antes de invocar al endpoint
// de carga. Rechaza texto plano (.txt) y cualquier extensión desconocida.
func UploadFile(filename, contentType string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedUploadExts[ext] {
		return ErrFileTypeNotAllowed
	}
	if strings.HasPrefix(contentType, "text/plain") {
		return ErrFileTypeNotAllowed
	}
	return nil
}
