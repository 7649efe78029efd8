package dto

// Envelope es el sobre estándar de todas las respuestas JSON de la API:
// {success, data?, message?, error?}. Los endpoints de exportación responden
// binario (XLSX/PDF) fuera de este sobre.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK construye un sobre exitoso con datos.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMessage construye un sobre exitoso con datos y mensaje informativo.
func OKMessage(data any, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

// Fail construye un sobre de error con mensaje legible para el usuario.
func Fail(message string) Envelope {
	return Envelope{Success: false, Error: message}
}
