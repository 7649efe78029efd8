package client

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore persiste el bearer token fuera de memoria para que la sesión
// sobreviva reinicios del proceso.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// tokenFileName nombre del archivo donde se guarda el token.
const tokenFileName = "auth-token"

// FileTokenStore guarda el token en un archivo dentro del directorio indicado.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore construye un store sobre <dir>/auth-token. Con dir vacío
// usa el directorio de configuración del usuario.
func NewFileTokenStore(dir string) (*FileTokenStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "coopfondos")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileTokenStore{path: filepath.Join(dir, tokenFileName)}, nil
}

// Load devuelve el token persistido, o cadena vacía si no hay ninguno.
func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Save persiste el token con permisos restringidos al usuario.
func (s *FileTokenStore) Save(token string) error {
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear elimina el token persistido; no es error que no exista.
func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryTokenStore guarda el token solo en memoria; útil en tests y en
// procesos que no deben persistir credenciales.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore construye un store en memoria.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Load devuelve el token guardado.
func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

// Save guarda el token.
func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear borra el token.
func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
