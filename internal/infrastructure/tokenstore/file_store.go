// Package tokenstore implementa el almacenamiento durable del bearer token:
// una sola clave, leída al arranque y escrita/eliminada en cada cambio de
// sesión, para que un reinicio del proceso retome la sesión anterior.
package tokenstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store puerto de almacenamiento del token. La implementación real usa un
// archivo local; para tests se inyecta MemoryStore.
type Store interface {
	// Load devuelve el token persistido, o "" si no hay ninguno.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore guarda el token en un archivo con permisos 0600.
type FileStore struct {
	path string
}

// NewFileStore construye el store sobre la ruta indicada.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load lee el token del archivo. Un archivo inexistente no es un error:
// simplemente no hay sesión previa.
func (s *FileStore) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: leer %s: %w", s.path, err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Save escribe el token. Crea el directorio padre si no existe.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: crear directorio: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("tokenstore: escribir %s: %w", s.path, err)
	}
	return nil
}

// Clear elimina el archivo del token; no falla si ya no existe.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("tokenstore: eliminar %s: %w", s.path, err)
	}
	return nil
}
