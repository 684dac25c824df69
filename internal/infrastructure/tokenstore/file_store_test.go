package tokenstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventory-panel/internal/infrastructure/tokenstore"
)

// newStore construye un FileStore sobre un directorio temporal del test.
func newStore(t *testing.T) (*tokenstore.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panel", "auth_token")
	return tokenstore.NewFileStore(path), path
}

// Archivo inexistente no es error: simplemente no hay sesión previa.
func TestFileStore_LoadSinArchivoDevuelveVacio(t *testing.T) {
	store, _ := newStore(t)

	tok, err := store.Load()

	require.NoError(t, err)
	assert.Empty(t, tok)
}

// Save crea el directorio padre y Load recupera el mismo token.
func TestFileStore_SaveLuegoLoad(t *testing.T) {
	store, path := newStore(t)

	require.NoError(t, store.Save("tok-123"))

	tok, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "el token debe quedar con permisos 0600")
}

// Un store nuevo sobre la misma ruta retoma el token: es lo que permite que
// un reinicio del proceso conserve la sesión.
func TestFileStore_OtroStoreRetomaElToken(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.Save("tok-persistido"))

	reopened := tokenstore.NewFileStore(path)
	tok, err := reopened.Load()

	require.NoError(t, err)
	assert.Equal(t, "tok-persistido", tok)
}

// Clear elimina el archivo y es idempotente.
func TestFileStore_ClearIdempotente(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.Save("tok-123"))

	require.NoError(t, store.Clear())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "el archivo debe desaparecer tras Clear")

	require.NoError(t, store.Clear(), "Clear sobre archivo inexistente no debe fallar")
}

// Save sobrescribe el token anterior.
func TestFileStore_SaveSobrescribe(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Save("viejo"))
	require.NoError(t, store.Save("nuevo"))

	tok, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "nuevo", tok)
}
