package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventory-panel/internal/domain"
	"github.com/tu-usuario/inventory-panel/internal/infrastructure/backend"
	"github.com/tu-usuario/inventory-panel/internal/infrastructure/tokenstore"
	"github.com/tu-usuario/inventory-panel/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testToken = "tok-abc-123"

// newServer levanta un httptest.Server con el handler dado y devuelve un
// cliente apuntándole, con un token store en memoria.
func newServer(t *testing.T, initialToken string, h http.HandlerFunc) (*backend.Client, *tokenstore.MemoryStore, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	store := tokenstore.NewMemoryStore(initialToken)
	client := backend.New(srv.URL, store, 5*time.Second, logger.Nop())
	return client, store, srv
}

// writeEnvelope responde el sobre estándar {success, message, data}.
func writeEnvelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "ok",
		"data":    data,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de token: restauración, persistencia y logout forzado
// ──────────────────────────────────────────────────────────────────────────────

// El cliente restaura el token persistido al construirse: la sesión retoma
// antes del primer request.
func TestNew_RestauraTokenPersistido(t *testing.T) {
	client, _, _ := newServer(t, testToken, func(w http.ResponseWriter, r *http.Request) {})

	assert.Equal(t, testToken, client.Token(), "el token del storage debe restaurarse al construir")
}

// Login fija el token y lo persiste en el storage.
func TestLogin_PersisteToken(t *testing.T) {
	client, store, _ := newServer(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])

		writeEnvelope(w, map[string]any{
			"token":      testToken,
			"expires_in": 3600,
			"user":       map[string]string{"id": "u1", "email": "ana@example.com"},
		})
	})

	data, err := client.Login(context.Background(), "ana@example.com", "secreta")
	require.NoError(t, err)

	assert.Equal(t, testToken, data.Token)
	assert.Equal(t, "ana@example.com", data.User.Email)
	assert.Equal(t, testToken, client.Token())

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, testToken, persisted, "el token debe quedar en el storage durable")
}

// Tras un login, el siguiente request lleva el token recién emitido en el
// header Authorization, sin pasos intermedios.
func TestLogin_LuegoListProductsLlevaElTokenEmitido(t *testing.T) {
	var gotAuth string
	client, _, _ := newServer(t, "", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			assert.Empty(t, r.Header.Get("Authorization"), "el login no debe llevar token previo")
			writeEnvelope(w, map[string]any{
				"token": testToken,
				"user":  map[string]string{"id": "u1", "email": "ana@example.com"},
			})
		case "/products/":
			gotAuth = r.Header.Get("Authorization")
			writeEnvelope(w, []any{
				map[string]any{"id": "p1", "name": "Taladro"},
			})
		default:
			t.Errorf("request inesperado a %s", r.URL.Path)
		}
	})

	_, err := client.Login(context.Background(), "ana@example.com", "secreta")
	require.NoError(t, err)

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 1)
	assert.Equal(t, "Bearer "+testToken, gotAuth,
		"la lista debe pedirse con el token emitido por el login")
}

// Con token fijado, cada request lleva Authorization: Bearer y X-Request-ID.
func TestDo_EnviaBearerYRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _, _ := newServer(t, testToken, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		writeEnvelope(w, []any{})
	})

	_, err := client.ListProducts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer "+testToken, gotAuth)
	assert.NotEmpty(t, gotRequestID, "cada request debe llevar un X-Request-ID")
}

// Cualquier 401 limpia el token (memoria y storage) y retorna
// ErrNotAuthenticated.
func TestDo_401LimpiaTokenYRetornaErrNotAuthenticated(t *testing.T) {
	client, store, _ := newServer(t, testToken, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ListProducts(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Empty(t, client.Token(), "el token en memoria debe limpiarse")

	persisted, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, persisted, "el token persistido debe eliminarse")
}

// Un 403 recibe el mismo tratamiento que un 401.
func TestDo_403TambienInvalidaSesion(t *testing.T) {
	client, _, _ := newServer(t, testToken, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.GetProfile(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Empty(t, client.Token())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de extracción de mensaje de error: detail → message → genérico
// ──────────────────────────────────────────────────────────────────────────────

func TestDo_ErrorUsaDetail(t *testing.T) {
	client, _, _ := newServer(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"SKU duplicado","message":"otro"}`))
	})

	_, err := client.ListProducts(context.Background())

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "SKU duplicado", apiErr.Message, "detail tiene prioridad sobre message")
}

func TestDo_ErrorCaeAMessage(t *testing.T) {
	client, _, _ := newServer(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"precio inválido"}`))
	})

	_, err := client.ListProducts(context.Background())

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "precio inválido", apiErr.Message)
}

func TestDo_ErrorSinCuerpoUsableUsaGenerico(t *testing.T) {
	client, _, _ := newServer(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>boom</html>`))
	})

	_, err := client.ListProducts(context.Background())

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "solicitud fallida", apiErr.Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de operaciones
// ──────────────────────────────────────────────────────────────────────────────

// GetProduct escapa el id en el path y propaga ?days=.
func TestGetProduct_EscapaPathYEnviaDays(t *testing.T) {
	var gotPath, gotDays string
	client, _, _ := newServer(t, testToken, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotDays = r.URL.Query().Get("days")
		writeEnvelope(w, map[string]any{"id": "p/1", "name": "Taladro"})
	})

	p, err := client.GetProduct(context.Background(), "p/1", 30)
	require.NoError(t, err)

	assert.Equal(t, "/products/p%2F1", gotPath, "el id debe ir escapado en el path")
	assert.Equal(t, "30", gotDays)
	assert.Equal(t, "Taladro", p.Name)
}

// days <= 0 no agrega query string.
func TestGetProduct_SinDaysNoEnviaQuery(t *testing.T) {
	var gotQuery string
	client, _, _ := newServer(t, testToken, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeEnvelope(w, map[string]any{"id": "p1"})
	})

	_, err := client.GetProduct(context.Background(), "p1", 0)
	require.NoError(t, err)

	assert.Empty(t, gotQuery)
}

// UploadFile manda multipart con el campo "file" y el filename original.
func TestUploadFile_MultipartCampoFile(t *testing.T) {
	var gotFilename, gotContent string
	client, _, _ := newServer(t, testToken, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/s3/upload", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err, "el multipart debe traer el campo file")
		defer file.Close()

		gotFilename = header.Filename
		raw, err := io.ReadAll(file)
		require.NoError(t, err)
		gotContent = string(raw)
		writeEnvelope(w, map[string]string{"file_key": "inventario.csv"})
	})

	err := client.UploadFile(context.Background(), "inventario.csv", strings.NewReader("sku,qty\nA,1\n"))
	require.NoError(t, err)

	assert.Equal(t, "inventario.csv", gotFilename)
	assert.Equal(t, "sku,qty\nA,1\n", gotContent)
}

// ListFiles tolera data no-array (bucket vacío en versiones viejas del
// backend) devolviendo lista vacía.
func TestListFiles_DataNoArrayDevuelveVacio(t *testing.T) {
	client, _, _ := newServer(t, testToken, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, "no files")
	})

	files, err := client.ListFiles(context.Background())
	require.NoError(t, err)

	assert.Empty(t, files)
}

// DeleteFile devuelve la confirmación del backend.
func TestDeleteFile_DevuelveConfirmacion(t *testing.T) {
	client, _, _ := newServer(t, testToken, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/s3/files/datos.csv", r.URL.Path)
		writeEnvelope(w, map[string]any{"file_key": "datos.csv", "deleted": true})
	})

	deleted, err := client.DeleteFile(context.Background(), "datos.csv")
	require.NoError(t, err)

	assert.True(t, deleted)
}

// Signup con token inline deja la sesión activa.
func TestSignup_TokenInlineAutoAutentica(t *testing.T) {
	client, store, _ := newServer(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, map[string]any{
			"token": testToken,
			"user":  map[string]string{"id": "u1", "email": "ana@example.com"},
		})
	})

	res, err := client.Signup(context.Background(), "ana@example.com", "secreta", "Ana")
	require.NoError(t, err)

	assert.True(t, res.Authenticated())
	assert.Equal(t, testToken, client.Token())

	persisted, _ := store.Load()
	assert.Equal(t, testToken, persisted)
}

// Signup con data de mensaje plano no autentica.
func TestSignup_MensajePlanoNoAutentica(t *testing.T) {
	client, _, _ := newServer(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, "revisa tu correo para confirmar la cuenta")
	})

	res, err := client.Signup(context.Background(), "ana@example.com", "secreta", "Ana")
	require.NoError(t, err)

	assert.False(t, res.Authenticated())
	assert.Equal(t, "revisa tu correo para confirmar la cuenta", res.Message)
	assert.Empty(t, client.Token())
}
