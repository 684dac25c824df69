// Package backend implementa el cliente HTTP tipado hacia la API REST de
// inventario. Es el ÚNICO componente que habla con la red: todas las demás
// capas pasan por aquí.
//
// Contrato transversal:
//   - Cada request lleva Authorization: Bearer <token> si hay token.
//   - Cualquier respuesta 401/403 limpia el token (memoria + storage durable)
//     y retorna domain.ErrNotAuthenticated, sin importar la operación.
//   - Las respuestas no-2xx se parsean buscando detail/message; si no hay
//     nada usable se reporta un mensaje genérico.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/inventory-panel/internal/domain"
	"github.com/tu-usuario/inventory-panel/internal/infrastructure/tokenstore"
	"github.com/tu-usuario/inventory-panel/pkg/logger"
)

// maxResponseBytes límite de lectura del body de respuesta.
const maxResponseBytes = 4 << 20 // 4 MB

// genericFailure mensaje cuando el backend no entrega uno parseable.
const genericFailure = "solicitud fallida"

// envelope forma estándar de respuesta del backend: {success, message, data}.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// errorBody cuerpo de error del backend. Algunos endpoints usan detail
// (estilo FastAPI) y otros message; se prueba en ese orden.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// APIError respuesta no-2xx ya parseada: conserva el status HTTP y el
// mensaje que entregó el backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend [%d]: %s", e.Status, e.Message)
}

// Client cliente tipado del backend. Es dueño del bearer token: lo restaura
// del storage durable al construirse, lo persiste en cada set y lo elimina
// en cada clear, de modo que un reinicio retome la sesión antes del primer
// request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     tokenstore.Store
	log        *logger.Logger

	mu    sync.Mutex
	token string
}

// New construye el cliente y restaura el token persistido si existe.
func New(baseURL string, tokens tokenstore.Store, timeout time.Duration, log *logger.Logger) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        log,
	}
	if tok, err := tokens.Load(); err == nil {
		c.token = tok
	} else {
		log.Warn().Err(err).Msg("no se pudo restaurar el token persistido")
	}
	return c
}

// Token devuelve el bearer token actual ("" si no hay sesión).
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// SetToken fija el token y lo persiste; con "" lo elimina del storage.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	var err error
	if token != "" {
		err = c.tokens.Save(token)
	} else {
		err = c.tokens.Clear()
	}
	if err != nil {
		c.log.Error().Err(err).Msg("persistir cambio de token")
	}
}

// Logout limpia el token incondicionalmente.
func (c *Client) Logout() {
	c.SetToken("")
}

// requestJSON serializa payload como JSON y ejecuta la operación.
func (c *Client) requestJSON(ctx context.Context, method, path string, payload any, query url.Values) (*envelope, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("backend: serializar cuerpo: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	return c.do(ctx, method, path, query, "application/json", body)
}

// do ejecuta un request contra el backend y aplica el contrato transversal:
// bearer, 401/403 → logout forzado, extracción de mensaje de error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader) (*envelope, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("backend: crear request: %w", err)
	}
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("backend: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("backend: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("backend: leer respuesta: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request al backend")

	// Logout forzado: cualquier 401/403 invalida la sesión completa.
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.SetToken("")
		return nil, domain.ErrNotAuthenticated
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(rawBody)}
	}

	var env envelope
	if err := json.Unmarshal(rawBody, &env); err != nil {
		return nil, fmt.Errorf("backend: respuesta no es JSON válido: %w", err)
	}
	return &env, nil
}

// errorMessage extrae el mensaje de un body de error: detail, luego message,
// luego el genérico.
func errorMessage(rawBody []byte) string {
	var eb errorBody
	if err := json.Unmarshal(rawBody, &eb); err != nil {
		return genericFailure
	}
	if eb.Detail != "" {
		return eb.Detail
	}
	if eb.Message != "" {
		return eb.Message
	}
	return genericFailure
}

// decodeData desempaqueta envelope.Data en out.
func decodeData(env *envelope, out any) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("backend: respuesta sin campo data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("backend: decodificar data: %w", err)
	}
	return nil
}
