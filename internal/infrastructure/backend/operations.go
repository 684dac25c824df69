package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tu-usuario/inventory-panel/internal/domain/entity"
)

// ── Auth ──────────────────────────────────────────────────────────────────────

// credentials cuerpo de login/signup.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginData payload de /auth/login.
type LoginData struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
	User         entity.User `json:"user"`
}

// SignupResult resultado de /auth/signup. El backend puede responder con un
// mensaje plano o, si auto-autentica, con token + user inline.
type SignupResult struct {
	Message string
	Token   string
	User    *entity.User
}

// Authenticated indica si el signup dejó una sesión activa.
func (r *SignupResult) Authenticated() bool {
	return r.Token != ""
}

// Signup registra un usuario. Si el backend devuelve token inline, el token
// queda fijado y persistido.
func (c *Client) Signup(ctx context.Context, email, password, name string) (*SignupResult, error) {
	env, err := c.requestJSON(ctx, http.MethodPost, "/auth/signup", credentials{Email: email, Password: password, Name: name}, nil)
	if err != nil {
		return nil, err
	}

	res := &SignupResult{Message: env.Message}

	// data puede ser un string de mensaje o un objeto {token, user}.
	var inline struct {
		Token string       `json:"token"`
		User  *entity.User `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &inline); err == nil && inline.Token != "" {
		c.SetToken(inline.Token)
		res.Token = inline.Token
		res.User = inline.User
		return res, nil
	}

	var msg string
	if err := json.Unmarshal(env.Data, &msg); err == nil && msg != "" {
		res.Message = msg
	}
	return res, nil
}

// Login intercambia credenciales por un token y lo deja fijado y persistido.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginData, error) {
	env, err := c.requestJSON(ctx, http.MethodPost, "/auth/login", credentials{Email: email, Password: password}, nil)
	if err != nil {
		return nil, err
	}
	var data LoginData
	if err := decodeData(env, &data); err != nil {
		return nil, err
	}
	c.SetToken(data.Token)
	return &data, nil
}

// ── Profile ───────────────────────────────────────────────────────────────────

// GetProfile obtiene el perfil del usuario autenticado.
func (c *Client) GetProfile(ctx context.Context) (*entity.Profile, error) {
	env, err := c.requestJSON(ctx, http.MethodGet, "/profiles/me", nil, nil)
	if err != nil {
		return nil, err
	}
	var p entity.Profile
	if err := decodeData(env, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile actualiza el nombre del perfil.
func (c *Client) UpdateProfile(ctx context.Context, name string) (*entity.Profile, error) {
	env, err := c.requestJSON(ctx, http.MethodPut, "/profiles/me", map[string]string{"name": name}, nil)
	if err != nil {
		return nil, err
	}
	var p entity.Profile
	if err := decodeData(env, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ── Products ──────────────────────────────────────────────────────────────────

// CreateProductInput campos para crear un producto. Price y los contadores
// ya vienen parseados por el caso de uso; las validaciones de negocio son
// del backend.
type CreateProductInput struct {
	Name         string            `json:"name"`
	SKU          string            `json:"sku"`
	Category     string            `json:"category"`
	Supplier     string            `json:"supplier"`
	Price        json.Number       `json:"price"`
	ReorderLevel int               `json:"reorder_level"`
	InStock      int               `json:"in_stock"`
	Description  string            `json:"description"`
	IsActive     bool              `json:"is_active"`
	ImageURL     string            `json:"image_url,omitempty"`
	Movements    []entity.Movement `json:"movements,omitempty"`
}

// UpdateProductInput campos editables de un producto (el SKU es inmutable y
// los movimientos solo se envían al crear).
type UpdateProductInput struct {
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	Supplier     string      `json:"supplier"`
	Price        json.Number `json:"price"`
	ReorderLevel int         `json:"reorder_level"`
	InStock      int         `json:"in_stock"`
	Description  string      `json:"description"`
	IsActive     bool        `json:"is_active"`
}

// ListProducts obtiene la lista completa de productos.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	env, err := c.requestJSON(ctx, http.MethodGet, "/products/", nil, nil)
	if err != nil {
		return nil, err
	}
	var products []entity.Product
	if err := decodeData(env, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct obtiene un producto; days > 0 limita el historial de
// movimientos embebido a esa ventana.
func (c *Client) GetProduct(ctx context.Context, id string, days int) (*entity.Product, error) {
	var query url.Values
	if days > 0 {
		query = url.Values{"days": []string{strconv.Itoa(days)}}
	}
	env, err := c.requestJSON(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, query)
	if err != nil {
		return nil, err
	}
	var p entity.Product
	if err := decodeData(env, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct crea un producto (con movimientos opcionales).
func (c *Client) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	env, err := c.requestJSON(ctx, http.MethodPost, "/products/", in, nil)
	if err != nil {
		return nil, err
	}
	var p entity.Product
	if err := decodeData(env, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct actualiza los campos editables de un producto.
func (c *Client) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*entity.Product, error) {
	env, err := c.requestJSON(ctx, http.MethodPut, "/products/"+url.PathEscape(id), in, nil)
	if err != nil {
		return nil, err
	}
	var p entity.Product
	if err := decodeData(env, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct elimina un producto.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.requestJSON(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
	return err
}

// ── S3 files ──────────────────────────────────────────────────────────────────

// DownloadLink URL prefirmada para descargar un archivo.
type DownloadLink struct {
	DownloadURL string `json:"download_url"`
	FileKey     string `json:"file_key"`
}

// ListFiles lista los archivos del bucket. Si el backend devuelve data que
// no es un array (bucket vacío en algunas versiones), se trata como lista
// vacía en vez de fallar.
func (c *Client) ListFiles(ctx context.Context) ([]entity.S3File, error) {
	env, err := c.requestJSON(ctx, http.MethodGet, "/s3/files", nil, nil)
	if err != nil {
		return nil, err
	}
	var files []entity.S3File
	if err := json.Unmarshal(env.Data, &files); err != nil {
		return []entity.S3File{}, nil
	}
	return files, nil
}

// UploadFile sube un archivo vía multipart (campo "file"). El filtrado de
// extensiones ocurre antes, en el caso de uso; aquí solo transporte.
func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("backend: armar multipart: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("backend: copiar contenido del archivo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("backend: cerrar multipart: %w", err)
	}

	_, err = c.do(ctx, http.MethodPost, "/s3/upload", nil, mw.FormDataContentType(), &buf)
	return err
}

// DownloadFile obtiene la URL prefirmada de descarga de un archivo.
func (c *Client) DownloadFile(ctx context.Context, key string) (*DownloadLink, error) {
	env, err := c.requestJSON(ctx, http.MethodGet, "/s3/download/"+url.PathEscape(key), nil, nil)
	if err != nil {
		return nil, err
	}
	var link DownloadLink
	if err := decodeData(env, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// DeleteFile elimina un archivo; devuelve true si el backend confirmó el borrado.
func (c *Client) DeleteFile(ctx context.Context, key string) (bool, error) {
	env, err := c.requestJSON(ctx, http.MethodDelete, "/s3/files/"+url.PathEscape(key), nil, nil)
	if err != nil {
		return false, err
	}
	var res struct {
		FileKey string `json:"file_key"`
		Deleted bool   `json:"deleted"`
	}
	if err := decodeData(env, &res); err != nil {
		return false, err
	}
	return res.Deleted, nil
}
