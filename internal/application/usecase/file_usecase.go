package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tu-usuario/inventory-panel/internal/domain"
	"github.com/tu-usuario/inventory-panel/internal/domain/entity"
	"github.com/tu-usuario/inventory-panel/internal/infrastructure/backend"
)

// allowedExtensions tipos de archivo aceptados por el backend para importación.
var allowedExtensions = []string{".csv", ".json", ".xlsx", ".txt"}

// FileAPI puerto hacia el cliente del backend para archivos.
type FileAPI interface {
	ListFiles(ctx context.Context) ([]entity.S3File, error)
	UploadFile(ctx context.Context, filename string, r io.Reader) error
	DownloadFile(ctx context.Context, key string) (*backend.DownloadLink, error)
	DeleteFile(ctx context.Context, key string) (bool, error)
}

// FileUseCase gestión de archivos del bucket: listado, subida con filtro de
// extensión, descarga vía URL prefirmada y borrado.
type FileUseCase struct {
	api FileAPI
}

// NewFileUseCase construye el caso de uso.
func NewFileUseCase(api FileAPI) *FileUseCase {
	return &FileUseCase{api: api}
}

// AllowedExtensions lista de extensiones aceptadas (para el accept del form).
func (uc *FileUseCase) AllowedExtensions() []string {
	return allowedExtensions
}

// List lista los archivos del bucket.
func (uc *FileUseCase) List(ctx context.Context) ([]entity.S3File, error) {
	return uc.api.ListFiles(ctx)
}

// Upload sube un archivo. La extensión se valida ANTES de cualquier llamada
// de red: un tipo no permitido nunca llega al backend.
func (uc *FileUseCase) Upload(ctx context.Context, filename string, r io.Reader) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !extensionAllowed(ext) {
		return fmt.Errorf("%w: tipo de archivo no permitido (se aceptan %s)",
			domain.ErrValidation, strings.Join(allowedExtensions, ", "))
	}
	return uc.api.UploadFile(ctx, filename, r)
}

// Download obtiene la URL prefirmada de descarga.
func (uc *FileUseCase) Download(ctx context.Context, key string) (*backend.DownloadLink, error) {
	return uc.api.DownloadFile(ctx, key)
}

// Delete elimina un archivo; la confirmación es de la capa de vistas.
func (uc *FileUseCase) Delete(ctx context.Context, key string) (bool, error) {
	return uc.api.DeleteFile(ctx, key)
}

func extensionAllowed(ext string) bool {
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
