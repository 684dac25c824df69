package entity

import (
	"fmt"
	"math"
	"path"
	"strings"
	"time"
)

// S3File proyección read-only de los metadatos de un objeto en el storage
// del backend. El contenido nunca pasa por esta aplicación: la descarga se
// hace vía URL prefirmada.
type S3File struct {
	Key              string    `json:"key"`
	Size             int64     `json:"size"`
	LastModified     time.Time `json:"last_modified"`
	ETag             string    `json:"etag"`
	OriginalFilename string    `json:"original_filename"`
}

// DisplayName nombre a mostrar: el original si existe, si no la key.
func (f S3File) DisplayName() string {
	if f.OriginalFilename != "" {
		return f.OriginalFilename
	}
	return f.Key
}

// Extension extensión de la key en mayúsculas (sin punto), o "Unknown".
func (f S3File) Extension() string {
	ext := strings.TrimPrefix(path.Ext(f.Key), ".")
	if ext == "" {
		return "Unknown"
	}
	return strings.ToUpper(ext)
}

// HumanSize formatea el tamaño en Bytes/KB/MB/GB con base 1024. Un tamaño
// negativo (metadatos corruptos del backend) se trata como cero.
func (f S3File) HumanSize() string {
	if f.Size <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(f.Size)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}
	v := math.Round(float64(f.Size)/math.Pow(1024, float64(i))*100) / 100
	return fmt.Sprintf("%g %s", v, units[i])
}
