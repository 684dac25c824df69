package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/inventory-panel/internal/application/session"
	"github.com/tu-usuario/inventory-panel/internal/application/usecase"
	"github.com/tu-usuario/inventory-panel/pkg/logger"
)

// FileHandler páginas y acciones de archivos: listado, subida, descarga vía
// URL prefirmada y borrado con confirmación.
type FileHandler struct {
	sess *session.Session
	uc   *usecase.FileUseCase
	log  *logger.Logger
}

// NewFileHandler construye el handler.
func NewFileHandler(sess *session.Session, uc *usecase.FileUseCase, log *logger.Logger) *FileHandler {
	return &FileHandler{sess: sess, uc: uc, log: log}
}

// List renderiza la tabla de archivos del bucket.
func (h *FileHandler) List(c *fiber.Ctx) error {
	files, err := h.uc.List(c.UserContext())
	if err != nil {
		return failAndRedirect(c, h.sess, err, "/")
	}
	return c.Render("files", fiber.Map{
		"Title":  "Archivos",
		"User":   h.sess.User(),
		"Flash":  PopFlash(c),
		"Files":  files,
		"Accept": strings.Join(h.uc.AllowedExtensions(), ","),
	}, "layouts/main")
}

// Upload procesa la subida. La extensión se rechaza localmente antes de
// cualquier request al backend.
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		SetFlash(c, FlashError, "selecciona un archivo para subir")
		return c.Redirect("/files", fiber.StatusFound)
	}
	f, err := header.Open()
	if err != nil {
		SetFlash(c, FlashError, "no se pudo leer el archivo")
		return c.Redirect("/files", fiber.StatusFound)
	}
	defer f.Close()

	if err := h.uc.Upload(c.UserContext(), header.Filename, f); err != nil {
		return failAndRedirect(c, h.sess, err, "/files")
	}
	SetFlash(c, FlashSuccess, "archivo subido")
	return c.Redirect("/files", fiber.StatusFound)
}

// Download redirige a la URL prefirmada que entrega el backend; el
// contenido nunca pasa por el panel.
func (h *FileHandler) Download(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return c.Redirect("/files", fiber.StatusFound)
	}
	link, err := h.uc.Download(c.UserContext(), key)
	if err != nil {
		return failAndRedirect(c, h.sess, err, "/files")
	}
	return c.Redirect(link.DownloadURL, fiber.StatusFound)
}

// ConfirmDelete renderiza la confirmación; cancelar vuelve a la tabla sin
// generar ningún request de borrado.
func (h *FileHandler) ConfirmDelete(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return c.Redirect("/files", fiber.StatusFound)
	}
	return c.Render("file_delete", fiber.Map{
		"Title": "Eliminar archivo",
		"User":  h.sess.User(),
		"Key":   key,
	}, "layouts/main")
}

// Delete ejecuta el borrado ya confirmado.
func (h *FileHandler) Delete(c *fiber.Ctx) error {
	key := c.FormValue("key")
	if key == "" {
		return c.Redirect("/files", fiber.StatusFound)
	}
	deleted, err := h.uc.Delete(c.UserContext(), key)
	if err != nil {
		return failAndRedirect(c, h.sess, err, "/files")
	}
	if deleted {
		SetFlash(c, FlashSuccess, "archivo eliminado")
	} else {
		SetFlash(c, FlashError, "el backend no confirmó el borrado")
	}
	return c.Redirect("/files", fiber.StatusFound)
}
