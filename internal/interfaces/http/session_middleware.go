package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/inventory-panel/internal/application/session"
	"github.com/tu-usuario/inventory-panel/internal/domain"
	"github.com/tu-usuario/inventory-panel/internal/infrastructure/backend"
)

// loadingPage se sirve mientras la sesión persistida todavía se está
// validando contra el backend; se refresca sola hasta que la sesión se
// resuelve. Inline para no depender del motor de templates en el middleware.
const loadingPage = `<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><meta http-equiv="refresh" content="1"><title>Cargando…</title></head>
<body><div class="spinner" aria-label="cargando sesión"></div></body>
</html>`

// RequireSession guarda de rutas protegidas: función pura del estado de la
// sesión. loading → página de carga, anonymous → redirect a /login,
// authenticated → continúa.
func RequireSession(sess *session.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch sess.State() {
		case session.StateLoading:
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.SendString(loadingPage)
		case session.StateAnonymous:
			return c.Redirect("/login", fiber.StatusFound)
		default:
			return c.Next()
		}
	}
}

// failAndRedirect traduce un error de operación en la reacción estándar:
// 401/403 invalida la sesión y manda al login; el resto queda como
// notificación transitoria y redirige a la vista indicada. Los errores no se
// reintentan nunca.
func failAndRedirect(c *fiber.Ctx, sess *session.Session, err error, redirectTo string) error {
	if errors.Is(err, domain.ErrNotAuthenticated) {
		sess.Invalidate()
		return c.Redirect("/login", fiber.StatusFound)
	}
	SetFlash(c, FlashError, userMessage(err))
	return c.Redirect(redirectTo, fiber.StatusFound)
}

// userMessage extrae el mensaje a mostrar: el del backend si lo hay, si no
// el texto del error local.
func userMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
