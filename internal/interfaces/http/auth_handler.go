package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/inventory-panel/internal/application/session"
	"github.com/tu-usuario/inventory-panel/internal/domain/entity"
	"github.com/tu-usuario/inventory-panel/pkg/logger"
)

// ProfileAPI puerto hacia el cliente del backend para el perfil.
type ProfileAPI interface {
	GetProfile(ctx context.Context) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, name string) (*entity.Profile, error)
}

// AuthHandler páginas y acciones de login/signup/logout y perfil.
type AuthHandler struct {
	sess     *session.Session
	profiles ProfileAPI
	log      *logger.Logger
}

// NewAuthHandler construye el handler.
func NewAuthHandler(sess *session.Session, profiles ProfileAPI, log *logger.Logger) *AuthHandler {
	return &AuthHandler{sess: sess, profiles: profiles, log: log}
}

// LoginPage renderiza el formulario de login; si ya hay sesión, va directo
// al dashboard.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if h.sess.State() == session.StateAuthenticated {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Render("login", fiber.Map{
		"Title": "Iniciar sesión",
		"Flash": PopFlash(c),
	}, "layouts/auth")
}

// Login procesa el formulario de login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	if email == "" || password == "" {
		SetFlash(c, FlashError, "email y contraseña son requeridos")
		return c.Redirect("/login", fiber.StatusFound)
	}

	if err := h.sess.Login(c.UserContext(), email, password); err != nil {
		h.log.Warn().Err(err).Str("email", email).Msg("login fallido")
		SetFlash(c, FlashError, userMessage(err))
		return c.Redirect("/login", fiber.StatusFound)
	}
	return c.Redirect("/", fiber.StatusFound)
}

// SignupPage renderiza el formulario de registro.
func (h *AuthHandler) SignupPage(c *fiber.Ctx) error {
	if h.sess.State() == session.StateAuthenticated {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Render("signup", fiber.Map{
		"Title": "Crear cuenta",
		"Flash": PopFlash(c),
	}, "layouts/auth")
}

// Signup procesa el registro. Si el backend auto-autentica (token inline),
// entra directo al dashboard; si no, vuelve al login con el mensaje.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	name := strings.TrimSpace(c.FormValue("name"))
	if email == "" || password == "" || name == "" {
		SetFlash(c, FlashError, "nombre, email y contraseña son requeridos")
		return c.Redirect("/signup", fiber.StatusFound)
	}

	authenticated, msg, err := h.sess.Signup(c.UserContext(), email, password, name)
	if err != nil {
		SetFlash(c, FlashError, userMessage(err))
		return c.Redirect("/signup", fiber.StatusFound)
	}
	if authenticated {
		return c.Redirect("/", fiber.StatusFound)
	}
	if msg == "" {
		msg = "registro exitoso, inicia sesión"
	}
	SetFlash(c, FlashSuccess, msg)
	return c.Redirect("/login", fiber.StatusFound)
}

// Logout cierra la sesión incondicionalmente.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sess.Logout()
	return c.Redirect("/login", fiber.StatusFound)
}

// ProfilePage renderiza el perfil del usuario, con la expiración del token
// si el claim existe.
func (h *AuthHandler) ProfilePage(c *fiber.Ctx) error {
	profile, err := h.profiles.GetProfile(c.UserContext())
	if err != nil {
		return failAndRedirect(c, h.sess, err, "/")
	}
	page := fiber.Map{
		"Title":   "Perfil",
		"User":    h.sess.User(),
		"Flash":   PopFlash(c),
		"Profile": profile,
	}
	if exp, ok := h.sess.ExpiresAt(); ok {
		page["ExpiresAt"] = exp
	}
	return c.Render("profile", page, "layouts/main")
}

// UpdateProfile cambia el nombre del perfil.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		SetFlash(c, FlashError, "el nombre es requerido")
		return c.Redirect("/profile", fiber.StatusFound)
	}
	if _, err := h.profiles.UpdateProfile(c.UserContext(), name); err != nil {
		return failAndRedirect(c, h.sess, err, "/profile")
	}
	SetFlash(c, FlashSuccess, "perfil actualizado")
	return c.Redirect("/profile", fiber.StatusFound)
}
