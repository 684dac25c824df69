package http

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

// flashCookie cookie de un solo uso para notificaciones transitorias entre
// el POST y el redirect siguiente (patrón post/redirect/get).
const flashCookie = "panel_flash"

// Tipos de notificación.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash una notificación transitoria para la vista.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SetFlash deja una notificación para el próximo render.
func SetFlash(c *fiber.Ctx, kind, msg string) {
	raw, err := json.Marshal(Flash{Kind: kind, Message: msg})
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(raw),
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Now().Add(time.Minute),
	})
}

// PopFlash lee y consume la notificación pendiente, si existe.
func PopFlash(c *fiber.Ctx) *Flash {
	val := c.Cookies(flashCookie)
	if val == "" {
		return nil
	}
	c.Cookie(&fiber.Cookie{
		Name:    flashCookie,
		Value:   "",
		Path:    "/",
		Expires: time.Now().Add(-time.Hour),
	})
	raw, err := base64.URLEncoding.DecodeString(val)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}
