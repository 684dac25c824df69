package http

import (
	"time"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NewEngine construye el motor de templates HTML con los helpers de formato
// que usan las vistas.
func NewEngine(templatesDir string) *html.Engine {
	engine := html.New(templatesDir, ".html")
	p := message.NewPrinter(language.English)

	engine.AddFunc("money", func(v any) string {
		switch d := v.(type) {
		case decimal.Decimal:
			return p.Sprintf("$%.2f", d.InexactFloat64())
		case *decimal.Decimal:
			if d == nil {
				return ""
			}
			return p.Sprintf("$%.2f", d.InexactFloat64())
		default:
			return ""
		}
	})
	engine.AddFunc("count", func(n int) string {
		return p.Sprintf("%d", n)
	})
	engine.AddFunc("datetime", func(t time.Time) string {
		return t.Format("02/01/2006 15:04")
	})
	engine.AddFunc("date", func(t time.Time) string {
		return t.Format("02/01/2006")
	})
	engine.AddFunc("iterate", func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	})
	return engine
}
