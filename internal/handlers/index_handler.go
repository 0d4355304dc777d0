package handlers

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/index.html
var indexPage []byte

// HandleIndex handles GET /
func HandleIndex(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.Send(indexPage)
}
