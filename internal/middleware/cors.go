package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS permits any origin on GET/POST with credentials. Fiber refuses
// AllowCredentials combined with a literal "*" origin, so the request
// origin is reflected instead.
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool { return true },
		AllowMethods:     "GET,POST",
		AllowCredentials: true,
	})
}
