package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger логирует запросы с тегом сервиса: [PLANNER] 15:04:05 200 - 1ms POST /api/v1/outline (512 B)
func Logger(tag string) fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[" + tag + "] ${time} ${status} - ${latency} ${method} ${path} (${bytesReceived} B) ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
