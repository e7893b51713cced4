package server

import (
	"embed"

	"github.com/labstack/echo/v4"
)

//go:embed public
var public embed.FS

// registerUI serves the embedded single-page application.
func registerUI(engine *echo.Echo) {
	engine.StaticFS("/", echo.MustSubFS(public, "public"))
}
