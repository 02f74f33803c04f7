package http

import "github.com/labstack/echo/v4"

// Handler is implemented by anything that mounts routes onto the Echo
// instance built by NewServer.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
