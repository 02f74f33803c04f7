package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"DelistRadar/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover converts handler panics into a 500 response. The panic and
// stack are logged when a logger is set.
func Recover(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					if log != nil {
						log.Error("handler panic",
							logger.Error(err),
							logger.String("stack", string(debug.Stack())),
						)
					}
					_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
						"status":  http.StatusInternalServerError,
						"message": "Internal Server Error",
					})
				}
			}()
			return next(c)
		}
	}
}
