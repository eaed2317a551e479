package presenter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/folionet/folionet/internal/domain"
)

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func BadRequest(c echo.Context, err error) error {
	return BadRequestMessage(c, err.Error())
}

func BadRequestMessage(c echo.Context, msg string) error {
	slog.Info("bad request", slog.String("error", msg))
	return c.JSON(http.StatusBadRequest, errorResponse{Status: "ERROR", Error: msg})
}

func Unauthorized(c echo.Context, msg string) error {
	slog.Info("unauthorized", slog.String("error", msg))
	return c.JSON(http.StatusUnauthorized, errorResponse{Status: "ERROR", Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	slog.Info("not found", slog.String("error", msg))
	return c.JSON(http.StatusNotFound, errorResponse{Status: "ERROR", Error: msg})
}

// InternalError logs the cause and hides it from the client.
func InternalError(c echo.Context, err error) error {
	slog.Error("internal error", slog.String("error", err.Error()))
	return c.JSON(http.StatusInternalServerError, errorResponse{Status: "ERROR", Error: "internal server error"})
}

// Error maps a domain error to its HTTP form. Conflicts use 400 to keep
// the original registration contract.
func Error(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalid):
		return BadRequest(c, err)
	case errors.Is(err, domain.ErrConflict):
		return BadRequest(c, err)
	case errors.Is(err, domain.ErrUnauthorized):
		return Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return NotFound(c, err.Error())
	default:
		return InternalError(c, err)
	}
}
