package db

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// WriteError maps a storage error to its JSON response. notFound is the
// message used when the row does not exist.
func WriteError(c echo.Context, err error, notFound string) error {
	switch {
	case IsNotFound(err):
		return c.JSON(http.StatusNotFound, map[string]interface{}{"error": notFound})
	case IsDuplicateKey(err):
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"error": "Duplicate entry found"})
	case IsUndefinedTable(err):
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Database table not found. Please check if the database is properly initialized.",
		})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error":   "Database error occurred",
			"details": err.Error(),
		})
	}
}
