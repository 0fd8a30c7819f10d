package doctor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/validate"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/doctors", h.List)
	api.GET("/doctors/count", h.Count)
	api.POST("/doctors", h.Create)
	api.PUT("/doctors/:id", h.Update)
	api.DELETE("/doctors/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return db.WriteError(c, err, "Doctor not found")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Count(c echo.Context) error {
	count, err := h.svc.Count(c.Request().Context())
	if err != nil {
		return db.WriteError(c, err, "Doctor not found")
	}
	return c.JSON(http.StatusOK, map[string]int{"count": count})
}

func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := h.svc.Create(c.Request().Context(), &req)
	if err != nil {
		var verrs *validate.Errors
		if errors.As(err, &verrs) {
			return c.JSON(http.StatusBadRequest, validate.Payload(verrs))
		}
		return db.WriteError(c, err, "Doctor not found")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Doctor added successfully",
		"doctorID": id,
	})
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Update(c.Request().Context(), id, &req); err != nil {
		var verrs *validate.Errors
		if errors.As(err, &verrs) {
			return c.JSON(http.StatusBadRequest, validate.Payload(verrs))
		}
		return db.WriteError(c, err, "Doctor not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Doctor updated successfully",
		"doctorID": id,
	})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return db.WriteError(c, err, "Doctor not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Doctor deleted successfully",
		"doctorID": id,
	})
}
