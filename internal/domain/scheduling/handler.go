package scheduling

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/db"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/appointments", h.ListAppointments)
	api.GET("/appointments/count", h.CountAppointments)
	api.POST("/appointments", h.CreateAppointment)
	api.POST("/appointments/available-slots", h.AvailableSlots)
	api.PUT("/appointments/:id", h.UpdateAppointment)

	api.GET("/consultations", h.ListConsultations)
	api.GET("/consultations/:id", h.GetConsultation)
	api.POST("/consultations", h.CreateConsultation)
	api.PUT("/consultations/:id", h.UpdateConsultation)
	api.DELETE("/consultations/:id", h.CancelConsultation)
}

// writeError maps service errors: the booking sentinels and status
// validation are 400s, everything else goes through storage classification.
func writeError(c echo.Context, err error, notFound string) error {
	switch {
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrSlotTaken), errors.Is(err, ErrSlotQuery):
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
	case strings.HasPrefix(err.Error(), "invalid appointment status"):
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
	default:
		return db.WriteError(c, err, notFound)
	}
}

func (h *Handler) ListAppointments(c echo.Context) error {
	items, err := h.svc.ListAppointments(c.Request().Context())
	if err != nil {
		return writeError(c, err, "Appointment not found")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CountAppointments(c echo.Context) error {
	count, err := h.svc.CountAppointments(c.Request().Context())
	if err != nil {
		return writeError(c, err, "Appointment not found")
	}
	return c.JSON(http.StatusOK, map[string]int{"count": count})
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var req AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.CreateAppointment(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err, "Appointment not found")
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.UpdateAppointment(c.Request().Context(), id, &req)
	if err != nil {
		return writeError(c, err, "Appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) AvailableSlots(c echo.Context) error {
	var q SlotQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	slots, err := h.svc.AvailableSlots(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err, "Appointment not found")
	}
	return c.JSON(http.StatusOK, map[string][]string{"slots": slots})
}

func (h *Handler) ListConsultations(c echo.Context) error {
	items, err := h.svc.ListConsultations(c.Request().Context())
	if err != nil {
		return writeError(c, err, "Consultation not found")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetConsultation(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	v, err := h.svc.GetConsultation(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, "Consultation not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) CreateConsultation(c echo.Context) error {
	var req ConsultationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.CreateConsultation(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err, "Appointment not found")
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) UpdateConsultation(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req ConsultationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.UpdateConsultation(c.Request().Context(), id, &req)
	if err != nil {
		return writeError(c, err, "Appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) CancelConsultation(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.CancelConsultation(c.Request().Context(), id); err != nil {
		return writeError(c, err, "Appointment not found")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Appointment cancelled successfully"})
}
