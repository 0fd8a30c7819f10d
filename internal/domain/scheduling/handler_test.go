package scheduling

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockApptRepo) {
	appts := newMockApptRepo()
	consults := newMockConsultRepo()
	return NewHandler(NewService(appts, consults, nil)), appts
}

func performRequest(h echo.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestBookingScenario_SequentialConflict(t *testing.T) {
	h, _ := newTestHandler()
	body := `{"patientID":1,"doctorID":2,"appDate":"2026-09-10","appTime":"10:00"}`

	first := performRequest(h.CreateAppointment, http.MethodPost, "/api/appointments", body, nil)
	if first.Code != http.StatusCreated {
		t.Fatalf("first booking: expected 201, got %d: %s", first.Code, first.Body.String())
	}

	second := performRequest(h.CreateAppointment, http.MethodPost, "/api/appointments", body, nil)
	if second.Code != http.StatusBadRequest {
		t.Fatalf("second booking: expected 400, got %d", second.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(second.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "This time slot is already booked" {
		t.Errorf("unexpected error %v", resp["error"])
	}
}

func TestCreateAppointmentHandler_MissingFields(t *testing.T) {
	h, _ := newTestHandler()
	rec := performRequest(h.CreateAppointment, http.MethodPost, "/api/appointments", `{"patientID":1}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "Missing required fields" {
		t.Errorf("unexpected error %v", resp["error"])
	}
}

func TestAvailableSlotsHandler(t *testing.T) {
	h, _ := newTestHandler()
	rec := performRequest(h.AvailableSlots, http.MethodPost, "/api/appointments/available-slots",
		`{"doctorID":1,"date":"2026-09-10"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Slots []string `json:"slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Slots) != 16 {
		t.Errorf("expected 16 slots, got %d", len(resp.Slots))
	}
}

func TestAvailableSlotsHandler_MissingArgs(t *testing.T) {
	h, _ := newTestHandler()
	rec := performRequest(h.AvailableSlots, http.MethodPost, "/api/appointments/available-slots", `{}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "Doctor ID and date are required" {
		t.Errorf("unexpected error %v", resp["error"])
	}
}

func TestCreateConsultationHandler(t *testing.T) {
	h, _ := newTestHandler()
	body := `{"patientID":1,"doctorID":2,"appDate":"2026-09-10","appTime":"10:00",
		"consultationType":"New Patient","reason":"First visit"}`
	rec := performRequest(h.CreateConsultation, http.MethodPost, "/api/consultations", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var a Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if a.ID == 0 {
		t.Error("expected a numeric appID")
	}
	if a.Notes == nil || !strings.Contains(*a.Notes, "Consultation Type: New Patient") {
		t.Errorf("default notes not applied: %v", a.Notes)
	}
}

func TestCancelConsultationHandler(t *testing.T) {
	h, appts := newTestHandler()
	body := `{"patientID":1,"doctorID":2,"appDate":"2026-09-10","appTime":"10:00",
		"consultationType":"New Patient","reason":"First visit"}`
	created := performRequest(h.CreateConsultation, http.MethodPost, "/api/consultations", body, nil)
	if created.Code != http.StatusCreated {
		t.Fatalf("booking: %d", created.Code)
	}
	var a Appointment
	if err := json.Unmarshal(created.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rec := performRequest(h.CancelConsultation, http.MethodDelete, "/api/consultations/1", "", map[string]string{"id": "1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "Appointment cancelled successfully" {
		t.Errorf("unexpected message %q", resp["message"])
	}
	if appts.appts[a.ID].Status != StatusCancelled {
		t.Error("underlying appointment not cancelled")
	}
}

func TestCancelConsultationHandler_NotFound(t *testing.T) {
	h, _ := newTestHandler()
	rec := performRequest(h.CancelConsultation, http.MethodDelete, "/api/consultations/9", "", map[string]string{"id": "9"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "Appointment not found" {
		t.Errorf("unexpected error %v", resp["error"])
	}
}

func TestCountAppointmentsHandler(t *testing.T) {
	h, appts := newTestHandler()
	appts.appts[1] = &Appointment{ID: 1}
	rec := performRequest(h.CountAppointments, http.MethodGet, "/api/appointments/count", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["count"] != 1 {
		t.Errorf("count = %d, want 1", resp["count"])
	}
}
