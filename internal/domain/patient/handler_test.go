package patient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockRepo) {
	repo := newMockRepo()
	return NewHandler(NewService(repo)), repo
}

func performRequest(h echo.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
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

func TestCreateHandler_Scenario(t *testing.T) {
	h, _ := newTestHandler()
	body := `{"first_name":"A","last_name":"B","age":30,"gender":"Male",
		"contact_no":"1234567890","email":"a@b.com","emergency_contact":"0987654321",
		"medical_history":"none","insurance_details":"none"}`
	rec := performRequest(h.Create, http.MethodPost, "/api/patients", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Message   string `json:"message"`
		PatientID int64  `json:"patientID"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.PatientID == 0 {
		t.Error("expected a numeric patientID")
	}
	if resp.Message != "Patient added successfully" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestCreateHandler_MissingFieldsPayload(t *testing.T) {
	h, _ := newTestHandler()
	rec := performRequest(h.Create, http.MethodPost, "/api/patients", `{"first_name":"A"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Error         string   `json:"error"`
		MissingFields []string `json:"missingFields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp.Error, "Missing required fields: ") {
		t.Errorf("unexpected error %q", resp.Error)
	}
	if len(resp.MissingFields) == 0 {
		t.Error("expected missingFields to be populated")
	}
}

func TestCreateHandler_InvalidEmailPayload(t *testing.T) {
	h, _ := newTestHandler()
	body := `{"first_name":"A","last_name":"B","age":30,"gender":"Male",
		"contact_no":"1234567890","email":"not-an-email","emergency_contact":"0987654321",
		"medical_history":"none","insurance_details":"none"}`
	rec := performRequest(h.Create, http.MethodPost, "/api/patients", body, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "Invalid email format" {
		t.Errorf("unexpected error %v", resp["error"])
	}
	if resp["receivedEmail"] != "not-an-email" {
		t.Errorf("expected receivedEmail echo, got %v", resp["receivedEmail"])
	}
}

func TestUpdateHandler_NotFound(t *testing.T) {
	h, _ := newTestHandler()
	body := `{"first_name":"A","last_name":"B","age":30,"gender":"Male",
		"contact_no":"1234567890","email":"a@b.com","emergency_contact":"0987654321",
		"medical_history":"none","insurance_details":"none"}`
	rec := performRequest(h.Update, http.MethodPut, "/api/patients/42", body, map[string]string{"id": "42"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "Patient not found" {
		t.Errorf("unexpected error %v", resp["error"])
	}
}

func TestDeleteHandler_NotFound(t *testing.T) {
	h, _ := newTestHandler()
	rec := performRequest(h.Delete, http.MethodDelete, "/api/patients/42", "", map[string]string{"id": "42"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCountHandler(t *testing.T) {
	h, repo := newTestHandler()
	repo.patients[1] = &Patient{ID: 1}
	repo.patients[2] = &Patient{ID: 2}
	rec := performRequest(h.Count, http.MethodGet, "/api/patients/count", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["count"] != 2 {
		t.Errorf("expected count 2, got %d", resp["count"])
	}
}

func TestListHandler(t *testing.T) {
	h, repo := newTestHandler()
	repo.patients[1] = &Patient{ID: 1, FirstName: "A"}
	rec := performRequest(h.List, http.MethodGet, "/api/patients", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var items []Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 || items[0].FirstName != "A" {
		t.Errorf("unexpected list %+v", items)
	}
}
