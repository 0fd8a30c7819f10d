// Package notification keeps the front-desk activity feed: an in-memory
// store of typed entries with template rendering for generated messages.
package notification

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Feed entry types.
const (
	TypeAppointment  = "appointment"
	TypeConsultation = "consultation"
	TypePatient      = "patient"
	TypeDoctor       = "doctor"
)

// Notification is a single feed entry.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// ---------------------------------------------------------------------------
// Template Engine
// ---------------------------------------------------------------------------

// Template defines a reusable message template.
type Template struct {
	ID   string
	Type string
	Body string
}

// TemplateEngine renders feed messages with {{key}} replacement.
type TemplateEngine struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewTemplateEngine creates a TemplateEngine with the built-in templates
// pre-registered.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{templates: make(map[string]*Template)}
	e.registerBuiltIn()
	return e
}

func (e *TemplateEngine) registerBuiltIn() {
	builtIn := []Template{
		{
			ID:   "appointment-reminder",
			Type: TypeAppointment,
			Body: "Reminder: {{patient_name}} has an appointment with Dr. {{doctor_name}} on {{date}} at {{time}}",
		},
		{
			ID:   "patient-registered",
			Type: TypePatient,
			Body: "New patient registered: {{patient_name}}",
		},
		{
			ID:   "consultation-updated",
			Type: TypeConsultation,
			Body: "Consultation notes updated for patient {{patient_name}}",
		},
	}
	for i := range builtIn {
		t := builtIn[i]
		e.templates[t.ID] = &t
	}
}

// RegisterTemplate adds or replaces a template in the engine.
func (e *TemplateEngine) RegisterTemplate(t Template) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[t.ID] = &t
}

// Render looks up a template by ID and performs {{key}} replacement using
// the supplied data map. Keys present in the template but absent from data
// are left as-is.
func (e *TemplateEngine) Render(templateID string, data map[string]string) (entryType, message string, err error) {
	e.mu.RLock()
	t, ok := e.templates[templateID]
	e.mu.RUnlock()
	if !ok {
		return "", "", fmt.Errorf("template %q not found", templateID)
	}

	message = t.Body
	for k, v := range data {
		message = strings.ReplaceAll(message, "{{"+k+"}}", v)
	}
	return t.Type, message, nil
}

// ---------------------------------------------------------------------------
// Store
// ---------------------------------------------------------------------------

// Store holds the feed in memory, newest first. It is not persisted.
type Store struct {
	mu        sync.RWMutex
	items     []*Notification
	templates *TemplateEngine
}

// NewStore creates a Store pre-seeded with the mock feed entries.
func NewStore() *Store {
	s := &Store{templates: NewTemplateEngine()}
	s.seed()
	return s
}

func (s *Store) seed() {
	now := time.Now().UTC()
	seeds := []Notification{
		{Type: TypeDoctor, Message: "Dr. Patel updated availability schedule", Timestamp: now.Add(-24 * time.Hour), Read: true},
		{Type: TypePatient, Message: "New patient registered: Maria Garcia", Timestamp: now.Add(-5 * time.Hour), Read: false},
		{Type: TypeConsultation, Message: "Consultation notes updated for patient Johnson", Timestamp: now.Add(-2 * time.Hour), Read: true},
		{Type: TypeAppointment, Message: "New appointment scheduled with Dr. Smith", Timestamp: now.Add(-30 * time.Minute), Read: false},
	}
	for i := range seeds {
		n := seeds[i]
		n.ID = uuid.New().String()
		s.items = append(s.items, &n)
	}
}

// Add appends an unread entry stamped now.
func (s *Store) Add(entryType, message string) *Notification {
	n := &Notification{
		ID:        uuid.New().String(),
		Type:      entryType,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	s.mu.Lock()
	s.items = append(s.items, n)
	s.mu.Unlock()
	return n
}

// AddFromTemplate renders a template and appends the resulting entry.
func (s *Store) AddFromTemplate(templateID string, data map[string]string) (*Notification, error) {
	entryType, message, err := s.templates.Render(templateID, data)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	return s.Add(entryType, message), nil
}

// List returns a copy of the feed, newest first.
func (s *Store) List() []*Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Notification, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, s.items[i])
	}
	return out
}

// ---------------------------------------------------------------------------
// HTTP Handler
// ---------------------------------------------------------------------------

// Handler exposes the feed over HTTP.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/notifications", h.List)
}

func (h *Handler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.List())
}
