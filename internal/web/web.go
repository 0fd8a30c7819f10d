// Package web serves the server-rendered front-desk pages. All state lives
// in the database; pages re-query on every request, and the booking wizard
// carries its intermediate state in hidden form fields.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/notification"
	"github.com/hms/hms/internal/platform/validate"
	"github.com/hms/hms/pkg/pagination"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = parsePages(
	"home.html",
	"patients.html",
	"doctors.html",
	"appointments.html",
	"consultations.html",
	"book_patient.html",
	"book_doctor.html",
	"book_slot.html",
	"book_done.html",
)

func parsePages(names ...string) map[string]*template.Template {
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", "templates/"+name))
	}
	return out
}

// page is the shared chrome every view embeds.
type page struct {
	Title string
	Error string
	Retry string
}

// Handler renders the front-desk pages on top of the domain services.
type Handler struct {
	patients *patient.Service
	doctors  *doctor.Service
	sched    *scheduling.Service
	feed     *notification.Store
	pool     *pgxpool.Pool
}

func NewHandler(patients *patient.Service, doctors *doctor.Service, sched *scheduling.Service, feed *notification.Store, pool *pgxpool.Pool) *Handler {
	return &Handler{patients: patients, doctors: doctors, sched: sched, feed: feed, pool: pool}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/patients", h.Patients)
	e.GET("/doctors", h.Doctors)
	e.GET("/appointments", h.Appointments)
	e.GET("/consultations", h.Consultations)
	e.GET("/book", h.BookPatient)
	e.POST("/book/doctor", h.BookDoctor)
	e.POST("/book/slot", h.BookSlot)
	e.POST("/book/confirm", h.BookConfirm)
	// Anything unrecognised lands on the dashboard.
	e.GET("/*", h.Home)
}

func (h *Handler) render(c echo.Context, name string, data interface{}) error {
	t, ok := pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return t.ExecuteTemplate(c.Response(), "layout", data)
}

func (h *Handler) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if h.pool == nil {
		return fn(ctx)
	}
	return db.RunInTx(ctx, h.pool, fn)
}

// ---------------------------------------------------------------------------
// Dashboard and list pages
// ---------------------------------------------------------------------------

type homeView struct {
	page
	PatientCount     int
	DoctorCount      int
	AppointmentCount int
	Notifications    []*notification.Notification
}

func (h *Handler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	view := homeView{page: page{Title: "Dashboard"}}

	var err error
	if view.PatientCount, err = h.patients.Count(ctx); err == nil {
		if view.DoctorCount, err = h.doctors.Count(ctx); err == nil {
			view.AppointmentCount, err = h.sched.CountAppointments(ctx)
		}
	}
	if err != nil {
		view.Error = "Could not load the dashboard."
		view.Retry = "/"
		return h.render(c, "home.html", view)
	}

	view.Notifications = h.feed.List()
	return h.render(c, "home.html", view)
}

// pager drives the prev/next links on paginated list pages.
type pager struct {
	Params pagination.Params
	Total  int
	Path   string
}

func (p pager) HasPrev() bool { return p.Params.Offset > 0 }
func (p pager) HasNext() bool { return p.Params.HasNext(p.Total) }

func (p pager) PrevURL() string {
	prev := p.Params.Offset - p.Params.Limit
	if prev < 0 {
		prev = 0
	}
	return fmt.Sprintf("%s?limit=%d&offset=%d", p.Path, p.Params.Limit, prev)
}

func (p pager) NextURL() string {
	return fmt.Sprintf("%s?limit=%d&offset=%d", p.Path, p.Params.Limit, p.Params.NextOffset())
}

func pageBounds(total int, p pagination.Params) (int, int) {
	start := p.Offset
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return start, end
}

type patientsView struct {
	page
	Patients []*patient.Patient
	Pager    pager
}

func (h *Handler) Patients(c echo.Context) error {
	view := patientsView{page: page{Title: "Patients"}}
	rows, err := h.patients.List(c.Request().Context())
	if err != nil {
		view.Error = "Could not load patients."
		view.Retry = "/patients"
		return h.render(c, "patients.html", view)
	}
	params := pagination.FromContext(c)
	start, end := pageBounds(len(rows), params)
	view.Patients = rows[start:end]
	view.Pager = pager{Params: params, Total: len(rows), Path: "/patients"}
	return h.render(c, "patients.html", view)
}

type doctorsView struct {
	page
	Doctors []*doctor.Doctor
}

func (h *Handler) Doctors(c echo.Context) error {
	view := doctorsView{page: page{Title: "Doctors"}}
	rows, err := h.doctors.List(c.Request().Context())
	if err != nil {
		view.Error = "Could not load doctors."
		view.Retry = "/doctors"
		return h.render(c, "doctors.html", view)
	}
	view.Doctors = rows
	return h.render(c, "doctors.html", view)
}

type appointmentsView struct {
	page
	Appointments []*scheduling.AppointmentWithNames
	Pager        pager
}

func (h *Handler) Appointments(c echo.Context) error {
	view := appointmentsView{page: page{Title: "Appointments"}}
	rows, err := h.sched.ListAppointments(c.Request().Context())
	if err != nil {
		view.Error = "Could not load appointments."
		view.Retry = "/appointments"
		return h.render(c, "appointments.html", view)
	}
	params := pagination.FromContext(c)
	start, end := pageBounds(len(rows), params)
	view.Appointments = rows[start:end]
	view.Pager = pager{Params: params, Total: len(rows), Path: "/appointments"}
	return h.render(c, "appointments.html", view)
}

type consultationsView struct {
	page
	Consultations []*scheduling.ConsultationView
}

func (h *Handler) Consultations(c echo.Context) error {
	view := consultationsView{page: page{Title: "Consultations"}}
	rows, err := h.sched.ListConsultations(c.Request().Context())
	if err != nil {
		view.Error = "Could not load consultations."
		view.Retry = "/consultations"
		return h.render(c, "consultations.html", view)
	}
	view.Consultations = rows
	return h.render(c, "consultations.html", view)
}

// ---------------------------------------------------------------------------
// Booking wizard
// ---------------------------------------------------------------------------

// bookingForm is the wizard state, round-tripped through hidden fields
// between steps.
type bookingForm struct {
	FirstName        string
	LastName         string
	Age              string
	Gender           string
	ContactNo        string
	Email            string
	EmergencyContact string
	MedicalHistory   string
	InsuranceDetails string
	ConsultationType string
	Reason           string
	Date             string
	DoctorID         string
	Slot             string
}

func parseBookingForm(c echo.Context) bookingForm {
	return bookingForm{
		FirstName:        c.FormValue("first_name"),
		LastName:         c.FormValue("last_name"),
		Age:              c.FormValue("age"),
		Gender:           c.FormValue("gender"),
		ContactNo:        c.FormValue("contact_no"),
		Email:            c.FormValue("email"),
		EmergencyContact: c.FormValue("emergency_contact"),
		MedicalHistory:   c.FormValue("medical_history"),
		InsuranceDetails: c.FormValue("insurance_details"),
		ConsultationType: c.FormValue("consultation_type"),
		Reason:           c.FormValue("reason"),
		Date:             c.FormValue("date"),
		DoctorID:         c.FormValue("doctor_id"),
		Slot:             c.FormValue("slot"),
	}
}

type bookPatientView struct {
	page
	Form bookingForm
}

// BookPatient renders step one, the patient intake form.
func (h *Handler) BookPatient(c echo.Context) error {
	return h.render(c, "book_patient.html", bookPatientView{page: page{Title: "Book: Patient Details"}})
}

type bookDoctorView struct {
	page
	Form    bookingForm
	Doctors []*doctor.Doctor
}

// BookDoctor renders step two, the doctor choice.
func (h *Handler) BookDoctor(c echo.Context) error {
	view := bookDoctorView{page: page{Title: "Book: Choose a Doctor"}, Form: parseBookingForm(c)}
	rows, err := h.doctors.List(c.Request().Context())
	if err != nil {
		view.Error = "Could not load doctors."
		view.Retry = "/book"
		return h.render(c, "book_doctor.html", view)
	}
	// Only doctors currently taking appointments are offered.
	for _, d := range rows {
		if d.Status == doctor.StatusActive {
			view.Doctors = append(view.Doctors, d)
		}
	}
	return h.render(c, "book_doctor.html", view)
}

type bookSlotView struct {
	page
	Form  bookingForm
	Slots []string
}

// BookSlot renders step three, the open half-hour slots for the chosen
// doctor and date.
func (h *Handler) BookSlot(c echo.Context) error {
	view := bookSlotView{page: page{Title: "Book: Pick a Time"}, Form: parseBookingForm(c)}

	doctorID, err := strconv.ParseInt(view.Form.DoctorID, 10, 64)
	if err != nil {
		view.Error = "Please choose a doctor."
		view.Retry = "/book"
		return h.render(c, "book_slot.html", view)
	}
	slots, err := h.sched.AvailableSlots(c.Request().Context(), scheduling.SlotQuery{
		DoctorID: doctorID,
		Date:     view.Form.Date,
	})
	if err != nil {
		view.Error = "Could not load available slots."
		view.Retry = "/book"
		return h.render(c, "book_slot.html", view)
	}
	view.Slots = slots
	return h.render(c, "book_slot.html", view)
}

type bookDoneView struct {
	page
	Form        bookingForm
	Appointment *scheduling.Appointment
	PatientID   int64
}

// BookConfirm creates the patient, the appointment, and the consultation in
// one transaction, so a failed booking never leaves a half-registered
// patient behind.
func (h *Handler) BookConfirm(c echo.Context) error {
	ctx := c.Request().Context()
	form := parseBookingForm(c)
	view := bookDoneView{page: page{Title: "Booking Confirmed"}, Form: form}

	doctorID, err := strconv.ParseInt(form.DoctorID, 10, 64)
	if err != nil || form.Slot == "" {
		view.Error = "The booking is incomplete. Please start again."
		view.Retry = "/book"
		return h.render(c, "book_done.html", view)
	}

	req := &patient.Request{
		FirstName:        form.FirstName,
		LastName:         form.LastName,
		Gender:           form.Gender,
		ContactNo:        form.ContactNo,
		Email:            form.Email,
		EmergencyContact: form.EmergencyContact,
		MedicalHistory:   form.MedicalHistory,
		InsuranceDetails: form.InsuranceDetails,
	}
	if age, convErr := strconv.Atoi(form.Age); convErr == nil {
		req.Age = &age
	}

	err = h.inTx(ctx, func(ctx context.Context) error {
		patientID, err := h.patients.Create(ctx, req)
		if err != nil {
			return err
		}
		appt, err := h.sched.CreateConsultation(ctx, &scheduling.ConsultationRequest{
			AppointmentRequest: scheduling.AppointmentRequest{
				PatientID: patientID,
				DoctorID:  doctorID,
				Date:      form.Date,
				Time:      form.Slot,
			},
			ConsultationType: form.ConsultationType,
			Reason:           form.Reason,
		})
		if err != nil {
			return err
		}
		view.PatientID = patientID
		view.Appointment = appt
		return nil
	})
	if err != nil {
		view.PatientID = 0
		view.Appointment = nil
		view.Error = bookingErrorMessage(err)
		view.Retry = "/book"
		return h.render(c, "book_done.html", view)
	}
	return h.render(c, "book_done.html", view)
}

func bookingErrorMessage(err error) string {
	var verrs *validate.Errors
	switch {
	case errors.As(err, &verrs):
		if missing := verrs.Missing(); len(missing) > 0 {
			return "Missing required fields: " + strings.Join(missing, ", ")
		}
		if fe, ok := verrs.First(); ok {
			return fe.Message()
		}
		return "The patient details are invalid."
	case errors.Is(err, scheduling.ErrSlotTaken):
		return "This time slot is already booked"
	case errors.Is(err, scheduling.ErrMissingFields):
		return "Missing required fields"
	default:
		return "The booking could not be saved."
	}
}
