package scheduling

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

// Sentinel errors carrying the exact wire messages.
var (
	ErrMissingFields = errors.New("Missing required fields")
	ErrSlotTaken     = errors.New("This time slot is already booked")
	ErrSlotQuery     = errors.New("Doctor ID and date are required")
)

var validStatuses = map[string]bool{
	StatusScheduled: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

type Service struct {
	appts    AppointmentRepository
	consults ConsultationRepository
	pool     *pgxpool.Pool
}

// NewService wires the repositories. pool backs the booking transaction and
// may be nil when the repositories are not Postgres-backed.
func NewService(appts AppointmentRepository, consults ConsultationRepository, pool *pgxpool.Pool) *Service {
	return &Service{appts: appts, consults: consults, pool: pool}
}

func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.pool == nil {
		return fn(ctx)
	}
	return db.RunInTx(ctx, s.pool, fn)
}

// -- Appointments --

func (s *Service) ListAppointments(ctx context.Context) ([]*AppointmentWithNames, error) {
	return s.appts.ListWithNames(ctx)
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*Appointment, error) {
	return s.appts.GetByID(ctx, id)
}

func (s *Service) CountAppointments(ctx context.Context) (int, error) {
	return s.appts.Count(ctx)
}

// AvailableSlots returns the half-hour grid minus the doctor's non-Cancelled
// bookings for the date. A fully booked day returns an empty list.
func (s *Service) AvailableSlots(ctx context.Context, q SlotQuery) ([]string, error) {
	if q.DoctorID == 0 || q.Date == "" {
		return nil, ErrSlotQuery
	}
	booked, err := s.appts.BookedTimes(ctx, q.DoctorID, q.Date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}
	available := make([]string, 0, 16)
	for _, slot := range SlotGrid() {
		if !taken[slot] {
			available = append(available, slot)
		}
	}
	return available, nil
}

func (s *Service) CreateAppointment(ctx context.Context, req *AppointmentRequest) (*Appointment, error) {
	if req.PatientID == 0 || req.DoctorID == 0 || req.Date == "" || req.Time == "" {
		return nil, ErrMissingFields
	}
	status := req.Status
	if status == "" {
		status = StatusScheduled
	}
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid appointment status: %s", status)
	}

	taken, err := s.appts.ExistsAt(ctx, req.DoctorID, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	a := &Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    status,
		Notes:     req.Notes,
	}
	if err := s.appts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAppointment rewrites date, time, status and notes. Slot conflicts
// are not re-checked on update.
func (s *Service) UpdateAppointment(ctx context.Context, id int64, req *AppointmentRequest) (*Appointment, error) {
	a, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Date = req.Date
	a.Time = req.Time
	a.Status = req.Status
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !validStatuses[a.Status] {
		return nil, fmt.Errorf("invalid appointment status: %s", a.Status)
	}
	a.Notes = req.Notes
	if err := s.appts.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.appts.GetByID(ctx, id)
}

// ListScheduledOn feeds the reminder job.
func (s *Service) ListScheduledOn(ctx context.Context, date string) ([]*AppointmentWithNames, error) {
	return s.appts.ListScheduledOn(ctx, date)
}

// -- Consultations --

func (s *Service) ListConsultations(ctx context.Context) ([]*ConsultationView, error) {
	return s.consults.List(ctx)
}

func (s *Service) GetConsultation(ctx context.Context, appID int64) (*ConsultationView, error) {
	return s.consults.GetByAppID(ctx, appID)
}

func defaultNotes(consultationType, reason string) *string {
	notes := fmt.Sprintf("Consultation Type: %s\nReason: %s", consultationType, reason)
	return &notes
}

// CreateConsultation books the appointment and its consultation row in one
// transaction.
func (s *Service) CreateConsultation(ctx context.Context, req *ConsultationRequest) (*Appointment, error) {
	if req.PatientID == 0 || req.DoctorID == 0 || req.Date == "" || req.Time == "" ||
		req.ConsultationType == "" || req.Reason == "" {
		return nil, ErrMissingFields
	}
	status := req.Status
	if status == "" {
		status = StatusScheduled
	}
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid appointment status: %s", status)
	}

	taken, err := s.appts.ExistsAt(ctx, req.DoctorID, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	notes := req.Notes
	if notes == nil || *notes == "" {
		notes = defaultNotes(req.ConsultationType, req.Reason)
	}
	a := &Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    status,
		Notes:     notes,
	}

	err = s.inTx(ctx, func(ctx context.Context) error {
		if err := s.appts.Create(ctx, a); err != nil {
			return err
		}
		return s.consults.Upsert(ctx, &Consultation{
			AppID:        a.ID,
			Type:         req.ConsultationType,
			Reason:       req.Reason,
			Diagnosis:    req.Diagnosis,
			Prescription: req.Prescription,
			NeedsTests:   req.NeedsTests,
		})
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateConsultation rewrites the appointment fields and the clinical
// fields together. Slot conflicts are not re-checked.
func (s *Service) UpdateConsultation(ctx context.Context, appID int64, req *ConsultationRequest) (*Appointment, error) {
	a, err := s.appts.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}

	a.Date = req.Date
	a.Time = req.Time
	a.Status = req.Status
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !validStatuses[a.Status] {
		return nil, fmt.Errorf("invalid appointment status: %s", a.Status)
	}
	a.Notes = req.Notes
	if a.Notes == nil || *a.Notes == "" {
		a.Notes = defaultNotes(req.ConsultationType, req.Reason)
	}

	err = s.inTx(ctx, func(ctx context.Context) error {
		if err := s.appts.Update(ctx, a); err != nil {
			return err
		}
		if req.ConsultationType == "" && req.Reason == "" {
			return nil
		}
		return s.consults.Upsert(ctx, &Consultation{
			AppID:        appID,
			Type:         req.ConsultationType,
			Reason:       req.Reason,
			Diagnosis:    req.Diagnosis,
			Prescription: req.Prescription,
			NeedsTests:   req.NeedsTests,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.appts.GetByID(ctx, appID)
}

// CancelConsultation soft-cancels the underlying appointment. The row is
// kept so the consultation history stays queryable.
func (s *Service) CancelConsultation(ctx context.Context, appID int64) error {
	if _, err := s.appts.GetByID(ctx, appID); err != nil {
		return err
	}
	return s.appts.UpdateStatus(ctx, appID, StatusCancelled)
}
