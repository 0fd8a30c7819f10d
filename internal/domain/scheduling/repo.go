package scheduling

import "context"

type AppointmentRepository interface {
	ListWithNames(ctx context.Context) ([]*AppointmentWithNames, error)
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, a *Appointment) error
	Update(ctx context.Context, a *Appointment) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	// BookedTimes returns the appTime values of non-Cancelled appointments
	// for the doctor on the given date.
	BookedTimes(ctx context.Context, doctorID int64, date string) ([]string, error)
	// ExistsAt reports whether a non-Cancelled appointment occupies the slot.
	ExistsAt(ctx context.Context, doctorID int64, date, time string) (bool, error)
	// ListScheduledOn returns Scheduled appointments for a date, with names.
	ListScheduledOn(ctx context.Context, date string) ([]*AppointmentWithNames, error)
}

type ConsultationRepository interface {
	Upsert(ctx context.Context, con *Consultation) error
	List(ctx context.Context) ([]*ConsultationView, error)
	GetByAppID(ctx context.Context, appID int64) (*ConsultationView, error)
}
