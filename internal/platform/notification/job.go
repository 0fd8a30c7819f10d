package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ReminderSchedule runs the reminder job shortly after midnight so the
// feed carries reminders for the coming day's appointments.
const ReminderSchedule = "5 0 * * *"

// Reminder is one upcoming appointment the job turns into a feed entry.
type Reminder struct {
	PatientName string
	DoctorName  string
	Date        string
	Time        string
}

// ReminderSource lists appointments scheduled on a given date.
type ReminderSource interface {
	RemindersOn(ctx context.Context, date string) ([]Reminder, error)
}

// ReminderJob generates appointment reminders into the feed. It implements
// cron.Job.
type ReminderJob struct {
	store  *Store
	source ReminderSource
	logger zerolog.Logger
	// now is overridable in tests.
	now func() time.Time
}

func NewReminderJob(store *Store, source ReminderSource, logger zerolog.Logger) *ReminderJob {
	return &ReminderJob{
		store:  store,
		source: source,
		logger: logger.With().Str("job", "appointment-reminder").Logger(),
		now:    time.Now,
	}
}

// Run looks up tomorrow's scheduled appointments and appends a reminder
// entry for each.
func (j *ReminderJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	date := j.now().AddDate(0, 0, 1).Format("2006-01-02")
	reminders, err := j.source.RemindersOn(ctx, date)
	if err != nil {
		j.logger.Error().Err(err).Str("date", date).Msg("failed to list upcoming appointments")
		return
	}

	for _, r := range reminders {
		_, err := j.store.AddFromTemplate("appointment-reminder", map[string]string{
			"patient_name": r.PatientName,
			"doctor_name":  r.DoctorName,
			"date":         r.Date,
			"time":         r.Time,
		})
		if err != nil {
			j.logger.Error().Err(err).Msg("failed to add reminder")
		}
	}

	j.logger.Info().Str("date", date).Int("count", len(reminders)).Msg("reminder run complete")
}
