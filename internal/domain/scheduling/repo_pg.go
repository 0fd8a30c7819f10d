package scheduling

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Appointment Repository ===========

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const apptCols = `a.app_id, a.patient_id, a.doctor_id, a.app_date, a.app_time,
	a.status, a.notes, a.created_at, a.updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.Time,
		&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *appointmentRepoPG) ListWithNames(ctx context.Context) ([]*AppointmentWithNames, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+`, p.first_name AS patient_name, d.first_name AS doctor_name
		FROM appointment a
		JOIN patient p ON a.patient_id = p.patient_id
		JOIN doctor d ON a.doctor_id = d.doctor_id
		ORDER BY a.app_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWithNames(rows)
}

func collectWithNames(rows pgx.Rows) ([]*AppointmentWithNames, error) {
	items := []*AppointmentWithNames{}
	for rows.Next() {
		var a AppointmentWithNames
		if err := rows.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.Time,
			&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
			&a.PatientName, &a.DoctorName); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointment a WHERE a.app_id = $1`, id))
}

func (r *appointmentRepoPG) Count(ctx context.Context) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointment`).Scan(&count)
	return count, err
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointment (patient_id, doctor_id, app_date, app_time, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING app_id, created_at, updated_at`,
		a.PatientID, a.DoctorID, a.Date, a.Time, a.Status, a.Notes).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *appointmentRepoPG) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET app_date=$2, app_time=$3, status=$4, notes=$5, updated_at=NOW()
		WHERE app_id = $1`,
		a.ID, a.Date, a.Time, a.Status, a.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appointmentRepoPG) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE appointment SET status=$2, updated_at=NOW() WHERE app_id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appointmentRepoPG) BookedTimes(ctx context.Context, doctorID int64, date string) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT app_time FROM appointment
		WHERE doctor_id = $1 AND app_date = $2 AND status != 'Cancelled'`,
		doctorID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	times := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func (r *appointmentRepoPG) ExistsAt(ctx context.Context, doctorID int64, date, time string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointment
			WHERE doctor_id = $1 AND app_date = $2 AND app_time = $3 AND status != 'Cancelled'
		)`, doctorID, date, time).Scan(&exists)
	return exists, err
}

func (r *appointmentRepoPG) ListScheduledOn(ctx context.Context, date string) ([]*AppointmentWithNames, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+`, p.first_name AS patient_name, d.first_name AS doctor_name
		FROM appointment a
		JOIN patient p ON a.patient_id = p.patient_id
		JOIN doctor d ON a.doctor_id = d.doctor_id
		WHERE a.app_date = $1 AND a.status = 'Scheduled'
		ORDER BY a.app_time`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWithNames(rows)
}

// =========== Consultation Repository ===========

type consultationRepoPG struct{ pool *pgxpool.Pool }

func NewConsultationRepoPG(pool *pgxpool.Pool) ConsultationRepository {
	return &consultationRepoPG{pool: pool}
}

func (r *consultationRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *consultationRepoPG) Upsert(ctx context.Context, con *Consultation) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO consultation (app_id, consultation_type, reason, diagnosis, prescription, needs_tests)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (app_id) DO UPDATE SET
			consultation_type = EXCLUDED.consultation_type,
			reason = EXCLUDED.reason,
			diagnosis = EXCLUDED.diagnosis,
			prescription = EXCLUDED.prescription,
			needs_tests = EXCLUDED.needs_tests,
			updated_at = NOW()
		RETURNING consultation_id, created_at, updated_at`,
		con.AppID, con.Type, con.Reason, con.Diagnosis, con.Prescription, con.NeedsTests).
		Scan(&con.ID, &con.CreatedAt, &con.UpdatedAt)
}

const consultationViewCols = apptCols + `,
	p.first_name AS patient_name, p.last_name AS patient_last_name,
	d.first_name AS doctor_name, d.last_name AS doctor_last_name,
	d.specialization AS doctor_specialization,
	c.consultation_id, c.consultation_type, c.reason, c.diagnosis,
	c.prescription, c.needs_tests`

const consultationViewFrom = `
	FROM appointment a
	JOIN patient p ON a.patient_id = p.patient_id
	JOIN doctor d ON a.doctor_id = d.doctor_id
	LEFT JOIN consultation c ON c.app_id = a.app_id`

func scanConsultationView(row pgx.Row) (*ConsultationView, error) {
	var v ConsultationView
	err := row.Scan(&v.ID, &v.PatientID, &v.DoctorID, &v.Date, &v.Time,
		&v.Status, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
		&v.PatientName, &v.PatientLastName,
		&v.DoctorName, &v.DoctorLastName, &v.DoctorSpecialization,
		&v.ConsultationID, &v.ConsultationType, &v.Reason, &v.Diagnosis,
		&v.Prescription, &v.NeedsTests)
	return &v, err
}

func (r *consultationRepoPG) List(ctx context.Context) ([]*ConsultationView, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+consultationViewCols+consultationViewFrom+`
		ORDER BY a.app_date DESC, a.app_time DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*ConsultationView{}
	for rows.Next() {
		v, err := scanConsultationView(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (r *consultationRepoPG) GetByAppID(ctx context.Context, appID int64) (*ConsultationView, error) {
	return scanConsultationView(r.conn(ctx).QueryRow(ctx,
		`SELECT `+consultationViewCols+consultationViewFrom+`
		WHERE a.app_id = $1`, appID))
}
