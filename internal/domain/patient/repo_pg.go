package patient

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const patientCols = `patient_id, first_name, last_name, age, gender, contact_no,
	email, emergency_contact, medical_history, insurance_details, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Age, &p.Gender, &p.ContactNo,
		&p.Email, &p.EmergencyContact, &p.MedicalHistory, &p.InsuranceDetails,
		&p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY patient_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*Patient{}
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE patient_id = $1`, id))
}

func (r *repoPG) Count(ctx context.Context) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&count)
	return count, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient (first_name, last_name, age, gender, contact_no,
			email, emergency_contact, medical_history, insurance_details)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING patient_id, created_at, updated_at`,
		p.FirstName, p.LastName, p.Age, p.Gender, p.ContactNo,
		p.Email, p.EmergencyContact, p.MedicalHistory, p.InsuranceDetails).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET first_name=$2, last_name=$3, age=$4, gender=$5,
			contact_no=$6, email=$7, emergency_contact=$8, medical_history=$9,
			insurance_details=$10, updated_at=NOW()
		WHERE patient_id = $1`,
		p.ID, p.FirstName, p.LastName, p.Age, p.Gender,
		p.ContactNo, p.Email, p.EmergencyContact, p.MedicalHistory, p.InsuranceDetails)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE patient_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
