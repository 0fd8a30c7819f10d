package doctor

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

const doctorCols = `doctor_id, first_name, last_name, specialization, department,
	phone_no, email, qualifications, status, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Specialization, &d.Department,
		&d.PhoneNo, &d.Email, &d.Qualifications, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *repoPG) List(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+doctorCols+` FROM doctor ORDER BY doctor_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*Doctor{}
	for rows.Next() {
		d, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE doctor_id = $1`, id))
}

func (r *repoPG) Count(ctx context.Context) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM doctor`).Scan(&count)
	return count, err
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctor (first_name, last_name, specialization, department,
			phone_no, email, qualifications, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING doctor_id, created_at, updated_at`,
		d.FirstName, d.LastName, d.Specialization, d.Department,
		d.PhoneNo, d.Email, d.Qualifications, d.Status).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctor SET first_name=$2, last_name=$3, specialization=$4,
			department=$5, phone_no=$6, email=$7, qualifications=$8, status=$9,
			updated_at=NOW()
		WHERE doctor_id = $1`,
		d.ID, d.FirstName, d.LastName, d.Specialization,
		d.Department, d.PhoneNo, d.Email, d.Qualifications, d.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctor WHERE doctor_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
