package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"tucing-suites-calendar/internal/domain/bookings"
	"tucing-suites-calendar/internal/platform/errs"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

const bookingsTable = "bookings"

var bookingColumns = []string{
	"id",
	"service_type",
	"cat_name",
	"owner_name",
	"start_date",
	"end_date",
	"notes",
	"total_fees",
	"contact_number",
}

type BookingsRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewBookingsRepo(db *sql.DB) *BookingsRepo {
	return &BookingsRepo{db: db, now: time.Now}
}

func (r *BookingsRepo) List(ctx context.Context) ([]bookings.Booking, error) {
	query, args, err := listBookings().ToSql()
	if err != nil {
		return nil, errs.Wrap(errs.Mark(err, errs.ErrBuildQuery), "postgres: list bookings")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.Wrap(errs.Mark(err, errs.ErrExecQuery), "postgres: list bookings")
	}
	defer rows.Close()

	out := make([]bookings.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.Mark(err, errs.ErrScanRow), "postgres: list bookings")
	}
	return out, nil
}

func (r *BookingsRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return bookings.Booking{}, bookings.ErrInvalidInput
	}

	query, args, err := getBooking(id).ToSql()
	if err != nil {
		return bookings.Booking{}, errs.Wrap(errs.Mark(err, errs.ErrBuildQuery), "postgres: get booking")
	}

	b, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return bookings.Booking{}, bookings.ErrNotFound
	}
	if err != nil {
		return bookings.Booking{}, err
	}
	return b, nil
}

func (r *BookingsRepo) Create(ctx context.Context, b bookings.Booking) (bookings.Booking, error) {
	query, args, err := insertBooking(b, r.now()).ToSql()
	if err != nil {
		return bookings.Booking{}, errs.Wrap(errs.Mark(err, errs.ErrBuildQuery), "postgres: create booking")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return bookings.Booking{}, errs.Wrap(bookings.ErrAlreadyExists, "postgres: create booking")
		}
		return bookings.Booking{}, errs.Wrap(errs.Mark(err, errs.ErrExecQuery), "postgres: create booking")
	}
	return b, nil
}

func (r *BookingsRepo) Update(ctx context.Context, b bookings.Booking) (bookings.Booking, error) {
	query, args, err := updateBooking(b).ToSql()
	if err != nil {
		return bookings.Booking{}, errs.Wrap(errs.Mark(err, errs.ErrBuildQuery), "postgres: update booking")
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return bookings.Booking{}, errs.Wrap(errs.Mark(err, errs.ErrExecQuery), "postgres: update booking")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return bookings.Booking{}, errs.Wrap(bookings.ErrNotFound, "postgres: update booking")
	}
	return b, nil
}

func (r *BookingsRepo) Delete(ctx context.Context, id string) error {
	query, args, err := deleteBooking(id).ToSql()
	if err != nil {
		return errs.Wrap(errs.Mark(err, errs.ErrBuildQuery), "postgres: delete booking")
	}

	// idempotente: 0 filas afectadas no es error
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errs.Wrap(errs.Mark(err, errs.ErrExecQuery), "postgres: delete booking")
	}
	return nil
}

// ReplaceAll reemplaza la tabla completa en una transacción. created_at se
// escalona para conservar el orden del payload.
func (r *BookingsRepo) ReplaceAll(ctx context.Context, items []bookings.Booking) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.Wrap(errs.Mark(err, errs.ErrExecQuery), "postgres: begin replace")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query, args, err := psql.Delete(bookingsTable).ToSql()
	if err != nil {
		return errs.Wrap(errs.Mark(err, errs.ErrBuildQuery), "postgres: replace bookings")
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return errs.Wrap(errs.Mark(err, errs.ErrExecQuery), "postgres: replace bookings")
	}

	base := r.now()
	for i, b := range items {
		query, args, err = insertBooking(b, base.Add(time.Duration(i)*time.Microsecond)).ToSql()
		if err != nil {
			return errs.Wrap(errs.Mark(err, errs.ErrBuildQuery), "postgres: replace bookings")
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return errs.Wrapf(errs.Mark(err, errs.ErrExecQuery), "postgres: replace bookings (row %d)", i)
		}
	}

	if err = tx.Commit(); err != nil {
		return errs.Wrap(errs.Mark(err, errs.ErrExecQuery), "postgres: commit replace")
	}
	return nil
}

func listBookings() squirrel.SelectBuilder {
	return psql.Select(bookingColumns...).
		From(bookingsTable).
		OrderBy("created_at ASC", "id ASC")
}

func getBooking(id string) squirrel.SelectBuilder {
	return psql.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"id": id})
}

// service_type no se toca: es inmutable.
func updateBooking(b bookings.Booking) squirrel.UpdateBuilder {
	return psql.Update(bookingsTable).
		SetMap(map[string]any{
			"cat_name":       b.CatName,
			"owner_name":     b.OwnerName,
			"start_date":     b.StartDate,
			"end_date":       nullDate(b.EndDate),
			"notes":          b.Notes,
			"total_fees":     nullFloat(b.TotalFees),
			"contact_number": b.ContactNumber,
		}).
		Where(squirrel.Eq{"id": b.ID})
}

func deleteBooking(id string) squirrel.DeleteBuilder {
	return psql.Delete(bookingsTable).Where(squirrel.Eq{"id": id})
}

func insertBooking(b bookings.Booking, createdAt time.Time) squirrel.InsertBuilder {
	return psql.Insert(bookingsTable).
		Columns(append(append([]string{}, bookingColumns...), "created_at")...).
		Values(
			b.ID,
			string(b.ServiceType),
			b.CatName,
			b.OwnerName,
			b.StartDate,
			nullDate(b.EndDate),
			b.Notes,
			nullFloat(b.TotalFees),
			b.ContactNumber,
			createdAt,
		)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (bookings.Booking, error) {
	var (
		b           bookings.Booking
		serviceType string
		fees        sql.NullFloat64
	)
	err := row.Scan(
		&b.ID,
		&serviceType,
		&b.CatName,
		&b.OwnerName,
		&b.StartDate,
		&b.EndDate,
		&b.Notes,
		&fees,
		&b.ContactNumber,
	)
	if err == sql.ErrNoRows {
		return bookings.Booking{}, err
	}
	if err != nil {
		return bookings.Booking{}, errs.Wrap(errs.Mark(err, errs.ErrScanRow), "postgres: scan booking")
	}

	b.ServiceType = bookings.ServiceType(serviceType)
	if fees.Valid {
		v := fees.Float64
		b.TotalFees = &v
	}
	return b, nil
}

func nullDate(d *bookings.Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return *d
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
