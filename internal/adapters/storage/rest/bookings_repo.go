package rest

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tucing-suites-calendar/internal/domain/bookings"
	"tucing-suites-calendar/internal/platform/errs"
	"tucing-suites-calendar/internal/platform/httpclient"
)

const DefaultTable = "bookings"

type Options struct {
	BaseURL string // p.ej. https://xyz.supabase.co
	APIKey  string
	Table   string
	Timeout time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

// BookingsRepo habla con una API estilo PostgREST (/rest/v1/<tabla>).
type BookingsRepo struct {
	client *httpclient.Client
	table  string
}

func NewBookingsRepo(opts Options) (*BookingsRepo, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, errs.New("rest: base url required")
	}
	table := strings.TrimSpace(opts.Table)
	if table == "" {
		table = DefaultTable
	}

	headers := map[string]string{}
	if opts.APIKey != "" {
		headers["apikey"] = opts.APIKey
		headers["Authorization"] = "Bearer " + opts.APIKey
	}

	c, err := httpclient.New(httpclient.Options{
		BaseURL:   strings.TrimRight(opts.BaseURL, "/") + "/rest/v1",
		Timeout:   opts.Timeout,
		Headers:   headers,
		Transport: opts.Transport,
	})
	if err != nil {
		return nil, err
	}

	return &BookingsRepo{client: c, table: url.PathEscape(table)}, nil
}

// row es el formato snake_case de la tabla remota.
type row struct {
	ID            string         `json:"id"`
	ServiceType   string         `json:"service_type"`
	CatName       string         `json:"cat_name"`
	OwnerName     string         `json:"owner_name"`
	StartDate     bookings.Date  `json:"start_date"`
	EndDate       *bookings.Date `json:"end_date"`
	Notes         *string        `json:"notes"`
	TotalFees     *float64       `json:"total_fees"`
	ContactNumber *string        `json:"contact_number"`
}

// patch no incluye id ni service_type: no cambian en una edición.
type patch struct {
	CatName       string         `json:"cat_name"`
	OwnerName     string         `json:"owner_name"`
	StartDate     bookings.Date  `json:"start_date"`
	EndDate       *bookings.Date `json:"end_date"`
	Notes         *string        `json:"notes"`
	TotalFees     *float64       `json:"total_fees"`
	ContactNumber *string        `json:"contact_number"`
}

func (r *BookingsRepo) List(ctx context.Context) ([]bookings.Booking, error) {
	var rows []row
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.asc,id.asc")

	if err := r.do(ctx, http.MethodGet, q, nil, nil, &rows); err != nil {
		return nil, remoteErr(err, "rest: list bookings")
	}
	return fromRows(rows), nil
}

func (r *BookingsRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	var rows []row
	q := idFilter(id)
	q.Set("select", "*")

	if err := r.do(ctx, http.MethodGet, q, nil, nil, &rows); err != nil {
		return bookings.Booking{}, remoteErr(err, "rest: get booking")
	}
	if len(rows) == 0 {
		return bookings.Booking{}, bookings.ErrNotFound
	}
	return rows[0].booking(), nil
}

func (r *BookingsRepo) Create(ctx context.Context, b bookings.Booking) (bookings.Booking, error) {
	var rows []row
	err := r.do(ctx, http.MethodPost, nil, returnRepresentation, []row{toRow(b)}, &rows)
	if httpclient.StatusCode(err) == http.StatusConflict {
		return bookings.Booking{}, errs.Wrap(bookings.ErrAlreadyExists, "rest: create booking")
	}
	if err != nil {
		return bookings.Booking{}, remoteErr(err, "rest: create booking")
	}
	if len(rows) == 0 {
		return b, nil
	}
	return rows[0].booking(), nil
}

func (r *BookingsRepo) Update(ctx context.Context, b bookings.Booking) (bookings.Booking, error) {
	var rows []row
	full := toRow(b)
	body := patch{
		CatName:       full.CatName,
		OwnerName:     full.OwnerName,
		StartDate:     full.StartDate,
		EndDate:       full.EndDate,
		Notes:         full.Notes,
		TotalFees:     full.TotalFees,
		ContactNumber: full.ContactNumber,
	}

	if err := r.do(ctx, http.MethodPatch, idFilter(b.ID), returnRepresentation, body, &rows); err != nil {
		return bookings.Booking{}, remoteErr(err, "rest: update booking")
	}
	if len(rows) == 0 {
		return bookings.Booking{}, errs.Wrap(bookings.ErrNotFound, "rest: update booking")
	}
	return rows[0].booking(), nil
}

func (r *BookingsRepo) Delete(ctx context.Context, id string) error {
	if err := r.do(ctx, http.MethodDelete, idFilter(id), nil, nil, nil); err != nil {
		return remoteErr(err, "rest: delete booking")
	}
	return nil
}

// ReplaceAll borra todo y hace un insert masivo. PostgREST exige un filtro en DELETE.
// No es atómico: si el insert falla la tabla queda vacía y el fallback conserva la copia local.
func (r *BookingsRepo) ReplaceAll(ctx context.Context, items []bookings.Booking) error {
	all := url.Values{}
	all.Set("id", "not.is.null")
	if err := r.do(ctx, http.MethodDelete, all, nil, nil, nil); err != nil {
		return remoteErr(err, "rest: clear bookings")
	}
	if len(items) == 0 {
		return nil
	}

	rows := make([]row, 0, len(items))
	for _, b := range items {
		rows = append(rows, toRow(b))
	}
	if err := r.do(ctx, http.MethodPost, nil, nil, rows, nil); err != nil {
		return remoteErr(err, "rest: insert bookings")
	}
	return nil
}

var returnRepresentation = map[string]string{"Prefer": "return=representation"}

func (r *BookingsRepo) do(ctx context.Context, method string, q url.Values, extra map[string]string, in, out any) error {
	return r.client.Do(ctx, httpclient.Request{
		Method: method,
		Path:   r.table,
		Query:  q,
		Header: extra,
		In:     in,
		Out:    out,
	})
}

func idFilter(id string) url.Values {
	q := url.Values{}
	q.Set("id", "eq."+id)
	return q
}

func remoteErr(err error, msg string) error {
	return errs.Wrap(errs.Mark(err, errs.ErrRemote), msg)
}

func toRow(b bookings.Booking) row {
	return row{
		ID:            b.ID,
		ServiceType:   string(b.ServiceType),
		CatName:       b.CatName,
		OwnerName:     b.OwnerName,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		Notes:         optString(b.Notes),
		TotalFees:     b.TotalFees,
		ContactNumber: optString(b.ContactNumber),
	}
}

func (r row) booking() bookings.Booking {
	b := bookings.Booking{
		ID:          r.ID,
		ServiceType: bookings.ServiceType(r.ServiceType),
		CatName:     r.CatName,
		OwnerName:   r.OwnerName,
		StartDate:   r.StartDate,
		TotalFees:   r.TotalFees,
	}
	if r.EndDate != nil && !r.EndDate.IsZero() {
		end := *r.EndDate
		b.EndDate = &end
	}
	if r.Notes != nil {
		b.Notes = *r.Notes
	}
	if r.ContactNumber != nil {
		b.ContactNumber = *r.ContactNumber
	}
	return b
}

func fromRows(rows []row) []bookings.Booking {
	out := make([]bookings.Booking, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.booking())
	}
	return out
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
