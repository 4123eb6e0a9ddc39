package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/xavierca1/telecrm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, email, phone, address, status, response, telecaller_id, call_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		l.ID,
		l.Name,
		l.Email,
		l.Phone,
		l.Address,
		string(l.Status),
		nullString(string(l.Response)),
		l.TelecallerID,
		l.CallDate,
		l.CreatedAt,
	)

	return err
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `
		SELECT id, name, email, phone, address, status, response, telecaller_id, call_date, created_at
		FROM leads
		WHERE id = $1
	`

	l, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}

	return l, nil
}

func (r *LeadRepository) FindAll(ctx context.Context) ([]entity.Lead, error) {
	query := `
		SELECT id, name, email, phone, address, status, response, telecaller_id, call_date, created_at
		FROM leads
		ORDER BY created_at DESC
	`
	return r.queryLeads(ctx, query)
}

func (r *LeadRepository) FindByTelecaller(ctx context.Context, telecallerID string) ([]entity.Lead, error) {
	query := `
		SELECT id, name, email, phone, address, status, response, telecaller_id, call_date, created_at
		FROM leads
		WHERE telecaller_id = $1
		ORDER BY created_at DESC
	`
	return r.queryLeads(ctx, query, telecallerID)
}

// UpdateAddress touches the address column and nothing else; the narrower
// statement is the defense against bulk-update overwrites.
func (r *LeadRepository) UpdateAddress(ctx context.Context, l *entity.Lead) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET address = $1 WHERE id = $2`,
		l.Address, l.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, l *entity.Lead) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET status = $1, response = $2, call_date = $3 WHERE id = $4`,
		string(l.Status), nullString(string(l.Response)), l.CallDate, l.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *LeadRepository) CountByStatus(ctx context.Context, statuses ...entity.LeadStatus) (int, error) {
	vals := make([]string, len(statuses))
	for i, s := range statuses {
		vals[i] = string(s)
	}

	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads WHERE status = ANY($1)`,
		pq.Array(vals),
	).Scan(&count)
	return count, err
}

func (r *LeadRepository) RecentConnected(ctx context.Context, limit int) ([]entity.RecentCall, error) {
	query := `
		SELECT l.id, l.name, u.name, l.call_date
		FROM leads l
		JOIN users u ON u.id = l.telecaller_id
		WHERE l.status = 'connected'
		ORDER BY l.call_date DESC NULLS LAST
		LIMIT $1
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calls []entity.RecentCall
	for rows.Next() {
		var c entity.RecentCall
		var callDate sql.NullTime
		if err := rows.Scan(&c.LeadID, &c.LeadName, &c.TelecallerName, &callDate); err != nil {
			return nil, err
		}
		if callDate.Valid {
			t := callDate.Time
			c.CallDate = &t
		}
		calls = append(calls, c)
	}

	return calls, rows.Err()
}

func (r *LeadRepository) CallTrends(ctx context.Context, since time.Time) ([]entity.CallTrend, error) {
	query := `
		SELECT to_char(call_date, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM leads
		WHERE status = 'connected' AND call_date >= $1
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []entity.CallTrend
	for rows.Next() {
		var t entity.CallTrend
		if err := rows.Scan(&t.Date, &t.Count); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}

	return trends, rows.Err()
}

func (r *LeadRepository) queryLeads(ctx context.Context, query string, args ...any) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}

	return leads, rows.Err()
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	var response sql.NullString
	var callDate sql.NullTime

	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.Email,
		&l.Phone,
		&l.Address,
		&l.Status,
		&response,
		&l.TelecallerID,
		&callDate,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Response = entity.LeadResponse(response.String)
	if callDate.Valid {
		t := callDate.Time
		l.CallDate = &t
	}

	return &l, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}
