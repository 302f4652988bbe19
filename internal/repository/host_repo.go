package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ShridharSLS/Reaction-sub000/internal/model"
)

type HostRepo struct {
	pool *pgxpool.Pool
}

func NewHostRepo(pool *pgxpool.Pool) *HostRepo {
	return &HostRepo{pool: pool}
}

const hostColumns = `host_id, display_name, status_field, note_field, external_id_field, active, created_at`

func scanHost(row pgx.Row) (*model.Host, error) {
	var h model.Host
	err := row.Scan(
		&h.HostID, &h.Name,
		&h.Bindings.Status, &h.Bindings.Note, &h.Bindings.ExternalID,
		&h.Active, &h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// FindByID returns a host by id, active or not.
func (r *HostRepo) FindByID(ctx context.Context, hostID int64) (*model.Host, error) {
	h, err := scanHost(r.pool.QueryRow(ctx,
		`SELECT `+hostColumns+` FROM hosts WHERE host_id = $1`, hostID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrUnknownHost
	}
	return h, err
}

// List returns the full registry ordered by id.
func (r *HostRepo) List(ctx context.Context) ([]model.Host, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+hostColumns+` FROM hosts ORDER BY host_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hosts []model.Host
	for rows.Next() {
		h, err := scanHost(rows)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, *h)
	}
	return hosts, rows.Err()
}

// IsActive reports whether a host exists and is active.
func (r *HostRepo) IsActive(ctx context.Context, hostID int64) (bool, error) {
	var active bool
	err := r.pool.QueryRow(ctx,
		`SELECT active FROM hosts WHERE host_id = $1`, hostID).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return active, err
}

// NextID returns the next never-reused host id. Hosts are never deleted, so
// max+1 can never collide with a historical id.
func (r *HostRepo) NextID(ctx context.Context) (int64, error) {
	var next int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(host_id), 0) + 1 FROM hosts`).Scan(&next)
	return next, err
}

// LowestActiveID returns the default reference host for seeding, or 0 when
// the registry is empty.
func (r *HostRepo) LowestActiveID(ctx context.Context) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MIN(host_id), 0) FROM hosts WHERE active`).Scan(&id)
	return id, err
}

// FindBindingCollision returns the first requested field name already claimed
// by another host's bindings, or "" when there is none.
func (r *HostRepo) FindBindingCollision(ctx context.Context, hostID int64, bindings model.FieldBindings) (string, error) {
	for _, field := range bindings.Names() {
		var exists bool
		err := r.pool.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM hosts
				WHERE host_id <> $1
				  AND $2 IN (status_field, note_field, external_id_field)
			)`,
			hostID, field).Scan(&exists)
		if err != nil {
			return "", err
		}
		if exists {
			return field, nil
		}
	}
	return "", nil
}

// CreateInactive registers a host without making it visible to the review
// state machine. Retries of the same registration are no-ops; an id clash
// with different bindings surfaces as FieldCollisionError on the caller's
// collision check, so this insert only skips true duplicates.
func (r *HostRepo) CreateInactive(ctx context.Context, hostID int64, name string, bindings model.FieldBindings) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO hosts (host_id, display_name, status_field, note_field, external_id_field, active)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		ON CONFLICT (host_id) DO NOTHING`,
		hostID, name, bindings.Status, bindings.Note, bindings.ExternalID)
	return err
}

// Activate is the final provisioning step: the first moment the review state
// machine can see the host.
func (r *HostRepo) Activate(ctx context.Context, hostID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE hosts SET active = TRUE WHERE host_id = $1`, hostID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUnknownHost
	}
	return nil
}

// Deactivate soft-removes a host. Historical review rows stay in place.
func (r *HostRepo) Deactivate(ctx context.Context, hostID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE hosts SET active = FALSE WHERE host_id = $1`, hostID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUnknownHost
	}
	return nil
}
