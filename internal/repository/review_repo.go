package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ShridharSLS/Reaction-sub000/internal/model"
)

// ReviewRepo owns every write to ratings, per-host statuses and the taken-by
// aggregate. All mutating operations lock the videos row first, so
// concurrent rating changes and host transitions on the same video
// serialize, and the status write plus the aggregate recompute commit as
// one unit.
type ReviewRepo struct {
	pool *pgxpool.Pool
}

func NewReviewRepo(pool *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{pool: pool}
}

// recountTakenBy re-derives the aggregate from the authoritative review rows
// inside the caller's transaction. Never computed from an in-memory delta.
func recountTakenBy(ctx context.Context, tx pgx.Tx, videoID int64) (int, error) {
	var takenBy int
	err := tx.QueryRow(ctx, `
		UPDATE videos SET taken_by = (
			SELECT COUNT(*)
			FROM host_reviews hr
			JOIN hosts h ON h.host_id = hr.host_id
			WHERE hr.video_id = $1 AND h.active
			  AND hr.status IN ('accepted', 'assigned')
		), last_updated = NOW()
		WHERE video_id = $1
		RETURNING taken_by`,
		videoID).Scan(&takenBy)
	return takenBy, err
}

// notifyChange wakes the cache worker. The payload is the video id.
func notifyChange(ctx context.Context, tx pgx.Tx, videoID int64) error {
	_, err := tx.Exec(ctx, `SELECT pg_notify('review_changes', $1::text)`, videoID)
	return err
}

// lockVideo takes the per-video write lock and returns the current rating
// and likes count.
func lockVideo(ctx context.Context, tx pgx.Tx, videoID int64) (rating, likes int, err error) {
	err = tx.QueryRow(ctx,
		`SELECT rating, likes_count FROM videos WHERE video_id = $1 FOR UPDATE`,
		videoID).Scan(&rating, &likes)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, model.ErrNotFound
	}
	return rating, likes, err
}

// SetRelevanceRating moves a video between triage gates.
//
// Leaving the reviewable gate nulls every host's status and clears external
// ids (notes survive). Entering it sets pending only where the status is
// currently null, so a rating correction never discards per-host progress.
// Score and taken-by are recomputed in the same transaction.
func (r *ReviewRepo) SetRelevanceRating(ctx context.Context, videoID int64, rating int) (*model.Video, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	oldRating, _, err := lockVideo(ctx, tx, videoID)
	if err != nil {
		return nil, err
	}

	wasReviewable := oldRating >= 1
	isReviewable := rating >= 1

	if wasReviewable && !isReviewable {
		_, err = tx.Exec(ctx, `
			UPDATE host_reviews
			SET status = NULL, external_id = NULL, status_changed_at = NOW()
			WHERE video_id = $1 AND status IS NOT NULL`,
			videoID)
		if err != nil {
			return nil, err
		}
	}

	if isReviewable && !wasReviewable {
		// Hosts activated after this video was inserted may have no row yet.
		_, err = tx.Exec(ctx, `
			INSERT INTO host_reviews (video_id, host_id)
			SELECT $1, host_id FROM hosts WHERE active
			ON CONFLICT (video_id, host_id) DO NOTHING`,
			videoID)
		if err != nil {
			return nil, err
		}

		_, err = tx.Exec(ctx, `
			UPDATE host_reviews hr
			SET status = 'pending', status_changed_at = NOW()
			FROM hosts h
			WHERE hr.host_id = h.host_id AND h.active
			  AND hr.video_id = $1 AND hr.status IS NULL`,
			videoID)
		if err != nil {
			return nil, err
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE videos
		SET rating = $2,
		    score = CASE WHEN $2 >= 0 THEN likes_count::bigint * $2 ELSE NULL END,
		    last_updated = NOW()
		WHERE video_id = $1`,
		videoID, rating)
	if err != nil {
		return nil, err
	}

	if _, err = recountTakenBy(ctx, tx, videoID); err != nil {
		return nil, err
	}
	if err = notifyChange(ctx, tx, videoID); err != nil {
		return nil, err
	}

	v, err := scanVideo(tx.QueryRow(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE video_id = $1`, videoID))
	if err != nil {
		return nil, err
	}

	return v, tx.Commit(ctx)
}

// Transition moves one host's sub-state along the review graph and
// recomputes taken-by atomically with the status write.
//
// note, when non-nil, replaces the host's note. externalID may only be set
// when the target is assigned; any transition away from assigned, and any
// revert to pending, clears it.
func (r *ReviewRepo) Transition(ctx context.Context, videoID, hostID int64, newStatus model.HostStatus, note *string, externalID string) (*model.TransitionResponse, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rating, _, err := lockVideo(ctx, tx, videoID)
	if err != nil {
		return nil, err
	}

	// Sub-states only exist inside the reviewable gate.
	if rating < 1 {
		return nil, &model.IllegalTransitionError{HostID: hostID, From: nil, To: newStatus}
	}

	var current *model.HostStatus
	err = tx.QueryRow(ctx, `
		SELECT status FROM host_reviews
		WHERE video_id = $1 AND host_id = $2
		FOR UPDATE`,
		videoID, hostID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		// Host was provisioned after this video passed triage; its
		// sub-state is unset until it enters the workflow here.
		_, err = tx.Exec(ctx, `
			INSERT INTO host_reviews (video_id, host_id) VALUES ($1, $2)
			ON CONFLICT (video_id, host_id) DO NOTHING`,
			videoID, hostID)
	}
	if err != nil {
		return nil, err
	}

	if !model.CanTransition(current, newStatus) {
		return nil, &model.IllegalTransitionError{HostID: hostID, From: current, To: newStatus}
	}
	if externalID != "" && newStatus != model.StatusAssigned {
		return nil, &model.IllegalTransitionError{HostID: hostID, From: current, To: newStatus}
	}

	var extArg *string
	if newStatus == model.StatusAssigned && externalID != "" {
		extArg = &externalID
	}

	var stamped time.Time
	err = tx.QueryRow(ctx, `
		UPDATE host_reviews
		SET status = $3,
		    note = COALESCE($4, note),
		    external_id = $5,
		    status_changed_at = NOW()
		WHERE video_id = $1 AND host_id = $2
		RETURNING status_changed_at`,
		videoID, hostID, newStatus, note, extArg).Scan(&stamped)
	if err != nil {
		return nil, err
	}

	takenBy, err := recountTakenBy(ctx, tx, videoID)
	if err != nil {
		return nil, err
	}
	if err = notifyChange(ctx, tx, videoID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &model.TransitionResponse{
		Success:   true,
		Status:    newStatus,
		TakenBy:   takenBy,
		Timestamp: stamped,
	}, nil
}

// History returns every host's current sub-state and last transition time
// for a video, active hosts first by id.
func (r *ReviewRepo) History(ctx context.Context, videoID int64) ([]model.HistoryEntry, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM videos WHERE video_id = $1)`, videoID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	rows, err := r.pool.Query(ctx, `
		SELECT hr.host_id, h.display_name, hr.status, hr.note, hr.external_id, hr.status_changed_at
		FROM host_reviews hr
		JOIN hosts h ON h.host_id = hr.host_id
		WHERE hr.video_id = $1
		ORDER BY h.active DESC, hr.host_id`,
		videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.HostID, &e.HostName, &e.Status, &e.Note, &e.ExternalID, &e.LastChanged); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListByHostStatus returns videos a given host currently holds in the given
// sub-state, most recently transitioned first.
func (r *ReviewRepo) ListByHostStatus(ctx context.Context, hostID int64, status model.HostStatus, limit int) ([]model.Video, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+videoColumns+`
		FROM videos v
		JOIN host_reviews hr ON hr.video_id = v.video_id
		WHERE hr.host_id = $1 AND hr.status = $2
		ORDER BY hr.status_changed_at DESC
		LIMIT $3`,
		hostID, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	return videos, rows.Err()
}

// HostDetails returns the per-host sub-states for one video keyed by host id.
func (r *ReviewRepo) HostDetails(ctx context.Context, videoID int64) (map[int64]*model.HostDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT hr.host_id, hr.status, hr.note, hr.external_id, hr.status_changed_at
		FROM host_reviews hr
		JOIN hosts h ON h.host_id = hr.host_id
		WHERE hr.video_id = $1 AND h.active`,
		videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make(map[int64]*model.HostDetail)
	for rows.Next() {
		var hostID int64
		var d model.HostDetail
		if err := rows.Scan(&hostID, &d.Status, &d.Note, &d.ExternalID, &d.LastChanged); err != nil {
			return nil, err
		}
		details[hostID] = &d
	}
	return details, rows.Err()
}

// ProvisionHostRows creates an unset review row for every existing video.
// Safe to retry: already-present rows are skipped.
func (r *ReviewRepo) ProvisionHostRows(ctx context.Context, hostID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO host_reviews (video_id, host_id)
		SELECT video_id, $1 FROM videos
		ON CONFLICT (video_id, host_id) DO NOTHING`,
		hostID)
	return err
}

// SeedFromReference sets the new host to pending on reviewable videos where
// the reference host is itself pending. Accepted, rejected and assigned are
// reviewer judgments and are never inherited. Idempotent: only null statuses
// are touched, so a retry converges.
func (r *ReviewRepo) SeedFromReference(ctx context.Context, hostID, referenceHostID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE host_reviews hr
		SET status = 'pending', status_changed_at = NOW()
		FROM videos v, host_reviews ref
		WHERE hr.video_id = v.video_id AND hr.host_id = $1 AND hr.status IS NULL
		  AND v.rating >= 1
		  AND ref.video_id = v.video_id AND ref.host_id = $2 AND ref.status = 'pending'`,
		hostID, referenceHostID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// RecountVideosForHost re-derives taken-by for every video where the given
// host holds an accepted or assigned status. Used after deactivation, which
// changes which rows the aggregate counts.
func (r *ReviewRepo) RecountVideosForHost(ctx context.Context, hostID int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE videos v
		SET taken_by = (
			SELECT COUNT(*)
			FROM host_reviews hr
			JOIN hosts h ON h.host_id = hr.host_id
			WHERE hr.video_id = v.video_id AND h.active
			  AND hr.status IN ('accepted', 'assigned')
		), last_updated = NOW()
		WHERE EXISTS (
			SELECT 1 FROM host_reviews hr
			WHERE hr.video_id = v.video_id AND hr.host_id = $1
			  AND hr.status IN ('accepted', 'assigned')
		)`,
		hostID)
	return err
}

// AuditTakenBy re-derives taken-by for every video and repairs rows that
// drifted (e.g. operator SQL run outside the API). Returns the repair count.
func (r *ReviewRepo) AuditTakenBy(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE videos v
		SET taken_by = derived.cnt, last_updated = NOW()
		FROM (
			SELECT v2.video_id,
			       COUNT(hr.video_id) FILTER (
			           WHERE h.active AND hr.status IN ('accepted', 'assigned')
			       ) AS cnt
			FROM videos v2
			LEFT JOIN host_reviews hr ON hr.video_id = v2.video_id
			LEFT JOIN hosts h ON h.host_id = hr.host_id
			GROUP BY v2.video_id
		) derived
		WHERE derived.video_id = v.video_id AND v.taken_by <> derived.cnt`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
