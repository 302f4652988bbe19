package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ShridharSLS/Reaction-sub000/internal/model"
)

// Postgres error codes the insert path maps onto the error taxonomy.
const (
	uniqueViolation     = "23505" // canonical code or code-less URL already present
	foreignKeyViolation = "23503" // submitter references no people row
)

// violationCode returns the Postgres error code when err carries a constraint
// violation, or "" otherwise.
func violationCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

const videoColumns = `video_id, person_id, url, canonical_code, video_type, likes_count,
	       pitch, rating, score, taken_by, submitted_at, last_updated`

func scanVideo(row pgx.Row) (*model.Video, error) {
	var v model.Video
	err := row.Scan(
		&v.VideoID, &v.PersonID, &v.URL, &v.CanonicalCode, &v.Type, &v.LikesCount,
		&v.Pitch, &v.Rating, &v.Score, &v.TakenBy, &v.SubmittedAt, &v.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FindDuplicate returns the URL of an existing video with the same canonical
// code, or (when code is empty) the same exact URL. Advisory only: the insert
// constraint is the authority under races.
func (r *VideoRepo) FindDuplicate(ctx context.Context, code, url string) (existingURL string, found bool, err error) {
	var query string
	var arg string
	if code != "" {
		query = `SELECT url FROM videos WHERE canonical_code = $1`
		arg = code
	} else {
		query = `SELECT url FROM videos WHERE url = $1 AND canonical_code IS NULL`
		arg = url
	}

	err = r.pool.QueryRow(ctx, query, arg).Scan(&existingURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return existingURL, true, nil
}

// Insert creates a video awaiting triage (rating -1) along with an unset
// review row for every active host, all in one transaction. personID is nil
// for anonymous submissions. A uniqueness violation on the canonical code or
// URL maps to DuplicateContentError.
func (r *VideoRepo) Insert(ctx context.Context, personID *int64, url string, code *string, videoType model.VideoType, likes int, pitch *string) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var videoID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO videos (person_id, url, canonical_code, video_type, likes_count, pitch)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING video_id`,
		personID, url, code, videoType, likes, pitch).Scan(&videoID)
	if err != nil {
		switch violationCode(err) {
		case uniqueViolation:
			dup := &model.DuplicateContentError{}
			if code != nil {
				dup.CanonicalCode = *code
			}
			if existing, found, findErr := r.FindDuplicate(ctx, dup.CanonicalCode, url); findErr == nil && found {
				dup.ExistingURL = existing
			}
			return 0, dup
		case foreignKeyViolation:
			return 0, model.ErrInvalidInput
		}
		return 0, err
	}

	// Review rows start unset; the gate opens them later.
	_, err = tx.Exec(ctx, `
		INSERT INTO host_reviews (video_id, host_id)
		SELECT $1, host_id FROM hosts WHERE active`,
		videoID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return videoID, nil
}

// FindByID returns a single video by id.
func (r *VideoRepo) FindByID(ctx context.Context, videoID int64) (*model.Video, error) {
	v, err := scanVideo(r.pool.QueryRow(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE video_id = $1`, videoID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	return v, err
}

// ListByGate returns videos in the given triage gate, newest first.
func (r *VideoRepo) ListByGate(ctx context.Context, gate model.Gate, limit int) ([]model.Video, error) {
	var cond string
	switch gate {
	case model.GateRelevance:
		cond = `rating = -1`
	case model.GateTrash:
		cond = `rating = 0`
	case model.GateReviewable:
		cond = `rating >= 1`
	default:
		return nil, model.ErrInvalidInput
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE `+cond+`
		 ORDER BY submitted_at DESC LIMIT $1`, limit)
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

// UpdateLikes sets the likes count and recomputes the score in the same
// statement, since likes is one of the score's two inputs.
func (r *VideoRepo) UpdateLikes(ctx context.Context, videoID int64, likes int) (*model.Video, error) {
	v, err := scanVideo(r.pool.QueryRow(ctx, `
		UPDATE videos
		SET likes_count = $2,
		    score = CASE WHEN rating >= 0 THEN $2::bigint * rating ELSE NULL END,
		    last_updated = NOW()
		WHERE video_id = $1
		RETURNING `+videoColumns, videoID, likes))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	return v, err
}

// Stats returns global gate totals and per-host workload counts.
func (r *VideoRepo) Stats(ctx context.Context) (*model.StatsResponse, error) {
	stats := &model.StatsResponse{
		ByGate:   make(map[model.Gate]int),
		Workload: make(map[int64]int),
	}

	var relevance, trash, reviewable int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE rating = -1),
		       COUNT(*) FILTER (WHERE rating = 0),
		       COUNT(*) FILTER (WHERE rating >= 1)
		FROM videos`).Scan(&stats.TotalVideos, &relevance, &trash, &reviewable)
	if err != nil {
		return nil, err
	}
	stats.ByGate[model.GateRelevance] = relevance
	stats.ByGate[model.GateTrash] = trash
	stats.ByGate[model.GateReviewable] = reviewable

	err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM hosts WHERE active`).Scan(&stats.ActiveHosts)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT hr.host_id, COUNT(*)
		FROM host_reviews hr
		JOIN hosts h ON h.host_id = hr.host_id
		WHERE h.active AND hr.status IN ('accepted', 'assigned')
		GROUP BY hr.host_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var hostID int64
		var count int
		if err := rows.Scan(&hostID, &count); err != nil {
			return nil, err
		}
		stats.Workload[hostID] = count
	}
	return stats, rows.Err()
}
