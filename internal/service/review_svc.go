package service

import (
	"context"
	"errors"
	"log"

	"github.com/ShridharSLS/Reaction-sub000/internal/model"
	"github.com/ShridharSLS/Reaction-sub000/internal/repository"
)

// ReviewService orchestrates the review state machine: the relevance gate,
// per-host transitions and the reads the view layer consumes. It is the only
// caller of the ReviewRepo's mutating operations.
type ReviewService struct {
	reviews *repository.ReviewRepo
	videos  *repository.VideoRepo
	hosts   *repository.HostRepo
	cache   *CacheService
}

func NewReviewService(reviews *repository.ReviewRepo, videos *repository.VideoRepo, hosts *repository.HostRepo, cache *CacheService) *ReviewService {
	return &ReviewService{reviews: reviews, videos: videos, hosts: hosts, cache: cache}
}

// SetRelevance validates and applies a relevance rating change.
func (s *ReviewService) SetRelevance(ctx context.Context, videoID int64, rating int) (*model.Video, error) {
	if !model.ValidRating(rating) {
		return nil, model.ErrInvalidRating
	}

	v, err := s.reviews.SetRelevanceRating(ctx, videoID, rating)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, videoID)
	return v, nil
}

// Transition validates and applies one host's sub-state change.
func (s *ReviewService) Transition(ctx context.Context, req model.TransitionRequest) (*model.TransitionResponse, error) {
	status := model.HostStatus(req.Status)
	if !model.ValidHostStatuses[status] {
		return nil, model.ErrInvalidInput
	}

	active, err := s.hosts.IsActive(ctx, req.HostID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, model.ErrUnknownHost
	}

	resp, err := s.reviews.Transition(ctx, req.VideoID, req.HostID, status, req.Note, req.ExternalID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.VideoID)
	return resp, nil
}

// BulkTransition applies each entry independently. Partial failure is the
// expected shape: one entry's illegal transition never aborts its siblings.
func (s *ReviewService) BulkTransition(ctx context.Context, req model.BulkTransitionRequest) *model.BulkTransitionResponse {
	resp := &model.BulkTransitionResponse{
		Results: make([]model.BulkItemResult, 0, len(req.Items)),
	}

	for _, item := range req.Items {
		result := model.BulkItemResult{VideoID: item.VideoID, HostID: item.HostID}

		if _, err := s.Transition(ctx, item); err != nil {
			result.Code, result.Message = classify(err)
			resp.Failed++
		} else {
			result.Success = true
			resp.Succeeded++
		}
		resp.Results = append(resp.Results, result)
	}
	return resp
}

// classify maps an error onto its taxonomy code for per-item bulk reporting.
func classify(err error) (code, message string) {
	var illegal *model.IllegalTransitionError
	switch {
	case errors.As(err, &illegal):
		return "ILLEGAL_TRANSITION", illegal.Error()
	case errors.Is(err, model.ErrUnknownHost):
		return "UNKNOWN_HOST", err.Error()
	case errors.Is(err, model.ErrNotFound):
		return "NOT_FOUND", err.Error()
	case errors.Is(err, model.ErrInvalidInput), errors.Is(err, model.ErrInvalidRating):
		return "INVALID_INPUT", err.Error()
	default:
		return "INTERNAL_ERROR", "transition failed"
	}
}

// History returns per-host {status, lastChanged} for a video.
func (s *ReviewService) History(ctx context.Context, videoID int64) ([]model.HistoryEntry, error) {
	return s.reviews.History(ctx, videoID)
}

// ListByHostStatus returns a host's videos in the given sub-state.
func (s *ReviewService) ListByHostStatus(ctx context.Context, hostID int64, status model.HostStatus, limit int) ([]model.Video, error) {
	if !model.ValidHostStatuses[status] {
		return nil, model.ErrInvalidInput
	}
	active, err := s.hosts.IsActive(ctx, hostID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, model.ErrUnknownHost
	}
	return s.reviews.ListByHostStatus(ctx, hostID, status, limit)
}

// UpdateLikes changes the likes count; the score follows in the same
// transaction since likes is one of its two inputs.
func (s *ReviewService) UpdateLikes(ctx context.Context, videoID int64, likes int) (*model.Video, error) {
	if likes < 0 {
		return nil, model.ErrInvalidInput
	}
	v, err := s.videos.UpdateLikes(ctx, videoID, likes)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, videoID)
	return v, nil
}

func (s *ReviewService) invalidate(ctx context.Context, videoID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateVideo(ctx, videoID); err != nil {
		log.Printf("cache: invalidate video error: %v", err)
	}
}
