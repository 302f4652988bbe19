package service

import (
	"context"

	"github.com/ShridharSLS/Reaction-sub000/internal/model"
	"github.com/ShridharSLS/Reaction-sub000/internal/repository"
	"github.com/ShridharSLS/Reaction-sub000/pkg/canonical"
)

// SubmitService handles topic submissions: canonical identity resolution,
// the advisory duplicate check, and the constraint-backed insert.
type SubmitService struct {
	videos *repository.VideoRepo
}

func NewSubmitService(videos *repository.VideoRepo) *SubmitService {
	return &SubmitService{videos: videos}
}

// CheckDuplicate reports whether a URL resolves to content the system
// already tracks, and if so, the existing video's URL. Advisory: Submit
// still relies on the uniqueness constraint under races.
func (s *SubmitService) CheckDuplicate(ctx context.Context, url string) (existingURL string, found bool, err error) {
	code, _ := canonical.Resolve(url)
	return s.videos.FindDuplicate(ctx, code, url)
}

// Submit inserts a new video topic awaiting triage.
//
// Duplicate detection is advisory-then-enforced: the pre-check catches the
// common case with a useful message, and the insert's uniqueness constraint
// settles the race, surfaced as the same DuplicateContentError.
func (s *SubmitService) Submit(ctx context.Context, req model.SubmitRequest) (*model.SubmitResponse, error) {
	videoType := model.VideoType(req.Type)
	if !model.ValidVideoTypes[videoType] || req.Likes < 0 {
		return nil, model.ErrInvalidInput
	}

	var codePtr *string
	code, ok := canonical.Resolve(req.URL)
	if ok {
		codePtr = &code
	}

	if existing, found, err := s.videos.FindDuplicate(ctx, code, req.URL); err != nil {
		return nil, err
	} else if found {
		return nil, &model.DuplicateContentError{CanonicalCode: code, ExistingURL: existing}
	}

	var pitchPtr *string
	if req.Pitch != "" {
		pitchPtr = &req.Pitch
	}

	videoID, err := s.videos.Insert(ctx, personRef(req.PersonID), req.URL, codePtr, videoType, req.Likes, pitchPtr)
	if err != nil {
		return nil, err
	}

	return &model.SubmitResponse{VideoID: videoID, CanonicalCode: codePtr}, nil
}

// personRef maps the request's person id onto the nullable column: omitted or
// non-positive ids mean an anonymous submission.
func personRef(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}
