package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/ShridharSLS/Reaction-sub000/internal/model"
	"github.com/ShridharSLS/Reaction-sub000/internal/repository"
)

// reservedFields are the video record's own column names; a host binding may
// never shadow one of them.
var reservedFields = map[string]bool{
	"video_id": true, "person_id": true, "url": true, "canonical_code": true,
	"video_type": true, "likes_count": true, "pitch": true, "rating": true,
	"score": true, "taken_by": true, "submitted_at": true, "last_updated": true,
	"host_id": true, "status_changed_at": true,
}

var fieldNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

// ValidateBindings checks the three field names are well-formed, mutually
// distinct and not reserved, and returns them trimmed — the registry stores
// exactly what was validated. Collisions with other hosts are checked against
// the registry separately.
func ValidateBindings(b model.FieldBindings) (model.FieldBindings, error) {
	seen := make(map[string]bool, 3)
	trimmed := make([]string, 0, 3)
	for _, field := range b.Names() {
		field = strings.TrimSpace(field)
		if !fieldNameRe.MatchString(field) {
			return model.FieldBindings{}, model.ErrInvalidInput
		}
		if reservedFields[field] || seen[field] {
			return model.FieldBindings{}, &model.FieldCollisionError{Field: field}
		}
		seen[field] = true
		trimmed = append(trimmed, field)
	}
	return model.FieldBindings{Status: trimmed[0], Note: trimmed[1], ExternalID: trimmed[2]}, nil
}

// RegistryService introduces hosts into the running system and retires them.
//
// Registration is a sequence of individually idempotent steps; the host is
// invisible to the review state machine until the final activation, so a
// partial failure leaves no registered-but-unprovisioned host behind and a
// retry with the same id converges on the same end state.
type RegistryService struct {
	hosts   *repository.HostRepo
	reviews *repository.ReviewRepo
	cache   *CacheService
}

func NewRegistryService(hosts *repository.HostRepo, reviews *repository.ReviewRepo, cache *CacheService) *RegistryService {
	return &RegistryService{hosts: hosts, reviews: reviews, cache: cache}
}

// RegisterHost provisions a new reviewer:
//
//  1. insert the registry row inactive;
//  2. create an unset review row for every existing video;
//  3. seed pending from the reference host's pending rows on reviewable
//     videos — judgments (accepted/rejected/assigned) are never inherited;
//  4. activate.
func (s *RegistryService) RegisterHost(ctx context.Context, req model.RegisterHostRequest) (*model.RegisterHostResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, model.ErrInvalidInput
	}
	bindings, err := ValidateBindings(req.Bindings)
	if err != nil {
		return nil, err
	}
	req.Bindings = bindings

	hostID := req.HostID
	if hostID == 0 {
		next, err := s.hosts.NextID(ctx)
		if err != nil {
			return nil, &model.ProvisioningError{Step: "allocate-id", Err: err}
		}
		hostID = next
	} else if hostID < 0 {
		return nil, model.ErrInvalidInput
	}

	if field, err := s.hosts.FindBindingCollision(ctx, hostID, req.Bindings); err != nil {
		return nil, &model.ProvisioningError{HostID: hostID, Step: "collision-check", Err: err}
	} else if field != "" {
		return nil, &model.FieldCollisionError{Field: field}
	}

	referenceID := req.ReferenceHostID
	if referenceID == 0 {
		lowest, err := s.hosts.LowestActiveID(ctx)
		if err != nil {
			return nil, &model.ProvisioningError{HostID: hostID, Step: "reference-host", Err: err}
		}
		referenceID = lowest // 0 when registering the first host
	}

	if err := s.hosts.CreateInactive(ctx, hostID, req.Name, req.Bindings); err != nil {
		return nil, &model.ProvisioningError{HostID: hostID, Step: "register", Err: err}
	}

	if err := s.reviews.ProvisionHostRows(ctx, hostID); err != nil {
		return nil, &model.ProvisioningError{HostID: hostID, Step: "provision-rows", Err: err}
	}

	var seeded int64
	if referenceID > 0 {
		var err error
		seeded, err = s.reviews.SeedFromReference(ctx, hostID, referenceID)
		if err != nil {
			return nil, &model.ProvisioningError{HostID: hostID, Step: "seed", Err: err}
		}
	}

	if err := s.hosts.Activate(ctx, hostID); err != nil {
		return nil, &model.ProvisioningError{HostID: hostID, Step: "activate", Err: err}
	}

	if s.cache != nil {
		s.cache.InvalidateAllVideos(ctx)
	}

	return &model.RegisterHostResponse{HostID: hostID, Seeded: seeded}, nil
}

// DeactivateHost soft-removes a host and re-derives taken-by for the videos
// it was counted on. Historical review rows are preserved.
func (s *RegistryService) DeactivateHost(ctx context.Context, hostID int64) error {
	if err := s.hosts.Deactivate(ctx, hostID); err != nil {
		return err
	}
	if err := s.reviews.RecountVideosForHost(ctx, hostID); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.InvalidateAllVideos(ctx)
	}
	return nil
}

// ListHosts returns the registry.
func (s *RegistryService) ListHosts(ctx context.Context) ([]model.Host, error) {
	return s.hosts.List(ctx)
}
