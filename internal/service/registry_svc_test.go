package service

import (
	"errors"
	"testing"

	"github.com/ShridharSLS/Reaction-sub000/internal/model"
)

func bindings(status, note, ext string) model.FieldBindings {
	return model.FieldBindings{Status: status, Note: note, ExternalID: ext}
}

func TestValidateBindings_OK(t *testing.T) {
	cases := []model.FieldBindings{
		bindings("shridhar_status", "shridhar_note", "shridhar_video_id"),
		bindings("host2_status", "host2_note", "host2_external_id"),
		bindings("a", "b", "c"),
	}
	for _, b := range cases {
		if _, err := ValidateBindings(b); err != nil {
			t.Errorf("ValidateBindings(%v) = %v, want nil", b, err)
		}
	}
}

func TestValidateBindings_Malformed(t *testing.T) {
	cases := []model.FieldBindings{
		bindings("", "note", "ext"),
		bindings("Status", "note", "ext"),   // uppercase
		bindings("1status", "note", "ext"),  // leading digit
		bindings("sta tus", "note", "ext"),  // whitespace
		bindings("status;", "note", "ext"),  // punctuation
	}
	for _, b := range cases {
		if _, err := ValidateBindings(b); !errors.Is(err, model.ErrInvalidInput) {
			t.Errorf("ValidateBindings(%v) = %v, want ErrInvalidInput", b, err)
		}
	}
}

func TestValidateBindings_ReservedAndDuplicate(t *testing.T) {
	var collision *model.FieldCollisionError

	// Reserved video column
	_, err := ValidateBindings(bindings("rating", "h_note", "h_ext"))
	if !errors.As(err, &collision) || collision.Field != "rating" {
		t.Errorf("reserved field: err = %v, want FieldCollisionError{rating}", err)
	}

	// Internal relation column
	_, err = ValidateBindings(bindings("h_status", "status_changed_at", "h_ext"))
	if !errors.As(err, &collision) {
		t.Errorf("reserved field: err = %v, want FieldCollisionError", err)
	}

	// Duplicate within the same request
	_, err = ValidateBindings(bindings("same", "same", "h_ext"))
	if !errors.As(err, &collision) || collision.Field != "same" {
		t.Errorf("duplicate field: err = %v, want FieldCollisionError{same}", err)
	}
}

func TestValidateBindings_TrimsWhitespace(t *testing.T) {
	got, err := ValidateBindings(bindings(" h_status ", "h_note", " h_ext"))
	if err != nil {
		t.Fatal(err)
	}
	want := bindings("h_status", "h_note", "h_ext")
	if got != want {
		t.Errorf("ValidateBindings trimmed = %v, want %v", got, want)
	}
}

// seedStatus mirrors the SQL seeding rule for a single (video, new host)
// pair: pending only when the video is reviewable and the reference host is
// itself pending; judgments are never inherited.
func seedStatus(rating int, refStatus *model.HostStatus) *model.HostStatus {
	if rating >= 1 && refStatus != nil && *refStatus == model.StatusPending {
		s := model.StatusPending
		return &s
	}
	return nil
}

func TestSeedStatus_Policy(t *testing.T) {
	pending := model.StatusPending
	accepted := model.StatusAccepted
	rejected := model.StatusRejected
	assigned := model.StatusAssigned

	cases := []struct {
		name        string
		rating      int
		ref         *model.HostStatus
		wantPending bool
	}{
		{"reviewable, reference pending", 2, &pending, true},
		{"reviewable, reference accepted", 2, &accepted, false},
		{"reviewable, reference rejected", 1, &rejected, false},
		{"reviewable, reference assigned", 3, &assigned, false},
		{"reviewable, reference unset", 2, nil, false},
		{"awaiting triage", -1, &pending, false},
		{"trashed", 0, &pending, false},
	}

	for _, tc := range cases {
		got := seedStatus(tc.rating, tc.ref)
		if tc.wantPending {
			if got == nil || *got != model.StatusPending {
				t.Errorf("%s: seeded %v, want pending", tc.name, got)
			}
		} else if got != nil {
			t.Errorf("%s: seeded %v, want null", tc.name, *got)
		}
	}
}

// provisionBoard mirrors the idempotent provisioning steps over an in-memory
// set of videos so a simulated partial failure plus retry can be compared
// with a single clean run.
type provisionBoard struct {
	videos map[int64]*boardVideo // from review_svc_test.go
	rows   map[int64]*model.HostStatus
}

func (p *provisionBoard) provisionRows(hostID int64) {
	for id := range p.videos {
		if _, ok := p.rows[id]; !ok {
			p.rows[id] = nil
		}
	}
}

func (p *provisionBoard) seed(refHostID int64) {
	for id, v := range p.videos {
		if p.rows[id] != nil {
			continue // only null statuses are touched; retries converge
		}
		ref := v.hosts[refHostID]
		if ref == nil {
			continue
		}
		p.rows[id] = seedStatus(v.rating, ref.status)
	}
}

func TestProvisioning_IdempotentUnderRetry(t *testing.T) {
	mkVideos := func() map[int64]*boardVideo {
		reviewablePending := newBoardVideo(10, 1)
		_ = reviewablePending.setRelevance(2)

		reviewableAccepted := newBoardVideo(20, 1)
		_ = reviewableAccepted.setRelevance(1)
		_ = reviewableAccepted.transition(1, model.StatusAccepted, "")

		awaiting := newBoardVideo(30, 1)

		return map[int64]*boardVideo{1: reviewablePending, 2: reviewableAccepted, 3: awaiting}
	}

	// Clean single run
	clean := &provisionBoard{videos: mkVideos(), rows: make(map[int64]*model.HostStatus)}
	clean.provisionRows(3)
	clean.seed(1)

	// Run that failed between steps and was retried from the start
	retried := &provisionBoard{videos: mkVideos(), rows: make(map[int64]*model.HostStatus)}
	retried.provisionRows(3)
	// simulated crash: seed never ran; full retry follows
	retried.provisionRows(3)
	retried.seed(1)
	retried.seed(1)

	for id := range clean.videos {
		c, r := clean.rows[id], retried.rows[id]
		if (c == nil) != (r == nil) || (c != nil && *c != *r) {
			t.Errorf("video %d: retried state %v differs from clean state %v", id, r, c)
		}
	}

	// Spec scenario: host 3 pending where host 1 is pending, null where
	// host 1 holds a judgment.
	if clean.rows[1] == nil || *clean.rows[1] != model.StatusPending {
		t.Errorf("video 1: seeded %v, want pending", clean.rows[1])
	}
	if clean.rows[2] != nil {
		t.Errorf("video 2: seeded %v, want null (accepted is not inherited)", *clean.rows[2])
	}
	if clean.rows[3] != nil {
		t.Errorf("video 3: seeded %v, want null (awaiting triage)", *clean.rows[3])
	}
}
