package handler

import (
	"strings"
	"testing"

	"github.com/ShridharSLS/Reaction-sub000/internal/middleware"
	"github.com/ShridharSLS/Reaction-sub000/internal/model"
)

func TestValidateTransition_InvalidRequestsReturnCode(t *testing.T) {
	long := strings.Repeat("n", middleware.MaxNoteLen+1)
	longExt := strings.Repeat("x", middleware.MaxExternalIDLen+1)

	cases := []struct {
		name string
		req  model.TransitionRequest
		code string
	}{
		{"missing ids", model.TransitionRequest{Status: "pending"}, "MISSING_FIELDS"},
		{"zero host id", model.TransitionRequest{VideoID: 1, Status: "pending"}, "MISSING_FIELDS"},
		{"bogus status", model.TransitionRequest{VideoID: 1, HostID: 1, Status: "bogus"}, "INVALID_STATUS"},
		{"empty status", model.TransitionRequest{VideoID: 1, HostID: 1}, "INVALID_STATUS"},
		{"oversized note", model.TransitionRequest{VideoID: 1, HostID: 1, Status: "accepted", Note: &long}, "INVALID_FIELD"},
		{"oversized external id", model.TransitionRequest{VideoID: 1, HostID: 1, Status: "assigned", ExternalID: longExt}, "INVALID_FIELD"},
	}

	for _, tc := range cases {
		code, msg := validateTransition(&tc.req)
		if code != tc.code {
			t.Errorf("%s: code = %q, want %q", tc.name, code, tc.code)
		}
		if code != "" && msg == "" {
			t.Errorf("%s: missing message for code %q", tc.name, code)
		}
	}
}

func TestValidateTransition_NormalizesValidRequest(t *testing.T) {
	note := "  check audio levels  "
	req := model.TransitionRequest{
		VideoID:    1,
		HostID:     2,
		Status:     "assigned",
		Note:       &note,
		ExternalID: " EXT-1 ",
	}

	code, msg := validateTransition(&req)
	if code != "" {
		t.Fatalf("unexpected validation failure: %s %s", code, msg)
	}
	if req.Note == nil || *req.Note != "check audio levels" {
		t.Errorf("note = %v, want trimmed note", req.Note)
	}
	if req.ExternalID != "EXT-1" {
		t.Errorf("externalID = %q, want EXT-1", req.ExternalID)
	}
}
