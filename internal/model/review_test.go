package model

import "testing"

func ptr(s HostStatus) *HostStatus { return &s }

func TestCanTransition_AllowedEdges(t *testing.T) {
	cases := []struct {
		name string
		from *HostStatus
		to   HostStatus
	}{
		{"unset to pending", nil, StatusPending},
		{"pending to accepted", ptr(StatusPending), StatusAccepted},
		{"pending to rejected", ptr(StatusPending), StatusRejected},
		{"accepted to assigned", ptr(StatusAccepted), StatusAssigned},
		{"accepted reverts to pending", ptr(StatusAccepted), StatusPending},
		{"rejected reverts to pending", ptr(StatusRejected), StatusPending},
		{"assigned reverts to accepted", ptr(StatusAssigned), StatusAccepted},
	}

	for _, tc := range cases {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("%s: expected transition to be allowed", tc.name)
		}
	}
}

func TestCanTransition_ForbiddenEdges(t *testing.T) {
	cases := []struct {
		name string
		from *HostStatus
		to   HostStatus
	}{
		{"unset straight to accepted", nil, StatusAccepted},
		{"unset straight to rejected", nil, StatusRejected},
		{"unset straight to assigned", nil, StatusAssigned},
		{"pending straight to assigned", ptr(StatusPending), StatusAssigned},
		{"rejected to accepted", ptr(StatusRejected), StatusAccepted},
		{"rejected to assigned", ptr(StatusRejected), StatusAssigned},
		{"assigned to rejected", ptr(StatusAssigned), StatusRejected},
		{"assigned straight to pending", ptr(StatusAssigned), StatusPending},
		{"accepted to rejected", ptr(StatusAccepted), StatusRejected},
		{"pending to pending", ptr(StatusPending), StatusPending},
		{"accepted to accepted", ptr(StatusAccepted), StatusAccepted},
	}

	for _, tc := range cases {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("%s: expected transition to be rejected", tc.name)
		}
	}
}

func TestGateForRating(t *testing.T) {
	cases := []struct {
		rating int
		want   Gate
	}{
		{-1, GateRelevance},
		{0, GateTrash},
		{1, GateReviewable},
		{2, GateReviewable},
		{3, GateReviewable},
	}

	for _, tc := range cases {
		if got := GateForRating(tc.rating); got != tc.want {
			t.Errorf("GateForRating(%d) = %s, want %s", tc.rating, got, tc.want)
		}
	}
}

func TestValidRating(t *testing.T) {
	for _, r := range []int{-1, 0, 1, 2, 3} {
		if !ValidRating(r) {
			t.Errorf("ValidRating(%d) = false, want true", r)
		}
	}
	for _, r := range []int{-2, 4, 5, 100, -100} {
		if ValidRating(r) {
			t.Errorf("ValidRating(%d) = true, want false", r)
		}
	}
}
