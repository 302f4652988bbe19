package service

import "testing"

func TestScore_UndefinedWhileAwaitingTriage(t *testing.T) {
	if s := Score(500, -1); s != nil {
		t.Errorf("Score(500, -1) = %d, want undefined", *s)
	}
}

func TestScore_DefinedRatings(t *testing.T) {
	cases := []struct {
		likes  int
		rating int
		want   int64
	}{
		{500, 2, 1000},
		{500, 0, 0}, // trashed: defined, zero
		{0, 3, 0},
		{1, 1, 1},
		{250, 3, 750},
	}

	for _, tc := range cases {
		s := Score(tc.likes, tc.rating)
		if s == nil {
			t.Errorf("Score(%d, %d) = undefined, want %d", tc.likes, tc.rating, tc.want)
			continue
		}
		if *s != tc.want {
			t.Errorf("Score(%d, %d) = %d, want %d", tc.likes, tc.rating, *s, tc.want)
		}
	}
}

func TestScore_LargeLikesNoOverflow(t *testing.T) {
	// int64 arithmetic even on 32-bit builds
	s := Score(2_000_000_000, 3)
	if s == nil || *s != 6_000_000_000 {
		t.Errorf("Score(2e9, 3) = %v, want 6000000000", s)
	}
}

func TestScoreDefined(t *testing.T) {
	cases := []struct {
		rating int
		want   bool
	}{
		{-1, false},
		{0, true},
		{1, true},
		{3, true},
		{4, false},
		{-2, false},
	}
	for _, tc := range cases {
		if got := ScoreDefined(tc.rating); got != tc.want {
			t.Errorf("ScoreDefined(%d) = %v, want %v", tc.rating, got, tc.want)
		}
	}
}
