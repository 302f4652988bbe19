package service

import "github.com/ShridharSLS/Reaction-sub000/internal/model"

// Score derives a video's score from its two inputs:
//
//	score = likes * rating   when rating >= 0
//	score = undefined (nil)  while the video awaits triage
//
// The repository recomputes the persisted column with the same rule inside
// every transaction that changes either input; this pure form is the single
// place the rule is written down in Go and what the tests exercise.
func Score(likes, rating int) *int64 {
	if rating < 0 {
		return nil
	}
	s := int64(likes) * int64(rating)
	return &s
}

// ScoreDefined reports whether a rating makes the score defined.
func ScoreDefined(rating int) bool {
	return model.ValidRating(rating) && rating >= 0
}
