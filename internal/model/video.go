package model

import "time"

// VideoType classifies where a topic was sourced from.
type VideoType string

const (
	VideoTypeTrending VideoType = "trending"
	VideoTypeGeneral  VideoType = "general"
)

// ValidVideoTypes are the allowed video type values.
var ValidVideoTypes = map[VideoType]bool{
	VideoTypeTrending: true,
	VideoTypeGeneral:  true,
}

// Rating bounds. -1 = awaiting triage, 0 = trashed, 1..3 = open for review.
const (
	RatingPending = -1
	RatingTrash   = 0
	RatingMax     = 3
)

// Gate is the system-wide triage state derived from the relevance rating.
type Gate string

const (
	GateRelevance  Gate = "relevance"
	GateTrash      Gate = "trash"
	GateReviewable Gate = "reviewable"
)

// GateForRating maps a relevance rating onto its gate.
// Callers must validate the rating first.
func GateForRating(rating int) Gate {
	switch {
	case rating <= RatingPending:
		return GateRelevance
	case rating == RatingTrash:
		return GateTrash
	default:
		return GateReviewable
	}
}

// ValidRating reports whether a relevance rating is in range.
func ValidRating(rating int) bool {
	return rating >= RatingPending && rating <= RatingMax
}

// Video represents a submitted video topic in the database.
type Video struct {
	VideoID       int64     `json:"videoId"`
	PersonID      *int64    `json:"personId,omitempty"`
	URL           string    `json:"url"`
	CanonicalCode *string   `json:"canonicalCode,omitempty"`
	Type          VideoType `json:"type"`
	LikesCount    int       `json:"likesCount"`
	Pitch         *string   `json:"pitch,omitempty"`
	Rating        int       `json:"rating"`
	Score         *int64    `json:"score,omitempty"`
	TakenBy       int       `json:"takenBy"`
	SubmittedAt   time.Time `json:"submittedAt"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// Gate returns the triage gate the video currently sits in.
func (v *Video) Gate() Gate {
	return GateForRating(v.Rating)
}

// SubmitRequest is the API request body for submitting a video topic.
type SubmitRequest struct {
	PersonID int64  `json:"personId"`
	URL      string `json:"url"`
	Type     string `json:"type"`
	Likes    int    `json:"likes"`
	Pitch    string `json:"pitch,omitempty"`
}

// SubmitResponse is the API response after a successful submission.
type SubmitResponse struct {
	VideoID       int64   `json:"videoId"`
	CanonicalCode *string `json:"canonicalCode,omitempty"`
}

// RelevanceRequest is the API request body for setting the relevance rating.
type RelevanceRequest struct {
	Rating int `json:"rating"`
}

// LikesRequest is the API request body for updating the likes count.
type LikesRequest struct {
	Likes int `json:"likes"`
}

// VideoResponse is the API response for video lookups, including
// every active host's review sub-state.
type VideoResponse struct {
	VideoID     int64                 `json:"videoId"`
	URL         string                `json:"url"`
	Type        VideoType             `json:"type"`
	LikesCount  int                   `json:"likesCount"`
	Pitch       *string               `json:"pitch,omitempty"`
	Gate        Gate                  `json:"gate"`
	Rating      int                   `json:"rating"`
	Score       *int64                `json:"score,omitempty"`
	TakenBy     int                   `json:"takenBy"`
	Hosts       map[int64]*HostDetail `json:"hosts"`
	LastUpdated time.Time             `json:"lastUpdated"`
}

// HostDetail holds one host's sub-state for a single video.
type HostDetail struct {
	Status      *HostStatus `json:"status"`
	Note        string      `json:"note,omitempty"`
	ExternalID  *string     `json:"externalId,omitempty"`
	LastChanged time.Time   `json:"lastChanged"`
}

// StatsResponse is the API response for global statistics.
type StatsResponse struct {
	TotalVideos int           `json:"totalVideos"`
	ByGate      map[Gate]int  `json:"byGate"`
	ActiveHosts int           `json:"activeHosts"`
	Workload    map[int64]int `json:"workload"` // hostId -> accepted+assigned count
}
