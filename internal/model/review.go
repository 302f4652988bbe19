package model

import "time"

// HostStatus is one host's review sub-state for a single video.
// A nil *HostStatus means the sub-state is unset (video not open for review,
// or host provisioned after triage without inheriting a judgment).
type HostStatus string

const (
	StatusPending  HostStatus = "pending"
	StatusAccepted HostStatus = "accepted"
	StatusRejected HostStatus = "rejected"
	StatusAssigned HostStatus = "assigned"
)

// ValidHostStatuses are the statuses a transition may target.
var ValidHostStatuses = map[HostStatus]bool{
	StatusPending:  true,
	StatusAccepted: true,
	StatusRejected: true,
	StatusAssigned: true,
}

// TakenStatuses are the sub-states counted by the taken-by aggregate.
var TakenStatuses = map[HostStatus]bool{
	StatusAccepted: true,
	StatusAssigned: true,
}

// transitions is the per-host sub-state graph. Keys are the current status
// ("" for unset), values the statuses reachable from it.
var transitions = map[HostStatus]map[HostStatus]bool{
	"":             {StatusPending: true},
	StatusPending:  {StatusAccepted: true, StatusRejected: true},
	StatusAccepted: {StatusAssigned: true, StatusPending: true},
	StatusRejected: {StatusPending: true},
	StatusAssigned: {StatusAccepted: true},
}

// CanTransition reports whether a host may move from one sub-state to another.
// from is nil when the sub-state is unset.
func CanTransition(from *HostStatus, to HostStatus) bool {
	var cur HostStatus
	if from != nil {
		cur = *from
	}
	return transitions[cur][to]
}

// HostReview is one (video, host) sub-state row.
type HostReview struct {
	VideoID         int64       `json:"videoId"`
	HostID          int64       `json:"hostId"`
	Status          *HostStatus `json:"status"`
	Note            string      `json:"note,omitempty"`
	ExternalID      *string     `json:"externalId,omitempty"`
	StatusChangedAt time.Time   `json:"statusChangedAt"`
}

// TransitionRequest is the API request body for a single host transition.
type TransitionRequest struct {
	VideoID    int64   `json:"videoId"`
	HostID     int64   `json:"hostId"`
	Status     string  `json:"status"`
	Note       *string `json:"note,omitempty"`
	ExternalID string  `json:"externalId,omitempty"`
}

// TransitionResponse is the API response after a successful transition.
type TransitionResponse struct {
	Success   bool       `json:"success"`
	Status    HostStatus `json:"status"`
	TakenBy   int        `json:"takenBy"`
	Timestamp time.Time  `json:"timestamp"`
}

// BulkTransitionRequest is the API request body for a batch of transitions.
type BulkTransitionRequest struct {
	Items []TransitionRequest `json:"items"`
}

// BulkItemResult is the per-item outcome of a bulk transition. One item's
// failure never aborts its siblings.
type BulkItemResult struct {
	VideoID int64  `json:"videoId"`
	HostID  int64  `json:"hostId"`
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// BulkTransitionResponse aggregates the per-item results.
type BulkTransitionResponse struct {
	Results   []BulkItemResult `json:"results"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
}

// HistoryEntry is one host's current sub-state and last transition time,
// as returned by the status history read path.
type HistoryEntry struct {
	HostID      int64       `json:"hostId"`
	HostName    string      `json:"hostName"`
	Status      *HostStatus `json:"status"`
	Note        string      `json:"note,omitempty"`
	ExternalID  *string     `json:"externalId,omitempty"`
	LastChanged time.Time   `json:"lastChanged"`
}
