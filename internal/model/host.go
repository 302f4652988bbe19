package model

import "time"

// FieldBindings are the three legacy column names a host's per-video data is
// exported under. They are recorded at registration and never change.
type FieldBindings struct {
	Status     string `json:"status"`
	Note       string `json:"note"`
	ExternalID string `json:"externalId"`
}

// Names returns the three bound field names in a fixed order.
func (b FieldBindings) Names() []string {
	return []string{b.Status, b.Note, b.ExternalID}
}

// Host represents a reviewer in the registry. Hosts are deactivated,
// never deleted, so historical per-video data stays addressable.
type Host struct {
	HostID    int64         `json:"hostId"`
	Name      string        `json:"name"`
	Bindings  FieldBindings `json:"bindings"`
	Active    bool          `json:"active"`
	CreatedAt time.Time     `json:"createdAt"`
}

// RegisterHostRequest is the API request body for registering a new host.
// HostID is optional: 0 lets the registry assign the next id; retries after a
// partial provisioning failure pass the assigned id back so the idempotent
// steps converge. ReferenceHostID selects whose pending state seeds the new
// host (0 = lowest-id active host).
type RegisterHostRequest struct {
	HostID          int64         `json:"hostId,omitempty"`
	Name            string        `json:"name"`
	Bindings        FieldBindings `json:"bindings"`
	ReferenceHostID int64         `json:"referenceHostId,omitempty"`
}

// RegisterHostResponse is the API response after a successful registration.
type RegisterHostResponse struct {
	HostID int64 `json:"hostId"`
	Seeded int64 `json:"seeded"` // reviewable videos seeded to pending
}
