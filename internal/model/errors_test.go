package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestProvisioningError_CarriesHostID(t *testing.T) {
	cause := errors.New("insert failed")
	err := fmt.Errorf("register host: %w", &ProvisioningError{
		HostID: 4,
		Step:   "provision-rows",
		Err:    cause,
	})

	// A retry client needs the allocated id back out of the error chain.
	var prov *ProvisioningError
	if !errors.As(err, &prov) {
		t.Fatal("ProvisioningError not found in chain")
	}
	if prov.HostID != 4 {
		t.Errorf("HostID = %d, want 4", prov.HostID)
	}
	if prov.Step != "provision-rows" {
		t.Errorf("Step = %q, want provision-rows", prov.Step)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
}

func TestIllegalTransitionError_Message(t *testing.T) {
	accepted := StatusAccepted
	err := &IllegalTransitionError{HostID: 2, From: &accepted, To: StatusRejected}
	want := "host 2: illegal transition accepted -> rejected"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	unset := &IllegalTransitionError{HostID: 1, To: StatusAssigned}
	if got := unset.Error(); got != "host 1: illegal transition unset -> assigned" {
		t.Errorf("Error() = %q", got)
	}
}
