package service

import "testing"

func TestPersonRef(t *testing.T) {
	// Omitted personId decodes as 0 and must insert as NULL, not as a
	// dangling reference.
	if got := personRef(0); got != nil {
		t.Errorf("personRef(0) = %d, want nil", *got)
	}
	if got := personRef(-3); got != nil {
		t.Errorf("personRef(-3) = %d, want nil", *got)
	}

	got := personRef(7)
	if got == nil || *got != 7 {
		t.Errorf("personRef(7) = %v, want 7", got)
	}
}
