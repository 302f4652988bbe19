package middleware

import (
	"strings"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid https", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", false},
		{"valid http", "http://example.com/video", false},
		{"trims whitespace", "  https://youtu.be/dQw4w9WgXcQ  ", false},
		{"empty", "", true},
		{"no scheme", "www.youtube.com/watch?v=abc", true},
		{"ftp scheme", "ftp://example.com/file", true},
		{"scheme only", "https://", true},
		{"too long", "https://example.com/" + strings.Repeat("a", 2048), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errMsg := ValidateURL(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  int64
		wantErr bool
	}{
		{"valid", "42", 42, false},
		{"trims whitespace", " 7 ", 7, false},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, true},
		{"empty", "", 0, true},
		{"non-numeric", "abc", 0, true},
		{"sql injection", "1; DROP--", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %d, want %d", got, tt.wantID)
			}
		})
	}
}

func TestValidateNote(t *testing.T) {
	long := strings.Repeat("n", MaxNoteLen+1)

	if got, errMsg := ValidateNote(nil); got != nil || errMsg != "" {
		t.Errorf("nil note: got %v, %q", got, errMsg)
	}

	note := "  follow up next week  "
	got, errMsg := ValidateNote(&note)
	if errMsg != "" {
		t.Fatalf("unexpected error: %s", errMsg)
	}
	if got == nil || *got != "follow up next week" {
		t.Errorf("got %v, want trimmed note", got)
	}

	if _, errMsg := ValidateNote(&long); errMsg == "" {
		t.Error("expected error for oversized note")
	}
}

func TestValidateExternalID(t *testing.T) {
	if got, errMsg := ValidateExternalID("  EXT-42  "); errMsg != "" || got != "EXT-42" {
		t.Errorf("got %q, %q; want EXT-42 with no error", got, errMsg)
	}
	if _, errMsg := ValidateExternalID(strings.Repeat("x", MaxExternalIDLen+1)); errMsg == "" {
		t.Error("expected error for oversized external id")
	}
}

func TestValidateName(t *testing.T) {
	if _, errMsg := ValidateName(""); errMsg == "" {
		t.Error("expected error for empty name")
	}
	if _, errMsg := ValidateName(strings.Repeat("a", MaxNameLen+1)); errMsg == "" {
		t.Error("expected error for oversized name")
	}
	if got, errMsg := ValidateName("  Shridhar  "); errMsg != "" || got != "Shridhar" {
		t.Errorf("got %q, %q; want trimmed name with no error", got, errMsg)
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/api/videos/123", "/api/videos/:videoId"},
		{"/api/videos/123/history", "/api/videos/:videoId/history"},
		{"/api/hosts/2/videos", "/api/hosts/:hostId/videos"},
		{"/api/stats", "/api/stats"},
	}
	for _, tt := range tests {
		if got := sanitizePath(tt.in); got != tt.want {
			t.Errorf("sanitizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
