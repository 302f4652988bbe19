package middleware

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxURLLen        = 2048 // videos.url TEXT, bounded at the edge
	MaxPitchLen      = 2000 // videos.pitch TEXT, bounded at the edge
	MaxNoteLen       = 2000 // host_reviews.note TEXT, bounded at the edge
	MaxExternalIDLen = 64   // host_reviews.external_id VARCHAR(64)
	MaxNameLen       = 128  // hosts.display_name VARCHAR(128)
	MaxBulkItems     = 100
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateURL checks that a submitted URL is well-formed http(s) and within
// limits.
func ValidateURL(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "url is required"
	}
	if len(raw) > MaxURLLen {
		return "", "url must be at most 2048 characters"
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", "url must be a valid http(s) URL"
	}
	return raw, ""
}

// ValidateID parses a positive integer path parameter.
func ValidateID(raw string) (int64, string) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, "id must be a positive integer"
	}
	return id, ""
}

// ValidatePitch trims and bounds the optional pitch text.
func ValidatePitch(pitch string) (string, string) {
	pitch = strings.TrimSpace(pitch)
	if len(pitch) > MaxPitchLen {
		return "", "pitch must be at most 2000 characters"
	}
	return pitch, ""
}

// ValidateNote bounds the optional review note text.
func ValidateNote(note *string) (*string, string) {
	if note == nil {
		return nil, ""
	}
	trimmed := strings.TrimSpace(*note)
	if len(trimmed) > MaxNoteLen {
		return nil, "note must be at most 2000 characters"
	}
	return &trimmed, ""
}

// ValidateExternalID trims and bounds an external identifier.
func ValidateExternalID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if len(id) > MaxExternalIDLen {
		return "", "externalId must be at most 64 characters"
	}
	return id, ""
}

// ValidateName checks a host display name.
func ValidateName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "name is required"
	}
	if len(name) > MaxNameLen {
		return "", "name must be at most 128 characters"
	}
	return name, ""
}
