package httpserver

import (
	"regexp"
)

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of validating a field.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

var validConversationID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateConversationID checks the caller-supplied conversation id. IDs are
// client-generated opaque tokens, so only shape is enforced.
func ValidateConversationID(id string) ValidationResult {
	if id == "" {
		return ValidationResult{
			Valid: false,
			Errors: []ValidationError{
				{Field: "conversation_id", Code: "REQUIRED", Message: "Conversation ID is required"},
			},
		}
	}
	if len(id) > 100 {
		return ValidationResult{
			Valid: false,
			Errors: []ValidationError{
				{Field: "conversation_id", Code: "TOO_LONG", Message: "Conversation ID is too long (max 100 characters)"},
			},
		}
	}
	if !validConversationID.MatchString(id) {
		return ValidationResult{
			Valid: false,
			Errors: []ValidationError{
				{Field: "conversation_id", Code: "INVALID_FORMAT", Message: "Conversation ID contains invalid characters"},
			},
		}
	}
	return ValidationResult{Valid: true}
}

var conversationIDStrip = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeConversationID drops characters outside the id alphabet and caps
// the length. Redis keys are derived from the result.
func SanitizeConversationID(id string) string {
	id = conversationIDStrip.ReplaceAllString(id, "")
	if len(id) > 100 {
		id = id[:100]
	}
	return id
}
