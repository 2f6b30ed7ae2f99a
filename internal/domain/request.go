package domain

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Senders recognized in a conversation turn.
const (
	SenderScammer = "scammer"
	SenderBot     = "bot"
)

// ConversationTurn is one message exchange unit. Timestamps are
// epoch milliseconds and are informational only; turns are never
// re-sorted by them.
type ConversationTurn struct {
	Sender    string `json:"sender" validate:"required,oneof=scammer bot"`
	Text      string `json:"text" validate:"required"`
	Timestamp int64  `json:"timestamp" validate:"required"`
}

// ConversationMetadata steers the tone and language of the reply. It is
// passed through into prompt construction unmodified.
type ConversationMetadata struct {
	Channel  string `json:"channel" validate:"required"`
	Language string `json:"language" validate:"required"`
	Locale   string `json:"locale" validate:"required"`
}

// HoneypotRequest is the inbound payload for one conversation turn.
// SessionID is an opaque correlation token round-tripped by the caller;
// it is not a key into any server-side store. ConversationHistory is
// chronological, oldest first; an absent array is treated as empty.
type HoneypotRequest struct {
	SessionID           string               `json:"sessionId" validate:"required"`
	Message             ConversationTurn     `json:"message" validate:"required"`
	ConversationHistory []ConversationTurn   `json:"conversationHistory" validate:"omitempty,dive"`
	Metadata            ConversationMetadata `json:"metadata" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report violations by JSON field name so clients see the path they sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateRequest checks the payload shape and reports the first
// violation found as a dotted JSON path, e.g. "metadata.locale is
// required". It performs no normalization of text content.
func ValidateRequest(r *HoneypotRequest) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return fmt.Errorf("domain: validate request: %w", err)
	}
	return firstViolation(errs[0])
}

func firstViolation(fe validator.FieldError) error {
	path := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", path)
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", path, fe.Param())
	default:
		return fmt.Errorf("%s is invalid", path)
	}
}

// fieldPath strips the root struct name from the validator namespace,
// leaving the dotted JSON path ("HoneypotRequest.message.text" becomes
// "message.text").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
