package usecase

import "strings"

// normalizeReply shapes raw completion text for the response envelope:
// surrounding whitespace and wrapping quotes are stripped, as is a
// leading "Me:" speaker tag some models emit when fed tagged history.
// Returns "" when nothing usable remains; the caller treats that as an
// upstream failure rather than fabricating a reply.
func normalizeReply(raw string) string {
	reply := strings.TrimSpace(raw)
	reply = strings.Trim(reply, `"`)
	reply = strings.TrimPrefix(reply, "Me:")
	return strings.TrimSpace(reply)
}
