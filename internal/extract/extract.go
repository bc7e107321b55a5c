// Package extract recovers a structured payload substring from free-text
// model output.
//
// Models are instructed to return bare JSON, but some wrap the payload in
// markdown code fences anyway. Payload applies a best-effort heuristic, not a
// markdown parser: a language-tagged fence wins, then the first fence pair,
// otherwise the trimmed input is returned unchanged. Only the first fenced
// block is used; anything after its closing fence is discarded, matching the
// single-JSON-object contract.
package extract

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const fence = "```"

// ErrUnterminatedFence indicates the text opens a code fence that never
// closes. Surfaced as a distinct failure mode rather than guessing at the
// payload boundary.
var ErrUnterminatedFence = errors.New("unterminated code fence")

// Payload extracts the payload substring from raw model output.
//
// Payload is idempotent for inputs with at most one fenced block:
// Payload(Payload(x)) == Payload(x).
func Payload(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	// Language-tagged fence takes priority, e.g. ```json ... ```.
	if idx := jsonFence(s); idx != -1 {
		return between(s[idx:])
	}

	if idx := strings.Index(s, fence); idx != -1 {
		rest := s[idx+len(fence):]
		// Drop any other language tag on the opening fence line.
		if nl := strings.Index(rest, "\n"); nl != -1 && isFenceTag(rest[:nl]) {
			rest = rest[nl+1:]
		}
		return between(rest)
	}

	return s, nil
}

// jsonFence returns the offset just past an opening ```json tag, or -1.
// The tag must end at the tag boundary, so ```json5 and ```jsonc are left
// for the generic fence branch.
func jsonFence(s string) int {
	const tag = fence + "json"
	off := 0
	for {
		i := strings.Index(s[off:], tag)
		if i == -1 {
			return -1
		}
		end := off + i + len(tag)
		if end == len(s) || !isTagRune(rune(s[end])) {
			return end
		}
		off = end
	}
}

// between returns the content up to the closing fence.
func between(s string) (string, error) {
	end := strings.Index(s, fence)
	if end == -1 {
		return "", ErrUnterminatedFence
	}
	return strings.TrimSpace(s[:end]), nil
}

// isFenceTag reports whether the remainder of an opening fence line looks
// like a language tag rather than payload content.
func isFenceTag(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	for _, r := range s {
		if !isTagRune(r) {
			return false
		}
	}
	return true
}

func isTagRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Truncate shortens s to at most n bytes for diagnostics, without splitting
// a multi-byte rune at the cut.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
