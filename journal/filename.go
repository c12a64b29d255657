package journal

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	timestampLayout  = "20060102-150405"
	sessionPrefixLen = 8
	fallbackName     = "machine"
)

// Filename returns the canonical file name for a journal: the session
// start time, the machine name sanitized for filesystem use, and a
// session prefix.
func Filename(j Journal) string {
	machine := fallbackName
	if len(j.Entries) > 0 && j.Entries[0].Machine != "" {
		machine = j.Entries[0].Machine
	}

	session := j.Session
	if len(session) > sessionPrefixLen {
		session = session[:sessionPrefixLen]
	}

	parts := []string{
		j.StartedAt.UTC().Format(timestampLayout),
		SanitizeName(machine),
	}

	if session != "" {
		parts = append(parts, session)
	}

	return strings.Join(parts, "-") + ".yaml"
}

// SanitizeName reduces a name to lowercase ASCII letters, digits, and
// single hyphens, suitable for a file name component. Accented letters
// are decomposed and their marks dropped, anything else collapses to a
// hyphen. An empty result falls back to "machine".
func SanitizeName(name string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		stripped = name
	}

	var sb strings.Builder

	lastHyphen := true // suppress leading hyphens

	for _, r := range strings.ToLower(stripped) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)

			lastHyphen = false
		case lastHyphen:
			// collapse runs
		default:
			sb.WriteByte('-')

			lastHyphen = true
		}
	}

	out := strings.TrimRight(sb.String(), "-")
	if out == "" {
		return fallbackName
	}

	return out
}
