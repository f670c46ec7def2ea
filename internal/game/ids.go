package game

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeID folds a caller-supplied identifier into the canonical
// lowercase snake form used by every definition table.
func normalizeID(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// lookup finds id in a table of identifiers.
func lookup(ids []string, id string) (int, bool) {
	id = normalizeID(id)
	for i, candidate := range ids {
		if candidate == id {
			return i, true
		}
	}
	return 0, false
}

// LegacyName converts a CamelCase or Title Case name ("LumberMill",
// "First Farm") into an identifier ("lumber_mill", "first_farm").
func LegacyName(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == ' ' || r == '-':
			if b.Len() > 0 {
				b.WriteByte('_')
			}
			prevLower = false
			continue
		case r >= 'A' && r <= 'Z':
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			prevLower = false
			continue
		}
		b.WriteRune(r)
		prevLower = r >= 'a' && r <= 'z'
	}
	return normalizeID(b.String())
}
