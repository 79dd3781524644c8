// Package severity maps crime report classifications to a 1..10 severity.
package severity

import (
	"sort"
	"strconv"
)

// Severity is a level in [1,10] or the explicit Unknown variant.
type Severity struct {
	level int
}

// Unknown is the severity of classifications that cannot be rated.
var Unknown = Severity{}

func (s Severity) IsUnknown() bool { return s.level == 0 }

// Level returns the numeric level; ok is false for Unknown.
func (s Severity) Level() (level int, ok bool) {
	return s.level, s.level != 0
}

// String renders the level, or an empty string for Unknown so CSV cells stay blank.
func (s Severity) String() string {
	if s.IsUnknown() {
		return ""
	}
	return strconv.Itoa(s.level)
}

// Lookup resolves a classification. listed reports whether the
// classification is in the table at all; unlisted classifications resolve
// to Unknown.
func Lookup(classification string) (s Severity, listed bool) {
	if lvl, ok := levels[classification]; ok {
		return Severity{level: lvl}, true
	}
	if _, ok := unknowns[classification]; ok {
		return Unknown, true
	}
	return Unknown, false
}

// Classifications lists every classification in the table, sorted.
func Classifications() []string {
	out := make([]string, 0, len(levels)+len(unknowns))
	for k := range levels {
		out = append(out, k)
	}
	for k := range unknowns {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
