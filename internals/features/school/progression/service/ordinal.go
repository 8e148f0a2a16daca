package service

import (
	"strconv"
	"strings"

	instModel "academico_backend/internals/features/institutions/model"
)

// Placement-label parsing is a best-effort fallback behind the structured
// class-level link. The parser is pure and total: dirty historical labels
// yield ok=false, never an error, so progression logic stays fail-safe.

// secondary markers follow a 1-2 digit ordinal ("10th Grade", "7ª classe").
var secondaryMarkers = []string{"grade", "class", "classe", "serie", "série"}

// higher markers follow a single digit 1-6 ("2nd Year", "3º ano").
var higherMarkers = []string{"year", "ano"}

const maxHigherYear = 6

// ParsePlacementOrdinal extracts the ordinal out of a free-text placement
// label under the given academic model.
func ParsePlacementOrdinal(label string, model instModel.AcademicModel) (int, bool) {
	switch model {
	case instModel.AcademicModelSecondary:
		return parseLeadingOrdinal(label, 2, secondaryMarkers)
	case instModel.AcademicModelHigher:
		n, ok := parseLeadingOrdinal(label, 1, higherMarkers)
		if !ok || n < 1 || n > maxHigherYear {
			return 0, false
		}
		return n, true
	default:
		// unknown model: never invent an ordering
		return 0, false
	}
}

// parseLeadingOrdinal scans a leading number of at most maxDigits digits,
// skips an ordinal suffix, and requires one of the marker words in the
// remainder.
func parseLeadingOrdinal(label string, maxDigits int, markers []string) (int, bool) {
	s := strings.TrimSpace(strings.ToLower(label))
	if s == "" {
		return 0, false
	}

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i > maxDigits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:i])
	if err != nil || n == 0 {
		return 0, false
	}

	rest := strings.TrimSpace(trimOrdinalSuffix(s[i:]))
	for _, m := range markers {
		if strings.Contains(rest, m) {
			return n, true
		}
	}
	return 0, false
}

// trimOrdinalSuffix drops "st"/"nd"/"rd"/"th" and the gendered ordinal
// signs that appear in historical Portuguese labels.
func trimOrdinalSuffix(s string) string {
	s = strings.TrimLeft(s, "ªº°")
	for _, suf := range []string{"st ", "nd ", "rd ", "th "} {
		if strings.HasPrefix(s, suf) {
			return s[len(suf)-1:]
		}
	}
	return s
}

// FormatYearLabel renders a higher-model year number back into the
// canonical English label shape ("3rd Year").
func FormatYearLabel(n int) string {
	suffix := "th"
	switch n {
	case 1:
		suffix = "st"
	case 2:
		suffix = "nd"
	case 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix + " Year"
}
