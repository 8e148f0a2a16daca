package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	instModel "academico_backend/internals/features/institutions/model"
)

func TestParsePlacementOrdinal_Secondary(t *testing.T) {
	cases := []struct {
		label string
		want  int
		ok    bool
	}{
		{"10th Grade", 10, true},
		{"1st Grade", 1, true},
		{"3rd Class", 3, true},
		{"2ª Série", 2, true},
		{"7 serie", 7, true},
		{"Grade without number", 0, false},
		{"10th", 0, false},       // no marker
		{"10th Year", 0, false},  // wrong scheme's marker
		{"", 0, false},
		{"th Grade", 0, false},
		{"100th Grade", 0, false}, // beyond two digits
	}
	for _, tc := range cases {
		got, ok := ParsePlacementOrdinal(tc.label, instModel.AcademicModelSecondary)
		assert.Equal(t, tc.ok, ok, "label %q", tc.label)
		if tc.ok {
			assert.Equal(t, tc.want, got, "label %q", tc.label)
		}
	}
}

func TestParsePlacementOrdinal_Higher(t *testing.T) {
	cases := []struct {
		label string
		want  int
		ok    bool
	}{
		{"1st Year", 1, true},
		{"2nd Year", 2, true},
		{"6th Year", 6, true},
		{"3º Ano", 3, true},
		{"7th Year", 0, false},  // past the cap
		{"2nd Grade", 0, false}, // wrong scheme's marker
		{"Year", 0, false},
		{"12th Year", 0, false}, // higher years are single digit
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParsePlacementOrdinal(tc.label, instModel.AcademicModelHigher)
		assert.Equal(t, tc.ok, ok, "label %q", tc.label)
		if tc.ok {
			assert.Equal(t, tc.want, got, "label %q", tc.label)
		}
	}
}

func TestFormatYearLabel(t *testing.T) {
	assert.Equal(t, "1st Year", FormatYearLabel(1))
	assert.Equal(t, "2nd Year", FormatYearLabel(2))
	assert.Equal(t, "3rd Year", FormatYearLabel(3))
	assert.Equal(t, "4th Year", FormatYearLabel(4))
	assert.Equal(t, "6th Year", FormatYearLabel(6))
}
