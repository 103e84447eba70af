package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidIndexNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"knec slash year", "12345678/2023", true},
		{"twelve digit serial", "123456789012/2019", true},
		{"centre coded", "123/4567/2021", true},
		{"short centre code", "12/345/2020", true},
		{"prefixed serial", "KCS1234567", true},
		{"single letter prefix", "A123456", true},
		{"lowercase normalised", "kcs1234567", true},
		{"surrounding whitespace", "  12345678/2023  ", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"too few digits", "1234567/2023", false},
		{"missing year part", "12345678/", false},
		{"too many prefix letters", "ABCD123456", false},
		{"plain words", "not an index", false},
		{"year too short", "12345678/23", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidIndexNumber(tt.input))
		})
	}
}

func TestIsValidGrade(t *testing.T) {
	for _, g := range []string{"A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "D-", "E"} {
		assert.True(t, IsValidGrade(g), "grade %s should be valid", g)
	}

	assert.True(t, IsValidGrade(" b+ "), "grades are trimmed and uppercased")
	assert.False(t, IsValidGrade(""))
	assert.False(t, IsValidGrade("F"))
	assert.False(t, IsValidGrade("A+"))
	assert.False(t, IsValidGrade("E-"))
}

func TestGradeToPoints(t *testing.T) {
	pts, ok := GradeToPoints("A")
	assert.True(t, ok)
	assert.Equal(t, 12, pts)

	pts, ok = GradeToPoints("e")
	assert.True(t, ok)
	assert.Equal(t, 1, pts)

	pts, ok = GradeToPoints("B-")
	assert.True(t, ok)
	assert.Equal(t, 8, pts)

	_, ok = GradeToPoints("X")
	assert.False(t, ok)
}

func TestParseDateOfBirth(t *testing.T) {
	year := time.Now().Year()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"slash format", fmt.Sprintf("15/06/%d", year-20), true},
		{"iso format", fmt.Sprintf("%d-06-15", year-20), true},
		{"dash format", fmt.Sprintf("15-06-%d", year-20), true},
		{"age exactly 15", fmt.Sprintf("01/01/%d", year-15), true},
		{"age exactly 40", fmt.Sprintf("01/01/%d", year-40), true},
		{"age 14", fmt.Sprintf("01/01/%d", year-14), false},
		{"age 41", fmt.Sprintf("01/01/%d", year-41), false},
		{"future date", fmt.Sprintf("01/01/%d", year+1), false},
		{"empty", "", false},
		{"garbage", "not-a-date", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := ParseDateOfBirth(tt.input)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.False(t, parsed.IsZero())
			} else {
				assert.True(t, parsed.IsZero())
			}
		})
	}
}

func TestParseDateOfBirthFormatOrder(t *testing.T) {
	year := time.Now().Year()

	// DD/MM/YYYY is tried first, so day and month are not swapped.
	parsed, ok := ParseDateOfBirth(fmt.Sprintf("05/03/%d", year-25))
	assert.True(t, ok)
	assert.Equal(t, 5, parsed.Day())
	assert.Equal(t, time.March, parsed.Month())
}
