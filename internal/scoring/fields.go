package scoring

import (
	"regexp"
	"strings"
	"time"
)

// Accepted index-number shapes, matched after trimming and uppercasing:
// KNEC-style NNNNNNNNNN/YYYY, centre-coded NN/NNN/YYYY, and prefixed
// serials like KCS1234567.
var indexNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{8,12}/\d{4}$`),
	regexp.MustCompile(`^\d{2,4}/\d{3,5}/\d{4}$`),
	regexp.MustCompile(`^[A-Z]{1,3}\d{6,10}$`),
}

// KCSE 8-4-4 grade-to-points scale.
var gradePoints = map[string]int{
	"A": 12, "A-": 11,
	"B+": 10, "B": 9, "B-": 8,
	"C+": 7, "C": 6, "C-": 5,
	"D+": 4, "D": 3, "D-": 2,
	"E": 1,
}

// Core subjects every complete KCSE certificate carries at least one of.
var coreSubjectNames = []string{"english", "kiswahili", "mathematics", "math"}

// Date-of-birth layouts, tried in order.
var dobLayouts = []string{"02/01/2006", "2006-01-02", "02-01-2006"}

// Candidate age window considered plausible for a certificate holder.
const (
	minCandidateAge = 15
	maxCandidateAge = 40
)

// IsValidIndexNumber reports whether s matches one of the accepted
// index-number shapes. Empty input is invalid.
func IsValidIndexNumber(s string) bool {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return false
	}
	for _, p := range indexNumberPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// IsValidGrade reports whether g is a recognised KCSE grade.
func IsValidGrade(g string) bool {
	_, ok := gradePoints[strings.ToUpper(strings.TrimSpace(g))]
	return ok
}

// GradeToPoints maps a grade onto the 12-point scale. The boolean is false
// for unrecognised grades.
func GradeToPoints(g string) (int, bool) {
	pts, ok := gradePoints[strings.ToUpper(strings.TrimSpace(g))]
	return pts, ok
}

// ParseDateOfBirth parses s against the accepted layouts and reports
// whether the result is a plausible candidate date of birth: not in the
// future, and yielding an age (current year minus birth year) between 15
// and 40 inclusive. On failure the zero time and false are returned.
func ParseDateOfBirth(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	var dob time.Time
	parsed := false
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			dob = t
			parsed = true
			break
		}
	}
	if !parsed {
		return time.Time{}, false
	}

	now := time.Now()
	if dob.After(now) {
		return time.Time{}, false
	}

	age := now.Year() - dob.Year()
	if age < minCandidateAge || age > maxCandidateAge {
		return time.Time{}, false
	}

	return dob, true
}
