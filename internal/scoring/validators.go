package scoring

import "strings"

// StudentValidation summarises the student section of the structured data.
type StudentValidation struct {
	NameValid        bool `json:"name_valid"`
	IndexNumberValid bool `json:"index_number_valid"`
	DOBValid         bool `json:"dob_valid"`
	GenderValid      bool `json:"gender_valid"`
}

// AcademicValidation summarises the academic section of the structured data.
type AcademicValidation struct {
	GradesValid      bool `json:"grades_valid"`
	MeanGradeValid   bool `json:"mean_grade_valid"`
	PointsValid      bool `json:"points_valid"`
	SubjectsComplete bool `json:"subjects_complete"`
}

// SecurityValidation classifies the four security markers into present and
// missing lists, in the fixed order watermark, QR code, official stamp,
// signature.
type SecurityValidation struct {
	Present             []string `json:"present"`
	Missing             []string `json:"missing"`
	HasSecurityFeatures bool     `json:"has_security_features"`
}

var validGenders = map[string]bool{
	"male": true, "female": true, "m": true, "f": true,
}

// ValidateStudentSection checks the identity fields of the structured data.
// All checks fail when sf is nil.
func ValidateStudentSection(sf *StructuredFields) StudentValidation {
	if sf == nil {
		return StudentValidation{}
	}

	_, dobValid := ParseDateOfBirth(sf.DateOfBirth)

	return StudentValidation{
		NameValid:        len(strings.TrimSpace(sf.StudentName)) >= 3,
		IndexNumberValid: IsValidIndexNumber(sf.IndexNumber),
		DOBValid:         dobValid,
		GenderValid:      validGenders[strings.ToLower(strings.TrimSpace(sf.Gender))],
	}
}

// ValidateAcademicSection checks the grade and subject fields of the
// structured data. All checks fail when sf is nil.
func ValidateAcademicSection(sf *StructuredFields) AcademicValidation {
	if sf == nil {
		return AcademicValidation{}
	}

	gradesValid := true
	for _, subject := range sf.Subjects {
		if !IsValidGrade(subject.Grade) {
			gradesValid = false
			break
		}
	}

	return AcademicValidation{
		GradesValid:      gradesValid,
		MeanGradeValid:   IsValidGrade(sf.MeanGrade),
		PointsValid:      pointsConsistent(sf),
		SubjectsComplete: subjectsComplete(sf.Subjects),
	}
}

// pointsConsistent cross-checks per-subject points against the stated
// total, with a one-point tolerance for rounding. The check only applies
// when subjects exist and a total is stated.
func pointsConsistent(sf *StructuredFields) bool {
	if len(sf.Subjects) == 0 || sf.TotalPoints == nil {
		return true
	}

	sum := 0
	for _, subject := range sf.Subjects {
		if subject.Points != nil {
			sum += *subject.Points
		}
	}

	diff := sum - *sf.TotalPoints
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1
}

// subjectsComplete requires at least seven subjects, one of them a core
// subject (English, Kiswahili or Mathematics).
func subjectsComplete(subjects []SubjectGrade) bool {
	if len(subjects) < 7 {
		return false
	}
	for _, subject := range subjects {
		name := strings.ToLower(subject.Name)
		for _, core := range coreSubjectNames {
			if strings.Contains(name, core) {
				return true
			}
		}
	}
	return false
}

// ValidateSecurityElements classifies detected anti-fraud markers. A nil
// input lists all four markers as missing.
func ValidateSecurityElements(m *SecurityMarkers) SecurityValidation {
	type marker struct {
		name    string
		present bool
	}

	markers := []marker{
		{"Watermark", m != nil && m.HasWatermark},
		{"QR Code", m != nil && m.HasQRCode},
		{"Official Stamp", m != nil && m.HasOfficialStamp},
		{"Signature", m != nil && m.HasSignature},
	}

	result := SecurityValidation{
		Present: []string{},
		Missing: []string{},
	}
	for _, mk := range markers {
		if mk.present {
			result.Present = append(result.Present, mk.name)
		} else {
			result.Missing = append(result.Missing, mk.name)
		}
	}

	result.HasSecurityFeatures = len(result.Present) >= 2
	return result
}
