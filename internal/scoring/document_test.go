package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

// cleanDocument returns a document that passes every validation check.
func cleanDocument() *ExtractedDocument {
	year := time.Now().Year()

	subjects := []SubjectGrade{
		{Name: "English", Grade: "B+", Points: intPtr(10)},
		{Name: "Kiswahili", Grade: "B", Points: intPtr(9)},
		{Name: "Mathematics", Grade: "A-", Points: intPtr(11)},
		{Name: "Biology", Grade: "B+", Points: intPtr(10)},
		{Name: "Chemistry", Grade: "B", Points: intPtr(9)},
		{Name: "Geography", Grade: "A-", Points: intPtr(11)},
		{Name: "Business Studies", Grade: "B+", Points: intPtr(10)},
	}

	return &ExtractedDocument{
		RawText:    "KENYA CERTIFICATE OF SECONDARY EDUCATION",
		Confidence: 0.95,
		Structured: &StructuredFields{
			StudentName: "Jane Wanjiku Otieno",
			IndexNumber: "12345678/2023",
			DateOfBirth: fmt.Sprintf("12/04/%d", year-19),
			Gender:      "F",
			SchoolName:  "Alliance High School",
			YearOfExam:  "2023",
			Subjects:    subjects,
			MeanGrade:   "B+",
			TotalPoints: intPtr(70),
		},
		VerificationElements: &SecurityMarkers{
			HasWatermark:     true,
			HasQRCode:        true,
			HasOfficialStamp: true,
			HasSignature:     true,
			StampText:        "KNEC",
		},
	}
}

func TestValidateDocumentNil(t *testing.T) {
	result := ValidateDocument(nil)

	assert.False(t, result.IsValid)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, []string{"No extracted data available for validation"}, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateDocumentEveryDeductionFires(t *testing.T) {
	// Zero confidence with no structured data and no markers: all eight
	// deductions apply (30+15+10+5+10+5+5+20) and the score bottoms out.
	result := ValidateDocument(&ExtractedDocument{Confidence: 0})

	assert.False(t, result.IsValid)
	assert.Equal(t, 0, result.Score)
	assert.Len(t, result.Errors, 4)
	assert.Len(t, result.Warnings, 4)
}

func TestValidateDocumentClean(t *testing.T) {
	result := ValidateDocument(cleanDocument())

	assert.True(t, result.IsValid)
	assert.Equal(t, 100, result.Score)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateDocumentConfidenceDeductions(t *testing.T) {
	doc := cleanDocument()
	doc.Confidence = 0.6
	result := ValidateDocument(doc)
	assert.True(t, result.IsValid)
	assert.Equal(t, 85, result.Score)
	assert.Len(t, result.Warnings, 1)

	doc.Confidence = 0.4
	result = ValidateDocument(doc)
	assert.False(t, result.IsValid)
	assert.Equal(t, 70, result.Score)
	assert.Len(t, result.Errors, 1)
}

func TestValidateDocumentScoreMonotonic(t *testing.T) {
	// Introducing defects one at a time never raises the score.
	doc := cleanDocument()
	prev := ValidateDocument(doc).Score

	doc.Confidence = 0.6
	score := ValidateDocument(doc).Score
	assert.LessOrEqual(t, score, prev)
	prev = score

	doc.Structured.StudentName = ""
	score = ValidateDocument(doc).Score
	assert.LessOrEqual(t, score, prev)
	prev = score

	doc.Structured.IndexNumber = "bogus"
	score = ValidateDocument(doc).Score
	assert.LessOrEqual(t, score, prev)
	prev = score

	doc.VerificationElements = nil
	score = ValidateDocument(doc).Score
	assert.LessOrEqual(t, score, prev)
	prev = score

	doc.Structured = nil
	score = ValidateDocument(doc).Score
	assert.LessOrEqual(t, score, prev)
	assert.GreaterOrEqual(t, score, 0)
}

func TestValidateDocumentNeverNegative(t *testing.T) {
	doc := &ExtractedDocument{Confidence: 0.1}
	result := ValidateDocument(doc)

	assert.False(t, result.IsValid)
	assert.GreaterOrEqual(t, result.Score, 0)
}

func TestValidateDocumentPointsTolerance(t *testing.T) {
	doc := cleanDocument()

	// One point off is tolerated as rounding.
	doc.Structured.TotalPoints = intPtr(69)
	result := ValidateDocument(doc)
	assert.Equal(t, 100, result.Score)

	// Two points off is flagged.
	doc.Structured.TotalPoints = intPtr(68)
	result = ValidateDocument(doc)
	assert.Equal(t, 95, result.Score)
	assert.Contains(t, result.Warnings, "Subject points do not add up to the stated total")
}

func TestValidateDocumentSecurityErrorListsMissing(t *testing.T) {
	doc := cleanDocument()
	doc.VerificationElements = &SecurityMarkers{HasWatermark: true}

	result := ValidateDocument(doc)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors[0], "QR Code")
	assert.Contains(t, result.Errors[0], "Official Stamp")
	assert.Contains(t, result.Errors[0], "Signature")
	assert.NotContains(t, result.Errors[0], "Watermark,")
}

func TestValidateSecurityElements(t *testing.T) {
	sec := ValidateSecurityElements(nil)
	assert.False(t, sec.HasSecurityFeatures)
	assert.Empty(t, sec.Present)
	assert.Equal(t, []string{"Watermark", "QR Code", "Official Stamp", "Signature"}, sec.Missing)

	sec = ValidateSecurityElements(&SecurityMarkers{HasWatermark: true, HasSignature: true})
	assert.True(t, sec.HasSecurityFeatures)
	assert.Equal(t, []string{"Watermark", "Signature"}, sec.Present)
	assert.Equal(t, []string{"QR Code", "Official Stamp"}, sec.Missing)
}

func TestValidateStudentSectionAbsent(t *testing.T) {
	student := ValidateStudentSection(nil)
	assert.False(t, student.NameValid)
	assert.False(t, student.IndexNumberValid)
	assert.False(t, student.DOBValid)
	assert.False(t, student.GenderValid)
}

func TestValidateAcademicSectionAbsent(t *testing.T) {
	academic := ValidateAcademicSection(nil)
	assert.False(t, academic.GradesValid)
	assert.False(t, academic.MeanGradeValid)
	assert.False(t, academic.PointsValid)
	assert.False(t, academic.SubjectsComplete)
}

func TestValidateAcademicSectionSubjectsComplete(t *testing.T) {
	sf := cleanDocument().Structured

	academic := ValidateAcademicSection(sf)
	assert.True(t, academic.SubjectsComplete)

	// Fewer than seven subjects is incomplete regardless of names.
	sf.Subjects = sf.Subjects[:6]
	academic = ValidateAcademicSection(sf)
	assert.False(t, academic.SubjectsComplete)

	// Seven subjects but none of them core is still incomplete.
	sf.Subjects = nil
	for i := 0; i < 7; i++ {
		sf.Subjects = append(sf.Subjects, SubjectGrade{Name: fmt.Sprintf("Elective %d", i), Grade: "B"})
	}
	academic = ValidateAcademicSection(sf)
	assert.False(t, academic.SubjectsComplete)
}
