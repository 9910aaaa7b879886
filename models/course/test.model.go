package course

import "gorm.io/gorm"

// Test is a pre- or post-course questionnaire in one language; at most one
// per (course, type, language).
type Test struct {
	gorm.Model
	CourseID uint   `gorm:"uniqueIndex:idx_test_course_type_lang;not null" json:"course_id"`
	Title    string `gorm:"not null" json:"title"`
	Type     string `gorm:"uniqueIndex:idx_test_course_type_lang;not null" json:"type"` // pre, post
	Language string `gorm:"uniqueIndex:idx_test_course_type_lang;not null" json:"language"`
}

// TestQuestion links a question into a test.
type TestQuestion struct {
	gorm.Model
	TestID     uint `gorm:"uniqueIndex:idx_test_question;not null" json:"test_id"`
	QuestionID uint `gorm:"uniqueIndex:idx_test_question;not null" json:"question_id"`
}

// MCQQuestion is a bank question, optionally scoped to a course.
type MCQQuestion struct {
	gorm.Model
	QuestionText  string `gorm:"not null" json:"question_text"`
	Options       string `gorm:"not null" json:"options"` // JSON array of option strings
	CorrectAnswer string `gorm:"not null" json:"correct_answer"`
	CourseID      *uint  `gorm:"index" json:"course_id"`
}
