package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Student identifier pattern - 8 digits
	StudentIDPattern = `^\d{8}$`

	// Password min length
	PasswordMinLength = 8

	// Username min/max length
	UsernameMinLength = 2
	UsernameMaxLength = 30
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email     *regexp.Regexp
	StudentID *regexp.Regexp
}{
	Email:     regexp.MustCompile(EmailPattern),
	StudentID: regexp.MustCompile(StudentIDPattern),
}

// IsValidEmail reports whether the email matches the expected format.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(strings.TrimSpace(email)))
}

// IsValidStudentID reports whether the student id matches the expected format.
func IsValidStudentID(studentID string) bool {
	return CompiledPatterns.StudentID.MatchString(strings.TrimSpace(studentID))
}

// IsBlank reports whether the string is empty or whitespace-only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
