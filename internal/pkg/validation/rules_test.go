package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStudentID(t *testing.T) {
	cases := []struct {
		id    string
		valid bool
	}{
		{"20250042", true},
		{"00000001", true},
		{" 20250042 ", true},
		{"2025004", false},
		{"202500421", false},
		{"2025004a", false},
		{"", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.valid, IsValidStudentID(tc.id), "id %q", tc.id)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("student@campus.edu.cn"))
	assert.True(t, IsValidEmail("Student@Campus.EDU"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("a@b"))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   \t\n"))
	assert.False(t, IsBlank(" x "))
}
