package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGender(t *testing.T) {
	tests := []struct {
		in   string
		want Gender
		ok   bool
	}{
		{"Male", GenderMale, true},
		{"male", GenderMale, true},
		{"MEN", GenderMale, true},
		{"man", GenderMale, true},
		{"Female", GenderFemale, true},
		{"women", GenderFemale, true},
		{"woman", GenderFemale, true},
		{" Unisex ", GenderUnisex, true},
		{"kids", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := ParseGender(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}
