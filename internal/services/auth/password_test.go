// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package auth_test

import (
	"testing"

	"codeberg.org/lesgardiens/boardclub/internal/services/auth"
	"github.com/stretchr/testify/assert"
)

func TestPasswordValidator(t *testing.T) {
	v := auth.DefaultPasswordValidator()

	tests := []struct {
		name     string
		password string
		valid    bool
		code     string
	}{
		{"accepts policy-compliant password", "Str0ng!Pass", true, ""},
		{"rejects short password", "S0rt!", false, "min_length"},
		{"rejects missing uppercase", "weak0!pass", false, "no_uppercase"},
		{"rejects missing lowercase", "WEAK0!PASS", false, "no_lowercase"},
		{"rejects missing digit", "Weak!Passx", false, "no_digit"},
		{"rejects missing special", "Weak0Passx", false, "no_special"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.password)
			assert.Equal(t, tt.valid, result.Valid)
			if tt.code != "" {
				codes := make([]string, len(result.Errors))
				for i, e := range result.Errors {
					codes[i] = e.Code
				}
				assert.Contains(t, codes, tt.code)
			}
		})
	}
}
