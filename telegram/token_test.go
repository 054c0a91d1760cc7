// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

package telegram

import (
	"strings"
	"testing"
)

func TestValidateBotToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"600000000000000000AA", true},
		{"5" + strings.Repeat("0", 19), true},
		{"9" + strings.Repeat("x", 30), true},
		// Exactly 20 characters, boundary of the length rule.
		{"7" + strings.Repeat("0", 19), true},
		// 19 characters, one short.
		{"6" + strings.Repeat("0", 18), false},
		// Long enough but wrong leading digit.
		{"4" + strings.Repeat("0", 25), false},
		{"1" + strings.Repeat("0", 25), false},
		// Long enough but not a digit at all.
		{"a" + strings.Repeat("0", 25), false},
		{":" + strings.Repeat("0", 25), false},
		{"", false},
	}

	for _, test := range tests {
		if got := ValidateBotToken(test.token); got != test.want {
			t.Errorf("ValidateBotToken(%q) = %v, want %v", test.token, got, test.want)
		}
	}
}
