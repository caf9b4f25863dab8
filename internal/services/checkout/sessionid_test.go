package checkout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSessionID(t *testing.T) {
	body24 := strings.Repeat("a1B2", 6)

	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"test id with 24 char body", "cs_test_" + body24, true},
		{"live id with 24 char body", "cs_live_" + body24, true},
		{"longer body", "cs_test_" + body24 + "XYZ123", true},
		{"empty", "", false},
		{"missing prefix", body24, false},
		{"wrong environment token", "cs_prod_" + body24, false},
		{"uppercase environment token", "cs_TEST_" + body24, false},
		{"body too short", "cs_test_" + body24[:23], false},
		{"placeholder token", "cs_test_{CHECKOUT_SESSION_ID}", false},
		{"braces in body", "cs_test_" + body24 + "{", false},
		{"underscore in body", "cs_test_abc_def_ghi_jkl_mno_pqr", false},
		{"whitespace", " cs_test_" + body24, false},
		{"control character", "cs_test_" + body24 + "\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validSessionID(tt.id))
		})
	}
}

func TestIsPlaceholderSessionID(t *testing.T) {
	assert.True(t, isPlaceholderSessionID("{CHECKOUT_SESSION_ID}"))
	assert.True(t, isPlaceholderSessionID("%7BCHECKOUT_SESSION_ID%7D"))
	assert.True(t, isPlaceholderSessionID("cs_test_{abc}"))
	assert.False(t, isPlaceholderSessionID("cs_test_"+strings.Repeat("a", 24)))
}
