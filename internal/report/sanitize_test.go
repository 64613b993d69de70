package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Malaria", "Malaria"},
		{"", ""},
		{"café", "caf\xe9"},
		{"காய்ச்சல் fever", " fever"},
		{"Rest 🛌 well", "Rest  well"},
		{"“quoted”", "quoted"},
		{"100°F ±1", "100\xb0F \xb11"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), tt.in)
	}
}

func TestSanitizeAll(t *testing.T) {
	assert.Equal(t, []string{"a", ""}, SanitizeAll([]string{"a", "ஓ"}))
	assert.Empty(t, SanitizeAll(nil))
}
