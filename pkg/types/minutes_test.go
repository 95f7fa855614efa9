package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinutes_String(t *testing.T) {
	tests := []struct {
		name     string
		minutes  Minutes
		expected string
	}{
		{name: "evening cutoff", minutes: 1080, expected: "18:00"},
		{name: "late evening", minutes: 1320, expected: "22:00"},
		{name: "zero padded", minutes: 65, expected: "01:05"},
		{name: "midnight", minutes: 0, expected: "00:00"},
		{name: "last minute", minutes: 1439, expected: "23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.minutes.String())
		})
	}
}

func TestRange(t *testing.T) {
	assert.Equal(t, "18:00-19:00", Range(1080, 1140))
}
