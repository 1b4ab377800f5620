package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Run("returns default when unset", func(t *testing.T) {
		assert.Equal(t, "openai", GetEnvString("TEST_ENV_STRING_UNSET", "openai"))
	})

	t.Run("returns value when set", func(t *testing.T) {
		t.Setenv("TEST_ENV_STRING", "claude")
		assert.Equal(t, "claude", GetEnvString("TEST_ENV_STRING", "openai"))
	})
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      int
		expected int
	}{
		{name: "valid integer", value: "2048", def: 1024, expected: 2048},
		{name: "invalid integer falls back", value: "abc", def: 1024, expected: 1024},
		{name: "empty falls back", value: "", def: 1024, expected: 1024},
		{name: "negative is accepted", value: "-1", def: 1024, expected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_ENV_INT", tt.value)
			}
			assert.Equal(t, tt.expected, GetEnvInt("TEST_ENV_INT", tt.def))
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      float64
		expected float64
	}{
		{name: "valid float", value: "1.5", def: 1.3, expected: 1.5},
		{name: "integer literal", value: "2", def: 1.3, expected: 2.0},
		{name: "invalid falls back", value: "ratio", def: 1.3, expected: 1.3},
		{name: "empty falls back", value: "", def: 0.9, expected: 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_ENV_FLOAT", tt.value)
			}
			assert.InDelta(t, tt.expected, GetEnvFloat("TEST_ENV_FLOAT", tt.def), 1e-9)
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		def      bool
		expected bool
	}{
		{value: "1", def: false, expected: true},
		{value: "true", def: false, expected: true},
		{value: "T", def: false, expected: true},
		{value: "0", def: true, expected: false},
		{value: "False", def: true, expected: false},
		{value: "yes", def: false, expected: false}, // invalid -> default
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_ENV_BOOL", tt.value)
			assert.Equal(t, tt.expected, GetEnvBool("TEST_ENV_BOOL", tt.def))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Run("valid duration", func(t *testing.T) {
		t.Setenv("TEST_ENV_DURATION", "90s")
		assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_ENV_DURATION", time.Minute))
	})

	t.Run("invalid falls back", func(t *testing.T) {
		t.Setenv("TEST_ENV_DURATION", "ninety")
		assert.Equal(t, time.Minute, GetEnvDuration("TEST_ENV_DURATION", time.Minute))
	})
}

func TestGetEnvStringList(t *testing.T) {
	t.Run("splits and trims", func(t *testing.T) {
		t.Setenv("TEST_ENV_LIST", "http://a.example, http://b.example ,, ")
		assert.Equal(t,
			[]string{"http://a.example", "http://b.example"},
			GetEnvStringList("TEST_ENV_LIST", nil))
	})

	t.Run("all empty falls back", func(t *testing.T) {
		t.Setenv("TEST_ENV_LIST", " , ,")
		assert.Equal(t, []string{"x"}, GetEnvStringList("TEST_ENV_LIST", []string{"x"}))
	})
}
