package compare

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRobustCompare(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		eExists  bool
		aExists  bool
		want     bool
	}{
		{"both absent", nil, nil, false, false, true},
		{"actual absent", "x", nil, true, false, false},
		{"same string", "ldap://a", "ldap://a", true, true, true},
		{"different string", "ldap://b", "ldap://a", true, true, false},
		{"int vs json number", 90, json.Number("90"), true, true, true},
		{"int vs different json number", 90, json.Number("30"), true, true, false},
		{"int vs float64", 0, float64(0), true, true, true},
		{"bool vs bool", true, true, true, true, true},
		{"bool vs string bool", false, "false", true, true, true},
		{"bool vs word", true, "enabled", true, true, false},
		{"numeric strings compared literally", "90", "90.0", true, true, false},
		{"string slice vs any slice", []string{"10.0.0.0/8"}, []any{"10.0.0.0/8"}, true, true, true},
		{"slice order matters", []string{"a", "b"}, []any{"b", "a"}, true, true, false},
		{"empty slice vs nil", []string{}, nil, true, true, true},
		{"string vs nil", "", nil, true, true, false},
		{"maps", map[string]any{"a": 1}, map[string]any{"a": json.Number("1")}, true, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RobustCompare(tc.expected, tc.actual, tc.eExists, tc.aExists)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSets(t *testing.T) {
	equal, details := Sets([]string{"default", "admins"}, []string{"admins", "default"})
	assert.True(t, equal)
	assert.Empty(t, details)

	equal, details = Sets([]string{"admins", "ops"}, []string{"admins", "dev"})
	assert.False(t, equal)
	assert.Equal(t, "Unexpected: [dev]; Missing: [ops]", details)

	equal, _ = Sets(nil, []string{})
	assert.True(t, equal)
}
