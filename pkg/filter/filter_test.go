package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  any
	}{
		{"exact match", "10Mbps Hardware Firewall", "_= 10Mbps Hardware Firewall"},
		{"exact match with parens", "Hardware Firewall (Dedicated)", "_= Hardware Firewall (Dedicated)"},
		{"contains", "*web*", "~ web"},
		{"starts with", "web*", "^= web"},
		{"ends with", "*web", "$= web"},
		{"integer", "42", 42},
		{"integer with padding", "  42 ", 42},
		{"explicit gte", ">= 5", ">= 5"},
		{"explicit not equal", "!= down", "!= down"},
		{"explicit like", "~ dal", "~ dal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query(tt.query)
			assert.Equal(t, map[string]any{"operation": tt.want}, got)
		})
	}
}

func TestSetNestsDottedPaths(t *testing.T) {
	f := New().Set("items.description", Query("10Mbps Hardware Firewall"))

	items, ok := f["items"].(map[string]any)
	require.True(t, ok)
	desc, ok := items["description"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "_= 10Mbps Hardware Firewall", desc["operation"])
}

func TestSetSiblingPaths(t *testing.T) {
	f := New().
		Set("items.description", Query("a")).
		Set("items.id", Query("3"))

	items := f["items"].(map[string]any)
	assert.Len(t, items, 2)
}

func TestNotNullJSON(t *testing.T) {
	f := New().Set("networkGateways.networkFirewall", NotNull())

	out, err := f.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"networkGateways":{"networkFirewall":{"operation":"not null"}}}`, out)
}

func TestJSONExactMatch(t *testing.T) {
	f := New().Set("items.description", Query("1000Mbps Hardware Firewall"))

	out, err := f.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":{"description":{"operation":"_= 1000Mbps Hardware Firewall"}}}`, out)
}
