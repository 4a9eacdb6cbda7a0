package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolConfigs_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, config := range GetToolConfigs() {
		assert.False(t, seen[config.Name], "duplicate tool name: %s", config.Name)
		seen[config.Name] = true
		assert.NotEmpty(t, config.Description, "tool %s has no description", config.Name)
		assert.NotNil(t, config.Handler, "tool %s has no handler", config.Name)
	}
}

func TestToolConfigs_StableOrder(t *testing.T) {
	first := GetToolConfigs()
	second := GetToolConfigs()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name, "listing order changed between calls")
	}
}

func TestToolConfigs_CatalogComplete(t *testing.T) {
	expected := []string{
		"get_users",
		"get_issue",
		"get_statuses",
		"get_issue_types",
		"create_issue",
		"update_issue",
		"add_comment",
		"get_comments",
		"search_user_by_name",
		"set_api_token",
	}
	var names []string
	for _, config := range GetToolConfigs() {
		names = append(names, config.Name)
	}
	assert.Equal(t, expected, names)
}

func TestGetToolConfig(t *testing.T) {
	config, err := GetToolConfig("get_issue")
	require.NoError(t, err)
	assert.Equal(t, "get_issue", config.Name)

	_, err = GetToolConfig("no_such_tool")
	assert.Error(t, err)
}

func TestBuildToolSchema(t *testing.T) {
	config, err := GetToolConfig("create_issue")
	require.NoError(t, err)

	schema := BuildToolSchema(*config)
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"title"}, schema.Required)
	assert.Contains(t, schema.Properties, "issue_type_id")
	assert.Contains(t, schema.Properties, "project_key")
}

func TestBuildToolSchema_Defaults(t *testing.T) {
	config, err := GetToolConfig("get_users")
	require.NoError(t, err)

	schema := BuildToolSchema(*config)
	page, ok := schema.Properties["page"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "integer", page["type"])
	assert.Equal(t, 1, page["default"])
	assert.Empty(t, schema.Required, "get_users has no required parameters")
}

func TestBuildToolSchema_RequiredFields(t *testing.T) {
	tests := []struct {
		tool     string
		required []string
	}{
		{"get_issue", []string{"issue_key"}},
		{"update_issue", []string{"issue_key"}},
		{"add_comment", []string{"issue_key", "content"}},
		{"get_comments", []string{"issue_key"}},
		{"search_user_by_name", []string{"name"}},
		{"set_api_token", []string{"api_token"}},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			config, err := GetToolConfig(tt.tool)
			require.NoError(t, err)
			schema := BuildToolSchema(*config)
			assert.Equal(t, tt.required, schema.Required)
		})
	}
}
