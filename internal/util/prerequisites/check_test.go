package prerequisites

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allDirectives = []string{"set_hostname", "users", "set_user_password", "write_files"}

func stubLookPath(t *testing.T, found ...string) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })

	lookPath = func(name string) (string, error) {
		for _, f := range found {
			if f == name {
				return "/usr/sbin/" + name, nil
			}
		}
		return "", errors.New("executable file not found in $PATH")
	}
}

func TestCheckSystem_AllPresent(t *testing.T) {
	stubLookPath(t, "pw", "hostname", "sysrc")

	results := CheckSystem(allDirectives)

	require.Len(t, results.Results, 3)
	assert.Empty(t, results.Missing)
	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
	assert.Equal(t, "/usr/sbin/pw", results.Results[0].Path)
}

func TestCheckSystem_OptionalMissing(t *testing.T) {
	stubLookPath(t, "pw", "hostname")

	results := CheckSystem(allDirectives)

	require.Len(t, results.Missing, 1)
	assert.Equal(t, "sysrc", results.Missing[0].Name)
	assert.False(t, results.HasErrors(), "sysrc is optional")
	assert.NoError(t, results.Error())
}

func TestCheckSystem_RequiredMissing(t *testing.T) {
	stubLookPath(t, "hostname")

	results := CheckSystem(allDirectives)

	assert.True(t, results.HasErrors())
	err := results.Error()
	require.Error(t, err)
	assert.Equal(t, "missing required tools: pw (needed by users, set_user_password)", err.Error())
}

func TestCheckSystem_OnlyEnabledDirectives(t *testing.T) {
	stubLookPath(t)

	results := CheckSystem([]string{"write_files"})

	assert.Empty(t, results.Results)
	assert.NoError(t, results.Error())

	results = CheckSystem([]string{"set_hostname"})
	require.Len(t, results.Missing, 2)
	assert.Contains(t, results.Error().Error(), "hostname (needed by set_hostname)")
}

func TestForDirectives(t *testing.T) {
	t.Parallel()
	tools := ForDirectives(SystemTools(), []string{"set_user_password"})

	require.Len(t, tools, 1)
	assert.Equal(t, "pw", tools[0].Name)
	assert.Empty(t, ForDirectives(SystemTools(), nil))
}

func TestSystemTools(t *testing.T) {
	t.Parallel()
	names := make([]string, 0, 3)
	for _, tool := range SystemTools() {
		assert.NotEmpty(t, tool.Purpose, tool.Name)
		assert.NotEmpty(t, tool.Directives, tool.Name)
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"pw", "hostname", "sysrc"}, names)
}
