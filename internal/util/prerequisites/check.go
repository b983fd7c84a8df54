// Package prerequisites checks that the base system tools the directives
// shell out to are installed.
package prerequisites

import (
	"fmt"
	"os/exec"
	"slices"
	"strings"
)

// Tool is a base system binary used by one or more directives.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required tools abort the run when missing. Optional ones only
	// degrade the directives that use them.
	Required bool

	// Purpose is shown to the operator when the tool is missing.
	Purpose string

	// Directives lists the cloud-config keys that invoke the tool.
	Directives []string
}

// SystemTools returns the tools used by the FreeBSD adapter.
func SystemTools() []Tool {
	return []Tool{
		{Name: "pw", Required: true, Purpose: "creates accounts and sets passwords", Directives: []string{"users", "set_user_password"}},
		{Name: "hostname", Required: true, Purpose: "applies the hostname to the running system", Directives: []string{"set_hostname"}},
		{Name: "sysrc", Purpose: "persists the hostname in rc.conf", Directives: []string{"set_hostname"}},
	}
}

// ForDirectives filters tools down to the ones needed by the enabled
// directives.
func ForDirectives(tools []Tool, enabled []string) []Tool {
	var needed []Tool
	for _, tool := range tools {
		if slices.ContainsFunc(tool.Directives, func(d string) bool { return slices.Contains(enabled, d) }) {
			needed = append(needed, tool)
		}
	}
	return needed
}

// CheckResult is the lookup outcome for one tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults collects the lookups of a Check call.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors reports whether a required tool is missing.
func (r *CheckResults) HasErrors() bool {
	return slices.ContainsFunc(r.Missing, func(t Tool) bool { return t.Required })
}

// Error returns an error naming every missing required tool, or nil.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if !tool.Required {
			continue
		}
		missing = append(missing, fmt.Sprintf("%s (needed by %s)", tool.Name, strings.Join(tool.Directives, ", ")))
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, "; "))
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// Check looks up each tool in PATH.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}
	for _, tool := range tools {
		result := CheckResult{Tool: tool}
		if path, err := lookPath(tool.Name); err == nil {
			result.Found, result.Path = true, path
		} else {
			results.Missing = append(results.Missing, tool)
		}
		results.Results = append(results.Results, result)
	}
	return results
}

// CheckSystem checks the system tools needed by the enabled directives.
func CheckSystem(enabled []string) *CheckResults {
	return Check(ForDirectives(SystemTools(), enabled))
}
