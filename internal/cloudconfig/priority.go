package cloudconfig

// DefaultOrderValue is the priority of a directive missing from the
// ordering list. It sorts after every listed directive.
const DefaultOrderValue = 999

// Priority returns the sort key for name under the given ordering.
func Priority(name string, order []string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return DefaultOrderValue
}
