package cmd

import (
	"fmt"
	"strconv"
)

// parsePosition converts a command argument to a 1-based task position.
// Range checking is the store's job; this only rejects non-numeric
// input.
func parsePosition(arg string) (int, error) {
	position, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%q is not a task number", arg)
	}
	return position, nil
}
