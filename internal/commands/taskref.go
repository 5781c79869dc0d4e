package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrTaskIDRequired indicates no task id was given.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID reads the task id from the first positional argument.
// Ids are the positive integers shown by list. Extra arguments are an
// error so that "rm 1 2" does not silently delete only one task.
func ParseTaskID(args []string) (int64, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return 0, ErrTaskIDRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	raw := strings.TrimPrefix(args[0], "#")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", args[0])
	}
	return id, nil
}
