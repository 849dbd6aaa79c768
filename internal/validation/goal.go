package validation

import (
	"fmt"
	"strings"

	"github.com/koso-app/koso/internal/constants"
	"github.com/koso-app/koso/internal/utils"
)

// ValidateGoalName validates a goal name without checking existence.
func ValidateGoalName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("goal name can't be empty")
	}
	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("goal name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

// ValidateGoalTarget requires a positive whole amount.
func ValidateGoalTarget(s string) error {
	target, err := utils.ParseAmount(s)
	if err != nil {
		return err
	}
	if target <= 0 {
		return fmt.Errorf("target must be greater than 0")
	}
	return nil
}
