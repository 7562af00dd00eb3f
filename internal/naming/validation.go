package naming

import (
	"fmt"
	"strings"

	utilvalidation "k8s.io/apimachinery/pkg/util/validation"
)

const stackNameMaxLength = 24

// ValidateStackName checks that name is a DNS-1123 label short enough to be
// embedded in physical resource names.
func ValidateStackName(name string) error {
	if name == "" {
		return fmt.Errorf("stack name must not be empty")
	}
	if len(name) > stackNameMaxLength {
		return fmt.Errorf("stack name exceeds %d characters", stackNameMaxLength)
	}
	if errs := utilvalidation.IsDNS1123Label(name); len(errs) > 0 {
		return fmt.Errorf("invalid stack name: %s", strings.Join(errs, ", "))
	}
	return nil
}
