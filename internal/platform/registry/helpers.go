package registry

import (
	"fmt"
	"time"

	"vajra/internal/core/domain"
)

// Validation helpers shared by module factories and the registry.

// ValidateEnum validates that a string value is one of the allowed options.
// Returns an error if the value is not in the allowed list.
func ValidateEnum(fieldName, value string, allowed []string) error {
	for _, option := range allowed {
		if value == option {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %v, got %s", fieldName, allowed, value)
}

// ValidateNonNegativeDuration validates that a duration is not negative.
// Zero means "use the descriptor default".
func ValidateNonNegativeDuration(fieldName string, value time.Duration) error {
	if value < 0 {
		return fmt.Errorf("%s cannot be negative, got %v", fieldName, value)
	}
	return nil
}

// ValidateParams checks every interactive parameter of d against its
// declared options. Keys without a value are allowed: the default applies.
func ValidateParams(d domain.ModuleDescriptor, params domain.Params) error {
	for _, key := range d.ChoiceKeys() {
		v, ok := params[key]
		if !ok || v == "" {
			continue
		}
		if err := ValidateEnum(d.Name+"."+key, v, d.Choices[key]); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidModule, err)
		}
	}
	return nil
}

// EffectiveTimeout resolves the per-invocation timeout: configuration first,
// then the descriptor default.
func EffectiveTimeout(d domain.ModuleDescriptor, override time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	return d.Timeout
}
