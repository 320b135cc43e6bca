package calc

import "fmt"

// ValidationError reports an unusable parameter set. Kind distinguishes a
// field that was never supplied from one that was supplied out of range.
type ValidationError struct {
	Field string
	Kind  ValidationKind
}

type ValidationKind string

const (
	MissingParameter ValidationKind = "missing_parameter"
	InvalidValue     ValidationKind = "invalid_value"
)

func (e *ValidationError) Error() string {
	if e.Kind == InvalidValue {
		return fmt.Sprintf("Parameter %q must be greater than zero", e.Field)
	}
	return fmt.Sprintf("Missing required parameter: %s", e.Field)
}

func missingParam(field string) *ValidationError {
	return &ValidationError{Field: field, Kind: MissingParameter}
}

func invalidValue(field string) *ValidationError {
	return &ValidationError{Field: field, Kind: InvalidValue}
}

// requirePositive resolves a required float field: nil -> missing, <= 0 -> invalid.
func requirePositive(v *float64, field string) (float64, error) {
	if v == nil {
		return 0, missingParam(field)
	}
	if *v <= 0 {
		return 0, invalidValue(field)
	}
	return *v, nil
}

func requirePositiveMonths(v *int, field string) (int, error) {
	if v == nil {
		return 0, missingParam(field)
	}
	if *v <= 0 {
		return 0, invalidValue(field)
	}
	return *v, nil
}
