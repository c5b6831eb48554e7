package games

import (
	"errors"
	"fmt"
	"strings"
)

// RuleCode identifies the business rule that rejected an action.
type RuleCode string

const (
	CodeInvalidTransition     RuleCode = "InvalidTransition"
	CodeCannotStart           RuleCode = "CannotStart"
	CodeCannotScore           RuleCode = "CannotScore"
	CodeCanOnlyEndInProgress  RuleCode = "CanOnlyEndInProgress"
	CodeInvalidOutCount       RuleCode = "InvalidOutCount"
	CodeIncompleteForceSpec   RuleCode = "IncompleteForceSpec"
	CodeRegulationNotComplete RuleCode = "RegulationNotComplete"
)

// RuleError is a business-rule rejection. It names the rule violated and
// describes the state that caused the rejection. A RuleError never
// accompanies a partial mutation; the state the caller holds is unchanged.
type RuleError struct {
	Code    RuleCode
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsRuleError attempts to unwrap an error into a RuleError.
func AsRuleError(err error) (*RuleError, bool) {
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr, true
	}
	return nil, false
}

func ruleErrorf(code RuleCode, format string, args ...any) *RuleError {
	return &RuleError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func transitionError(from, to GameStatus) *RuleError {
	return ruleErrorf(CodeInvalidTransition, "no transition from %s to %s", from, to)
}

// FieldError reports a single malformed payload field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates the structural problems with a payload. It is
// produced before any rule evaluation and never accompanies a mutation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid payload: " + strings.Join(parts, "; ")
}

// AsValidationError attempts to unwrap an error into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr, true
	}
	return nil, false
}

// fieldErrors collects per-field findings during payload validation.
type fieldErrors []FieldError

func (fe *fieldErrors) add(field, message string) {
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

func (fe fieldErrors) toError() *ValidationError {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: fe}
}
