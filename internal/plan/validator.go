package plan

import (
	"fmt"
	"math"

	"github.com/decocereus/magic-agent/internal/catalog"
	"github.com/decocereus/magic-agent/internal/resolve"
)

// ValidationError reports the first problem found in a plan. OpIndex is -1
// for document-level and precondition failures.
type ValidationError struct {
	Stage   string            `json:"stage"`
	Code    resolve.ErrorCode `json:"code"`
	OpIndex int               `json:"op_index"`
	Message string            `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.OpIndex >= 0 {
		return fmt.Sprintf("%s: operation %d: [%s] %s", e.Stage, e.OpIndex, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", e.Stage, e.Code, e.Message)
}

func versionErr(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Stage: "version", Code: resolve.CodeSchemaError, OpIndex: -1, Message: fmt.Sprintf(format, args...)}
}

func opErr(index int, code resolve.ErrorCode, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Stage: "operation", Code: code, OpIndex: index, Message: fmt.Sprintf(format, args...)}
}

// ValidatedPlan wraps a plan that passed every static and snapshot check.
// The dispatcher accepts only this type, so an unvalidated plan cannot reach
// the bridge by construction.
type ValidatedPlan struct {
	plan *Plan
}

// Plan returns the underlying validated plan.
func (v *ValidatedPlan) Plan() *Plan { return v.plan }

// Operations returns the validated operations in plan order.
func (v *ValidatedPlan) Operations() []Operation { return v.plan.Operations }

// Validate checks a parsed plan against the operation catalog and a context
// snapshot. It is pure: no bridge traffic, no snapshot mutation. Checks run
// in a fixed order and stop at the first failure: version, then each
// operation in plan order (name, parameters, ranges), then each precondition
// in plan order.
func Validate(p *Plan, snapshot *resolve.Context) (*ValidatedPlan, error) {
	if p.Version != SupportedVersion {
		return nil, versionErr("unsupported plan version %q, want %q", p.Version, SupportedVersion)
	}
	if len(p.Operations) == 0 {
		return nil, versionErr("plan has no operations")
	}

	for i, op := range p.Operations {
		if err := validateOperation(i, op); err != nil {
			return nil, err
		}
	}

	for _, pre := range p.Preconditions {
		if failure := pre.Eval(snapshot); failure != nil {
			return nil, &ValidationError{
				Stage:   "precondition",
				Code:    failure.Code,
				OpIndex: -1,
				Message: fmt.Sprintf("%s: %s", pre, failure.Message),
			}
		}
	}

	return &ValidatedPlan{plan: p}, nil
}

func validateOperation(index int, op Operation) *ValidationError {
	spec, ok := catalog.Lookup(op.Op)
	if !ok {
		return opErr(index, resolve.CodeInvalidProperty, "unknown operation %q", op.Op)
	}

	for _, param := range spec.Params {
		value, present := op.Params[param.Name]
		if !present {
			if param.Required {
				return opErr(index, resolve.CodeInvalidValue, "%s: missing required parameter %q", op.Op, param.Name)
			}
			continue
		}
		if err := checkValue(op.Op, param, value); err != nil {
			return opErr(index, resolve.CodeInvalidValue, "%s", err)
		}
	}

	// Unknown parameters are rejected, not ignored: a misspelled parameter
	// silently dropped would execute something other than what was planned.
	for name := range op.Params {
		if _, known := spec.Param(name); !known {
			return opErr(index, resolve.CodeInvalidProperty, "%s: unknown parameter %q", op.Op, name)
		}
	}

	if op.Op == "set_clip_property" {
		if code, err := checkClipProperties(op.Params["properties"]); err != nil {
			return opErr(index, code, "set_clip_property: %s", err)
		}
	}
	return nil
}

func checkValue(opName string, param catalog.Param, value interface{}) error {
	switch param.Kind {
	case catalog.String:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%s: parameter %q must be a string, got %T", opName, param.Name, value)
		}
		if len(param.Enum) > 0 && !contains(param.Enum, s) {
			return fmt.Errorf("%s: parameter %q value %q is not one of %v", opName, param.Name, s, param.Enum)
		}

	case catalog.Int:
		n, err := asInt(value)
		if err != nil {
			return fmt.Errorf("%s: parameter %q: %w", opName, param.Name, err)
		}
		if err := checkBounds(param, float64(n)); err != nil {
			return fmt.Errorf("%s: parameter %q %w", opName, param.Name, err)
		}

	case catalog.Float:
		f, ok := value.(float64)
		if !ok {
			return fmt.Errorf("%s: parameter %q must be a number, got %T", opName, param.Name, value)
		}
		if err := checkBounds(param, f); err != nil {
			return fmt.Errorf("%s: parameter %q %w", opName, param.Name, err)
		}

	case catalog.Bool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%s: parameter %q must be a boolean, got %T", opName, param.Name, value)
		}

	case catalog.StringList:
		list, ok := value.([]interface{})
		if !ok {
			return fmt.Errorf("%s: parameter %q must be an array of strings, got %T", opName, param.Name, value)
		}
		for i, item := range list {
			if _, ok := item.(string); !ok {
				return fmt.Errorf("%s: parameter %q item %d must be a string, got %T", opName, param.Name, i, item)
			}
		}

	case catalog.ClipList:
		list, ok := value.([]interface{})
		if !ok {
			return fmt.Errorf("%s: parameter %q must be an array, got %T", opName, param.Name, value)
		}
		for i, item := range list {
			switch entry := item.(type) {
			case string:
			case map[string]interface{}:
				if _, hasName := entry["name"].(string); !hasName {
					return fmt.Errorf("%s: parameter %q item %d needs a clip name", opName, param.Name, i)
				}
			default:
				return fmt.Errorf("%s: parameter %q item %d must be a clip name or object, got %T", opName, param.Name, i, item)
			}
		}

	case catalog.Selector:
		raw, ok := value.(map[string]interface{})
		if !ok {
			return fmt.Errorf("%s: parameter %q must be a selector object, got %T", opName, param.Name, value)
		}
		if _, err := ParseSelector(raw); err != nil {
			return fmt.Errorf("%s: %w", opName, err)
		}

	case catalog.Map:
		if _, ok := value.(map[string]interface{}); !ok {
			return fmt.Errorf("%s: parameter %q must be an object, got %T", opName, param.Name, value)
		}
	}
	return nil
}

func checkBounds(param catalog.Param, v float64) error {
	if param.Min != nil && v < *param.Min {
		return fmt.Errorf("value %v is below minimum %v", v, *param.Min)
	}
	if param.Max != nil && v > *param.Max {
		return fmt.Errorf("value %v is above maximum %v", v, *param.Max)
	}
	return nil
}

// checkClipProperties validates the properties map of set_clip_property
// against the known property table. Value 1.0 for Opacity means 1 percent,
// not full: values pass through unscaled.
func checkClipProperties(raw interface{}) (resolve.ErrorCode, error) {
	props, ok := raw.(map[string]interface{})
	if !ok {
		return resolve.CodeInvalidValue, fmt.Errorf("properties must be an object, got %T", raw)
	}
	if len(props) == 0 {
		return resolve.CodeInvalidValue, fmt.Errorf("properties must not be empty")
	}
	for name, value := range props {
		bounds, known := catalog.ClipProperties[name]
		if !known {
			return resolve.CodeInvalidProperty, fmt.Errorf("unknown clip property %q", name)
		}
		if bounds.Bool {
			if _, isBool := value.(bool); !isBool {
				return resolve.CodeInvalidValue, fmt.Errorf("property %q must be a boolean, got %T", name, value)
			}
			continue
		}
		f, isNum := value.(float64)
		if !isNum {
			return resolve.CodeInvalidValue, fmt.Errorf("property %q must be a number, got %T", name, value)
		}
		if f < bounds.Min || f > bounds.Max || math.IsNaN(f) {
			return resolve.CodeInvalidValue, fmt.Errorf("property %q value %v is outside [%v, %v]", name, f, bounds.Min, bounds.Max)
		}
	}
	return "", nil
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
