package config

import (
	"fmt"
	"strconv"
	"strings"
)

// CoerceValue maps an arbitrary YAML scalar or sequence to the string
// form CloudFormation parameters require:
//
//   - string lists become comma-joined strings
//   - booleans become the lowercase tokens "true"/"false"
//   - numbers are formatted without exponent notation
//   - strings (including embedded JSON) pass through unchanged
//
// nil values coerce to ok=false and are dropped by the caller.
func CoerceValue(value any) (string, bool, error) {
	switch v := value.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	case bool:
		return strconv.FormatBool(v), true, nil
	case int:
		return strconv.Itoa(v), true, nil
	case int64:
		return strconv.FormatInt(v, 10), true, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true, nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			s, ok, err := CoerceValue(item)
			if err != nil {
				return "", false, err
			}
			if !ok {
				return "", false, fmt.Errorf("list contains null element")
			}
			if strings.Contains(s, ",") {
				return "", false, fmt.Errorf("list element %q contains a comma", s)
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), true, nil
	default:
		return "", false, fmt.Errorf("unsupported value type %T", value)
	}
}

// stackNameKeySuffix marks configuration keys that override derived
// stack names; they are not CloudFormation parameters.
const stackNameKeySuffix = "StackName"

// buildParameters coerces a raw configuration map into a ParameterSet,
// splitting out stack-name overrides. Keys are processed in the order
// given to keep the resulting set deterministic.
func buildParameters(raw map[string]any, keyOrder []string) (*ParameterSet, map[string]string, error) {
	params := NewParameterSet()
	overrides := make(map[string]string)

	for _, key := range keyOrder {
		value := raw[key]

		if strings.HasSuffix(key, stackNameKeySuffix) {
			if s, ok := value.(string); ok {
				overrides[key] = s
			}
			continue
		}

		s, ok, err := CoerceValue(value)
		if err != nil {
			return nil, nil, &Error{Key: key, Err: err}
		}
		if !ok {
			continue
		}
		params.Set(key, s)
	}

	return params, overrides, nil
}
