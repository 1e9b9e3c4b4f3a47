// Package convert provides loose-value conversion utilities for payloads
// decoded from JSON. This package has no dependencies on other internal
// packages to avoid circular imports.
package convert

import (
	"encoding/json"
	"strconv"

	"github.com/goatkit/mockdesk/internal/apierrors"
)

// NormalizeID coerces an identifier-like value into its canonical int64 form.
// JSON decoding yields float64 for numbers; clients also send ids as numeric
// strings. Every id crossing from an external payload into an internal record
// must pass through here, so "123" and 123 can never diverge into duplicate
// or missing-lookup bugs.
func NormalizeID(v any) (int64, error) {
	switch val := v.(type) {
	case int:
		return checkPositive(int64(val))
	case int64:
		return checkPositive(val)
	case float64:
		n := int64(val)
		if float64(n) != val {
			return 0, apierrors.Newf(apierrors.CodeValidationFailed, "id is not an integer: %v", val)
		}
		return checkPositive(n)
	case string:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0, apierrors.Newf(apierrors.CodeValidationFailed, "id does not parse as an integer: %q", val)
		}
		return checkPositive(n)
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return 0, apierrors.Newf(apierrors.CodeValidationFailed, "id does not parse as an integer: %q", val.String())
		}
		return checkPositive(n)
	}
	return 0, apierrors.Newf(apierrors.CodeValidationFailed, "id has unsupported type: %v", v)
}

func checkPositive(n int64) (int64, error) {
	if n <= 0 {
		return 0, apierrors.Newf(apierrors.CodeValidationFailed, "id must be a positive integer: %d", n)
	}
	return n, nil
}

// ToString converts loose values to string with a fallback.
// Handles string, int, int64, float64, and bool types.
func ToString(v any, fallback string) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return fallback
}

// ToBool converts loose values to bool with a fallback.
func ToBool(v any, fallback bool) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

// ToStringSlice converts a decoded JSON array into a string slice.
// Returns false when v is present but not an array of strings.
func ToStringSlice(v any) ([]string, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
