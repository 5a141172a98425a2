package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateDensity validates an element density (elements per meter of
// perimeter). Densities must be finite and non-negative; zero is a legal
// value meaning "no elements of this kind".
func ValidateDensity(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s cannot be negative, got %g", name, v)
	}
	return nil
}

// ValidateSpacing validates a spacing or clearance distance in meters.
// Spacings must be finite and non-negative.
func ValidateSpacing(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s cannot be negative, got %g", name, v)
	}
	return nil
}

// ValidateSeed validates a generation seed. Seeds are non-negative so that
// derived child seeds stay within [0, 2^31) by construction.
func ValidateSeed(seed int64) error {
	if seed < 0 {
		return New(ErrCodeInvalidSeed, "seed cannot be negative, got %d", seed)
	}
	return nil
}

// ValidateFloorHeights validates a per-floor height list against the floor
// count. An empty list is allowed (a default height applies); otherwise the
// lengths must match and every height must be positive.
func ValidateFloorHeights(heights []float64, floors int) error {
	if len(heights) == 0 {
		return nil
	}
	if len(heights) != floors {
		return New(ErrCodeInvalidConfig,
			"floor heights length must match number of floors: %d heights for %d floors",
			len(heights), floors)
	}
	for i, h := range heights {
		if math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
			return New(ErrCodeInvalidConfig, "floor %d height must be positive, got %g", i, h)
		}
	}
	return nil
}

// ValidatePlanName validates a plan name for safety and correctness.
// Names end up in file paths and store keys, so the rules are conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidatePlanName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "plan name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "plan name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "plan name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "plan name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateRecordID validates a store record identifier. IDs are UUIDs or
// similar opaque tokens; the check only rejects values that could escape a
// path or key namespace.
func ValidateRecordID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "record id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "record id too long (max 64 characters)")
	}
	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "record id contains invalid characters")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "record id contains invalid control characters")
		}
	}
	return nil
}
