package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

// ValidateTenantID validates tenant ID format
func ValidateTenantID(tenant string) error {
	if tenant == "" {
		return fmt.Errorf("tenant ID cannot be empty")
	}

	// Allow alphanumeric, dash, underscore (max 64 chars)
	pattern := `^[a-zA-Z0-9_-]{1,64}$`
	matched, _ := regexp.MatchString(pattern, tenant)
	if !matched {
		return fmt.Errorf("invalid tenant ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}

	return nil
}

// ValidateUserID validates user ID format
func ValidateUserID(userID string) error {
	if userID == "" {
		return fmt.Errorf("user ID cannot be empty")
	}

	pattern := `^[a-zA-Z0-9@._-]{1,128}$`
	matched, _ := regexp.MatchString(pattern, userID)
	if !matched {
		return fmt.Errorf("invalid user ID format")
	}

	return nil
}

// ValidatePassID validates pass ID format (plain UUID)
func ValidatePassID(passID string) error {
	if passID == "" {
		return fmt.Errorf("pass ID cannot be empty")
	}

	pattern := `^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`
	matched, _ := regexp.MatchString(pattern, passID)
	if !matched {
		return fmt.Errorf("invalid pass ID format")
	}

	return nil
}

// ValidateTier validates a tier filter value
func ValidateTier(tier int) error {
	if tier < 0 || tier > 4 {
		return fmt.Errorf("invalid tier: %d (allowed: 0-4)", tier)
	}
	return nil
}

// ValidateDiversityRatio validates a diversity ratio value
func ValidateDiversityRatio(r float64) error {
	if r < 0 || r > 1 {
		return fmt.Errorf("invalid diversity ratio: %v (allowed: 0-1)", r)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}

// ValidateFeedSize validates feed size parameter
func ValidateFeedSize(size int) int {
	if size <= 0 {
		return 20 // default
	}
	if size > 100 {
		return 100 // max feed length
	}
	return size
}
