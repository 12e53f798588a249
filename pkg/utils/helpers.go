package utils

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// defaultCountryCode is prefixed to phone numbers that arrive without one
const defaultCountryCode = "55"

// GenerateRequestID generates a unique request ID for tracking
func GenerateRequestID() string {
	return uuid.New().String()
}

// BuildWhatsAppLink builds a direct-message deep link with a pre-filled
// greeting from a raw phone number. Non-digits are stripped and the default
// country code is prefixed when absent.
func BuildWhatsAppLink(phone, candidateName string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	number := digits.String()
	if !strings.HasPrefix(number, defaultCountryCode) {
		number = defaultCountryCode + number
	}

	message := url.QueryEscape(fmt.Sprintf(
		"Hi %s! I saw your application and would love to talk about the opportunity.",
		candidateName,
	))

	return fmt.Sprintf("https://wa.me/%s?text=%s", number, message)
}

// NormalizeEmail lowercases and trims an email address so that duplicate
// detection is case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
