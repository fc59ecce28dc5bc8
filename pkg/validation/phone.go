package validation

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is assumed for numbers typed without a country code.
const DefaultPhoneRegion = "BR"

// NormalizePhone formats raw as E.164. Numbers without a leading "+" are
// parsed in DefaultPhoneRegion. It is used to enrich accepted submissions and
// never takes part in the rule table: the phone rule only requires a value.
func NormalizePhone(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return "", fmt.Errorf("validation: phone is empty")
	}

	num, err := phonenumbers.Parse(clean, DefaultPhoneRegion)
	if err != nil {
		return "", fmt.Errorf("validation: parse phone: %w", err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("validation: invalid phone number %q", raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
