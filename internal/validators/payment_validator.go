package validators

import (
	"strings"
)

// CardErrors validates card fields before a simulated charge. Every
// failed field gets its own message so the form can highlight it.
func CardErrors(holder, number, expiry, cvv string) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(holder) == "" {
		errs["cardHolder"] = "Cardholder name is required"
	}

	stripped := strings.ReplaceAll(number, " ", "")
	switch {
	case stripped == "":
		errs["cardNumber"] = "Card number is required"
	case !cardNumberRegex.MatchString(stripped):
		errs["cardNumber"] = "Card number must be 16 digits"
	}

	switch {
	case strings.TrimSpace(expiry) == "":
		errs["expiry"] = "Expiry is required"
	case !cardExpiryRegex.MatchString(expiry):
		errs["expiry"] = "Expiry must be in MM/YY format"
	}

	switch {
	case strings.TrimSpace(cvv) == "":
		errs["cvv"] = "CVV is required"
	case !cvvRegex.MatchString(cvv):
		errs["cvv"] = "CVV must be 3 or 4 digits"
	}

	return errs
}
