package validators

import (
	"strconv"
	"strings"
)

// SignupErrors validates a signup request the way the public form
// does: valid email, campus domain, minimum password length, matching
// confirmation. Returns field -> message; empty means valid.
func SignupErrors(email, password, confirm, campusDomain string, minPasswordLen int) map[string]string {
	errs := make(map[string]string)

	if !IsValidEmail(email) {
		errs["email"] = "Enter a valid email."
	} else if campusDomain != "" && !strings.HasSuffix(strings.ToLower(email), "@"+campusDomain) {
		errs["email"] = "Please use your @" + campusDomain + " email."
	}

	if len(password) < minPasswordLen {
		errs["password"] = "Minimum " + strconv.Itoa(minPasswordLen) + " characters."
	}

	if confirm != "" && password != confirm {
		errs["confirm"] = "Passwords do not match."
	}

	return errs
}

// LoginErrors validates a login request.
func LoginErrors(email, password string) map[string]string {
	errs := make(map[string]string)

	if !IsValidEmail(email) {
		errs["email"] = "Enter a valid email."
	}
	if password == "" {
		errs["password"] = "Enter your password."
	}

	return errs
}
