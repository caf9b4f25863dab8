package checkout

import "regexp"

// Checkout session ids look like cs_test_<body> or cs_live_<body> with an
// alphanumeric body of at least 24 characters. Anything else, including
// truncated ids and template placeholders, is rejected before it reaches
// the provider's session-retrieve call.
var sessionIDPattern = regexp.MustCompile(`^cs_(test|live)_[A-Za-z0-9]{24,}$`)

func validSessionID(id string) bool {
	return sessionIDPattern.MatchString(id)
}
