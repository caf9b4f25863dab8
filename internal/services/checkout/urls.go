package checkout

import (
	"fmt"
	"net/url"
)

// composeURL merges params into rawURL's query component, preserving any
// pre-existing parameters and the fragment. A parameter that already exists
// is overwritten, not duplicated. A nil value means "do not set".
func composeURL(rawURL string, params map[string]*string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing base url %q: %w", rawURL, err)
	}

	q := u.Query()
	for name, value := range params {
		if value == nil {
			continue
		}
		q.Set(name, *value)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
