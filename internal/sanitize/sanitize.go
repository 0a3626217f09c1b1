// Package sanitize strips markup from operator-entered text before it is
// stored or sent to a device. Settings are plain text; the device firmware
// renders some of them (device name, location) on its own status page
// without escaping.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton bluemonday policy. StrictPolicy allows no
// elements at all, so every tag is removed and only text survives.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text removes every HTML element from input and returns plain text.
// bluemonday escapes the text it keeps; that escaping is undone so "a & b"
// is stored as typed and templates escape it once on output.
func Text(input string) string {
	if input == "" || !strings.ContainsAny(input, "<>&") {
		return input
	}
	return html.UnescapeString(getPolicy().Sanitize(input))
}
