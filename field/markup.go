package field

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	questionPolicyOnce sync.Once
	questionPolicy     *bluemonday.Policy
)

// CleanQuestion strips markup from label text so it can be laid out as
// plain words. Data dictionaries exported from survey tools wrap labels in
// layout tags such as <div style="padding-left: 3em">; those tags, and any
// other element, are removed and entities are decoded.
func CleanQuestion(raw string) string {
	if !strings.ContainsAny(raw, "<&") {
		return strings.TrimSpace(raw)
	}
	cleaned := questionSanitizer().Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func questionSanitizer() *bluemonday.Policy {
	questionPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		// "<div>a</div><div>b</div>" must not become "ab".
		policy.AddSpaceWhenStrippingTag(true)
		questionPolicy = policy
	})
	return questionPolicy
}
