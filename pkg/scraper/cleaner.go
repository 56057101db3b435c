package scraper

import (
	"regexp"
	"strings"
)

// stripRule is one boilerplate removal step: a name, a pattern, and its
// replacement. Rules run in order; new rules are appended, never
// reordered, so each stays independently testable.
type stripRule struct {
	name string
	re   *regexp.Regexp
	repl string
}

var boilerplateRules = []stripRule{
	{"ga-cookie-details", regexp.MustCompile(`(?is)### Cookies used by Google Analytics.*?Close\s*`), ""},
	{"cookie-banner", regexp.MustCompile(`(?is)## Cookies on.*?Manage my preferences\s*`), ""},
	{"cookie-controls", regexp.MustCompile(`(?i)(accept all cookies|manage cookies|cookie preferences).*?\n`), ""},
	{"skip-links", regexp.MustCompile(`(?i)(skip to main content|skip navigation).*?\n`), ""},
	{"analytics-prompt", regexp.MustCompile(`(?is)Allow analytics cookies.*?Close\s*`), ""},
	{"share-widgets", regexp.MustCompile(`(?s)\[Share to Facebook\].*?\[Print This Page\].*?\n`), ""},
	{"back-to-top", regexp.MustCompile(`\[Back to top\].*?\n`), ""},
	{"score-suffix", regexp.MustCompile(`(?m)\n\d+\.\d+\s*$`), ""},
	{"manage-footer", regexp.MustCompile(`## Manage\s*\nManage preferences\s*$`), ""},
	{"broken-heading", regexp.MustCompile(`\[\s*\n#`), "# "},
	{"blank-lines", regexp.MustCompile(`\n\s*\n\s*\n`), "\n\n"},
	{"spaces", regexp.MustCompile(`[ \t]+`), " "},
}

// CleanContent strips cookie banners, navigation chrome, and sharing
// widgets from scraped prose, then tidies the remaining whitespace.
// The chain is idempotent: CleanContent(CleanContent(x)) == CleanContent(x).
func CleanContent(content string) string {
	if content == "" {
		return ""
	}
	for _, rule := range boilerplateRules {
		content = rule.re.ReplaceAllString(content, rule.repl)
	}
	return strings.TrimSpace(content)
}
