package mailer

import "strings"

// RenderBody substitutes the verdict details into the body template at the
// literal {details} token, all occurrences. A template without the token
// is sent unchanged.
func RenderBody(tmpl, details string) string {
	return strings.ReplaceAll(tmpl, "{details}", details)
}
