package shopping

import (
	"net/url"
	"strings"
)

// WhatsAppLink renders the deep link that hands the formatted text to
// WhatsApp. Callers fall back to the generic share path when the link
// cannot be opened.
func WhatsAppLink(text string) string {
	// Query-escape, but with %20 for spaces as deep links expect.
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "whatsapp://send?text=" + escaped
}
