package richtext

import "strings"

// htmlEscaper replaces the five characters that are significant in HTML
// text and attribute values. html.EscapeString writes &#34; for the double
// quote; the converter's output uses &quot;.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes literal text or a URL for inclusion in HTML.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
