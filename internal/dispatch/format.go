package dispatch

import (
	"fmt"
	"regexp"
	"strings"
)

// Render produces the fixed tagged-text envelope for an outcome. The
// formatter is total over the three variants; every dispatch result renders
// into exactly one of fabric_result, fabric_error, or fabric_suggestions.
// Body content passes through byte-for-byte; only attribute values are
// escaped.
func Render(o Outcome) string {
	switch v := o.(type) {
	case Success:
		return fmt.Sprintf("<fabric_result pattern=\"%s\" auto_selected=\"%t\">\n%s\n</fabric_result>",
			escapeAttr(v.Pattern), v.AutoSelected, v.Body)

	case Failure:
		src := v.Source
		if src == "" {
			src = "n/a"
		}
		return fmt.Sprintf("<fabric_error source=\"%s\">\n%s\n</fabric_error>",
			escapeAttr(src), v.Message)

	case SuggestionSet:
		var b strings.Builder
		fmt.Fprintf(&b, "<fabric_suggestions task=\"%s\">\n", escapeAttr(v.Task))
		b.WriteString("No pattern matched this task. Closest candidates:\n")
		for i, s := range v.Suggestions {
			fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, s.Pattern, s.Rationale)
		}
		if v.Hint != "" {
			b.WriteString(v.Hint + "\n")
		}
		b.WriteString("</fabric_suggestions>")
		return b.String()

	default:
		// Unreachable for the sealed Outcome variants; still never emit
		// untagged output.
		return "<fabric_error source=\"n/a\">\nunknown outcome\n</fabric_error>"
	}
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

var attrUnescaper = strings.NewReplacer(
	"&quot;", `"`,
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
)

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

var resultPattern = regexp.MustCompile(`(?s)^<fabric_result pattern="([^"]*)" auto_selected="(true|false)">\n(.*)\n</fabric_result>$`)

// ParseResult parses a fabric_result envelope back into a Success value.
// The inverse of Render for the success case; returns false when the input
// is not a well-formed success envelope.
func ParseResult(s string) (Success, bool) {
	m := resultPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Success{}, false
	}
	return Success{
		Pattern:      attrUnescaper.Replace(m[1]),
		AutoSelected: m[2] == "true",
		Body:         m[3],
	}, true
}
