package markdown

import "strings"

var (
	inlineTargetEscaper = strings.NewReplacer(
		"%", "%25", " ", "%20", "\t", "%09", "#", "%23",
		"(", "%28", ")", "%29", "<", "%3C", ">", "%3E", `\`, "%5C",
	)
	angleTargetEscaper = strings.NewReplacer(
		"%", "%25", "#", "%23", "<", "%3C", ">", "%3E", `\`, "%5C",
	)
	attributeTargetEscaper = strings.NewReplacer(
		"%", "%25", "#", "%23", `"`, "%22", `\`, "%5C",
	)
)

// FormatTarget writes a path as link target text for the given form, so that
// parsing the written link yields p again as its TargetPath. Inline targets
// percent-encode whitespace and parentheses; angle targets keep spaces;
// attribute targets encode double quotes.
func FormatTarget(form LinkForm, p string) string {
	switch form {
	case FormAngle:
		return angleTargetEscaper.Replace(p)
	case FormHref, FormDataRef:
		return attributeTargetEscaper.Replace(p)
	default:
		return inlineTargetEscaper.Replace(p)
	}
}
