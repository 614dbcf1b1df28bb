package render

import (
	"io"
	"strings"
)

// Entity replacements for element text and for quoted attribute values.
// Attribute values additionally encode whitespace that could terminate the
// quoted value early.
var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// escapeTextTo streams s into w with element-content escaping. Text without
// special characters passes through without an intermediate copy.
func escapeTextTo(w io.Writer, s string) error {
	_, err := textEscaper.WriteString(w, s)
	return err
}

// escapeAttr escapes an attribute value. Attribute fragments are built as
// strings because they feed the intern pool.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
