package state

import "strings"

// xmlWhitespace is exactly the XML whitespace class: space, tab, CR, LF.
// Go's unicode.IsSpace is deliberately not used here since it also matches
// vertical tab, form feed, and NEL, which XML does not treat as whitespace.
const xmlWhitespace = " \t\r\n"

// isAllWhitespace reports whether value consists entirely of XML whitespace
// characters (the empty string counts as all-whitespace).
func isAllWhitespace(value string) bool {
	return strings.TrimLeft(value, xmlWhitespace) == ""
}

// splitXMLWhitespace splits value on runs of XML whitespace, the way a List
// transition's tokenization does. Leading/trailing whitespace yields no
// empty leading/trailing token (strings.FieldsFunc already drops them).
func splitXMLWhitespace(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return strings.ContainsRune(xmlWhitespace, r)
	})
}
