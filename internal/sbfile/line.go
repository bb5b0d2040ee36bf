package sbfile

import (
	"fmt"
	"strings"
)

// record is one parsed `(keyword fields...) #comment` line.
type record struct {
	keyword string
	fields  []string
	comment string // without the leading '#'
}

// parseLine splits a raw line into its record, or ok=false for blank lines,
// pure comments, and anything that does not follow the parenthesized shape.
// Such lines are preserved verbatim by the caller.
func parseLine(raw string) (record, bool) {
	text := strings.TrimSpace(raw)
	if text == "" || strings.HasPrefix(text, "#") {
		return record{}, false
	}
	if !strings.HasPrefix(text, "(") {
		return record{}, false
	}

	closing := findClosing(text)
	if closing < 0 {
		return record{}, false
	}

	body := text[1:closing]
	comment := strings.TrimSpace(text[closing+1:])
	if strings.HasPrefix(comment, "#") {
		comment = strings.TrimSpace(comment[1:])
	} else if comment != "" {
		// trailing junk that is not a comment: keep the line verbatim
		return record{}, false
	}

	fields := splitFields(body)
	if len(fields) == 0 {
		return record{}, false
	}
	return record{keyword: strings.ToLower(fields[0]), fields: fields[1:], comment: comment}, true
}

// findClosing locates the parenthesis closing the record, honoring quoted
// strings.
func findClosing(text string) int {
	inQuote := false
	for i := 1; i < len(text); i++ {
		switch text[i] {
		case '"':
			inQuote = !inQuote
		case ')':
			if !inQuote {
				return i
			}
		}
	}
	return -1
}

// splitFields tokenizes the record body, honoring double-quoted fields.
func splitFields(body string) []string {
	var fields []string
	var current strings.Builder
	inQuote := false
	flush := func() {
		if current.Len() > 0 {
			fields = append(fields, current.String())
			current.Reset()
		}
	}
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case ch == '"':
			inQuote = !inQuote
			if !inQuote {
				fields = append(fields, current.String())
				current.Reset()
			}
		case !inQuote && (ch == ' ' || ch == '\t'):
			flush()
		default:
			current.WriteByte(ch)
		}
	}
	flush()
	return fields
}

// formatLine renders a record back to its canonical text form.
func formatLine(keyword string, fields []string, comment string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(keyword)
	for _, field := range fields {
		sb.WriteByte(' ')
		sb.WriteString(quoteField(field))
	}
	sb.WriteByte(')')
	if comment != "" {
		sb.WriteString(" # ")
		sb.WriteString(comment)
	}
	return sb.String()
}

func quoteField(field string) string {
	if field == "" || strings.ContainsAny(field, " \t()#") {
		return fmt.Sprintf("\"%s\"", field)
	}
	return field
}
