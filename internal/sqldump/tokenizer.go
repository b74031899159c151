package sqldump

import (
	"strconv"
	"strings"
)

// SplitRow splits the inside of one SQL value tuple into its fields.
//
// Commas separate top-level fields; single-quoted strings may contain literal
// commas and backslash-escaped characters. A backslash is never emitted itself:
// the character that follows it is appended verbatim. Surrounding whitespace and
// single quotes are stripped from every field.
//
// For a row with balanced quotes the result has one more field than the row
// has unescaped top-level commas. Unbalanced quotes are not reported: the scan simply ends with the wrong
// quote state and whatever fields it produced.
func SplitRow(row string) []string {
	var (
		fields     []string
		cur        strings.Builder
		inQuotes   bool
		escapeNext bool
	)

	flush := func() {
		fields = append(fields, trimField(cur.String()))
		cur.Reset()
	}

	for _, r := range row {
		switch {
		case escapeNext:
			cur.WriteRune(r)
			escapeNext = false
		case r == '\\':
			escapeNext = true
		case r == '\'':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			flush()
		default:
			cur.WriteRune(r)
		}
	}

	// The trailing field is pending whenever the row had any content, even if
	// it was an empty quoted string.
	if row != "" {
		flush()
	}
	return fields
}

func trimField(s string) string {
	return strings.Trim(strings.TrimSpace(s), "'")
}

// IsNull reports whether a tokenized field is the SQL NULL literal.
// The tokenizer keeps NULL as text; callers decide what it means.
func IsNull(field string) bool {
	return field == "NULL"
}

// OrEmpty maps the NULL literal to "".
func OrEmpty(field string) string {
	if IsNull(field) {
		return ""
	}
	return field
}

// ParseID converts a digit-only field to an int. Anything else yields 0.
func ParseID(field string) int {
	if field == "" {
		return 0
	}
	for _, r := range field {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0
	}
	return n
}
