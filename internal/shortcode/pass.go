package shortcode

import (
	"regexp"
	"strings"
)

// Pass rewrites one shortcode kind into markers. It receives the
// representation set resolved for the content item and only runs the
// patterns for shapes that are present. The returned count is the number of
// spans actually replaced; spans left alone (for example an embed URL that
// cannot be resolved) are not counted.
type Pass interface {
	Kind() string
	Rewrite(content string, rep Representation) (string, int)
}

// replace substitutes every match of re with the output of fn. When fn
// returns ok=false the match is kept as-is and not counted.
func replace(re *regexp.Regexp, content string, fn func(groups []string) (string, bool)) (string, int) {
	locs := re.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return content, 0
	}

	var (
		sb    strings.Builder
		last  int
		count int
	)
	sb.Grow(len(content))

	for _, loc := range locs {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = content[loc[2*i]:loc[2*i+1]]
			}
		}

		sb.WriteString(content[last:loc[0]])
		if out, ok := fn(groups); ok {
			sb.WriteString(out)
			count++
		} else {
			sb.WriteString(groups[0])
		}
		last = loc[1]
	}
	sb.WriteString(content[last:])

	return sb.String(), count
}

// replaceLiteral substitutes every match with a fixed string.
func replaceLiteral(re *regexp.Regexp, content, with string) (string, int) {
	return replace(re, content, func([]string) (string, bool) { return with, true })
}

// marker formats {{kind:payload}} or {{kind}} when payload is empty.
func marker(kind, payload string) string {
	if payload == "" {
		return "{{" + kind + "}}"
	}
	return "{{" + kind + ":" + payload + "}}"
}

// safePayload rejects payloads that would break the marker syntax.
func safePayload(s string) bool {
	return s != "" && !strings.ContainsAny(s, "{}\n\r")
}
