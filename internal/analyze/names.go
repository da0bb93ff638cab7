package analyze

import (
	"strings"
	"unicode"
)

// LowerCamel lower-cases the leading upper-case run of a Go identifier,
// keeping the last capital when it starts the next word ("URLPath" -> "urlPath").
func LowerCamel(s string) string {
	runes := []rune(s)

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	switch {
	case n == 0:
		return s
	case n > 1 && n < len(runes) && unicode.IsLower(runes[n]):
		n--
	}

	for i := range n {
		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}

// directive is one parsed marker line, e.g. "projmeta:projection entity=Customer".
type directive struct {
	kind string
	args map[string]string
}

func parseDirective(line string) directive {
	fields := strings.Fields(strings.TrimPrefix(line, DirectivePrefix))

	d := directive{args: make(map[string]string)}
	if len(fields) == 0 {
		return d
	}

	d.kind = fields[0]

	for _, f := range fields[1:] {
		key, value, _ := strings.Cut(f, "=")
		d.args[key] = value
	}

	return d
}

// tagOptions splits a comma-separated tag value, dropping blanks.
func tagOptions(tag string) []string {
	var opts []string

	for opt := range strings.SplitSeq(tag, ",") {
		if opt = strings.TrimSpace(opt); opt != "" {
			opts = append(opts, opt)
		}
	}

	return opts
}
