package index

import (
	"fmt"
	"strings"

	"github.com/geodex-search/geodex/internal/domain/search/query"
)

// Serialize renders a query tree as a RediSearch dialect-2 query string.
// Filter clauses are joined by space (implicit AND). Should clauses must not
// exclude documents that match the filters, so next to filters each one is
// emitted with the optional operator (`~clause`); with no filters present
// they form a single `(a | b | c)` group, where at least one must match.
// Nested paths flatten to <path>_<field> index fields, matching the flat
// hash layout the index stores documents in.
func Serialize(q query.Bool) string {
	s := serializeBool(q, "")
	if s == "" {
		return "*"
	}
	return s
}

func serializeBool(b query.Bool, path string) string {
	parts := make([]string, 0, len(b.Filter)+len(b.Should))
	for _, c := range b.Filter {
		if p := serializeClause(c, path); p != "" {
			parts = append(parts, p)
		}
	}

	should := make([]string, 0, len(b.Should))
	for _, c := range b.Should {
		if p := serializeClause(c, path); p != "" {
			should = append(should, p)
		}
	}

	if len(parts) == 0 {
		if len(should) > 0 {
			parts = append(parts, "("+strings.Join(should, " | ")+")")
		}
	} else {
		for _, p := range should {
			parts = append(parts, "~"+p)
		}
	}
	return strings.Join(parts, " ")
}

func serializeClause(c query.Clause, path string) string {
	switch c := c.(type) {
	case query.Match:
		field := fieldName(path, c.Field)
		if c.Boost > 0 {
			return fmt.Sprintf("(@%s:(%s) => { $weight: %g })", field, escapeText(c.Text), c.Boost)
		}
		return fmt.Sprintf("@%s:(%s)", field, escapeText(c.Text))

	case query.Term:
		return fmt.Sprintf("@%s:{%s}", fieldName(path, c.Field), escapeTag(c.Value))

	case query.Nested:
		inner := serializeBool(c.Query, fieldName(path, c.Path))
		if inner == "" {
			return ""
		}
		return "(" + inner + ")"

	case query.Bool:
		inner := serializeBool(c, path)
		if inner == "" {
			return ""
		}
		return "(" + inner + ")"
	}
	return ""
}

func fieldName(path, field string) string {
	if path == "" {
		return field
	}
	return path + "_" + field
}

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func escapeTag(s string) string {
	return tagEscaper.Replace(s)
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
)

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)
