package prompt

import "strings"

// DefaultTemplate is rendered for every query. The placeholder is replaced
// by plain concatenation, so the query text is never re-parsed.
const DefaultTemplate = `Question: {question}

    Answer: Let's think step by step.`

const placeholder = "{question}"

type Builder struct {
	prefix string
	suffix string
}

func NewBuilder() *Builder {
	return NewBuilderFromTemplate(DefaultTemplate)
}

// NewBuilderFromTemplate splits tmpl around its first {question} placeholder.
// A template without the placeholder gets the query appended at the end.
func NewBuilderFromTemplate(tmpl string) *Builder {
	prefix, suffix, found := strings.Cut(tmpl, placeholder)
	if !found {
		return &Builder{prefix: tmpl}
	}

	return &Builder{
		prefix: prefix,
		suffix: suffix,
	}
}

func (b *Builder) Build(query string) string {
	var sb strings.Builder
	sb.Grow(len(b.prefix) + len(query) + len(b.suffix))
	sb.WriteString(b.prefix)
	sb.WriteString(query)
	sb.WriteString(b.suffix)
	return sb.String()
}
