// Package prompt provides the template rendering and response
// post-processing used by the solve pipelines. Templates use single-brace
// placeholders ({problem}, {code_example}) to stay wire-compatible with the
// prompt formats the downstream execution harness expects.
package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern matches single-brace placeholders such as {problem}.
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// TemplateError indicates that a template was rendered without values for
// one or more of its placeholders.
type TemplateError struct {
	// Missing lists the placeholder names that had no value, in template order.
	Missing []string
}

// Error returns the missing placeholders in a single diagnostic line.
func (e *TemplateError) Error() string {
	return fmt.Sprintf("template render failed: missing values for placeholders [%s]",
		strings.Join(e.Missing, ", "))
}

// Template is an immutable prompt template with named single-brace
// placeholders. The zero value renders to the empty string.
type Template struct {
	raw          string
	placeholders []string
}

// New parses raw into a Template, recording the distinct placeholder names
// in order of first appearance.
func New(raw string) Template {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(raw, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return Template{raw: raw, placeholders: names}
}

// Raw returns the unrendered template text.
func (t Template) Raw() string { return t.raw }

// Placeholders returns the distinct placeholder names in order of first
// appearance. The returned slice must not be mutated.
func (t Template) Placeholders() []string { return t.placeholders }

// Render substitutes inputs into the template. Every placeholder must have
// a value; otherwise a *TemplateError listing all missing names is returned.
// Keys in inputs without a matching placeholder are ignored.
func (t Template) Render(inputs map[string]string) (string, error) {
	var missing []string
	for _, name := range t.placeholders {
		if _, ok := inputs[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", &TemplateError{Missing: missing}
	}

	return placeholderPattern.ReplaceAllStringFunc(t.raw, func(m string) string {
		return inputs[m[1:len(m)-1]]
	}), nil
}
