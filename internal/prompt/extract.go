package prompt

import (
	"regexp"
	"strings"
)

// fencePattern matches the first triple-backtick fenced block, optionally
// annotated with a language tag ("```python\n...```").
var fencePattern = regexp.MustCompile("(?s)```[a-zA-Z0-9_+-]*[ \t]*\\n?(.*?)```")

// ExtractCode returns the whitespace-trimmed contents of the first fenced
// code block in s. When s contains no fenced block, s is returned unchanged.
// The fallback can hand malformed model output to the execution harness
// verbatim; it is kept because downstream tooling depends on it.
func ExtractCode(s string) string {
	m := fencePattern.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	return strings.TrimSpace(m[1])
}
