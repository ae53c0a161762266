package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed is returned when no JSON value in the content decodes into the target.
var ErrParseFailed = errors.New("failed to parse response")

var fencePattern = regexp.MustCompile("(?s)```(?:json|JSON)?[ \t]*\r?\n?(.*?)\r?\n?```")

// Parse decodes a model reply into T. Replies are tried in order as raw JSON,
// as the body of a markdown code fence, and as the outermost object or array
// embedded in surrounding prose.
func Parse[T any](content string) (T, error) {
	var result T

	for _, candidate := range candidates(content) {
		var v T
		if err := json.Unmarshal([]byte(candidate), &v); err == nil {
			return v, nil
		}
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, truncate(strings.TrimSpace(content), 256))
}

func candidates(content string) []string {
	content = strings.TrimSpace(content)
	out := []string{content}

	if m := fencePattern.FindStringSubmatch(content); len(m) == 2 {
		out = append(out, strings.TrimSpace(m[1]))
	}

	if span, ok := enclosed(content, '{', '}'); ok {
		out = append(out, span)
	}
	if span, ok := enclosed(content, '[', ']'); ok {
		out = append(out, span)
	}

	return out
}

func enclosed(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
