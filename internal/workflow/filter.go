package workflow

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/JaimeStill/registrar/internal/courses"
)

// Filter removes courses the student has already taken. Surviving courses
// keep their catalog order.
func Filter(catalog []courses.Course, taken []string) []courses.Course {
	entries := make([]takenEntry, 0, len(taken))
	for _, t := range taken {
		entries = append(entries, newTakenEntry(t))
	}

	out := make([]courses.Course, 0, len(catalog))
	for _, c := range catalog {
		code := courseCode{
			id:      strconv.Itoa(c.ID),
			key:     courses.CodeKey(c.Code),
			compact: compact(c.Code),
		}

		if slices.ContainsFunc(entries, code.takenBy) {
			continue
		}
		out = append(out, c)
	}
	return out
}

type courseCode struct {
	id      string
	key     string
	compact string
}

type takenEntry struct {
	fields  []string
	keys    map[string]struct{}
	compact string
	suffix  string
}

func newTakenEntry(s string) takenEntry {
	e := takenEntry{
		fields:  strings.FieldsFunc(s, notAlnum),
		keys:    codeKeys(s),
		compact: compact(s),
	}

	if key := courses.CodeKey(s); strings.ContainsFunc(key, unicode.IsDigit) {
		e.suffix = key
	}
	return e
}

func (c courseCode) takenBy(e takenEntry) bool {
	if slices.Contains(e.fields, c.id) {
		return true
	}
	if _, ok := e.keys[c.key]; ok {
		return true
	}
	if contained(e.compact, c.key) || contained(e.compact, c.compact) {
		return true
	}
	return e.suffix != "" && boundarySuffix(c.key, e.suffix)
}

// contained reports whether code appears anywhere in entry. Codes without a
// digit never match, so a bare department name excludes nothing.
func contained(entry, code string) bool {
	return strings.ContainsFunc(code, unicode.IsDigit) && strings.Contains(entry, code)
}

// compact lowercases s and drops everything but letters and digits.
func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if notAlnum(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

func notAlnum(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// boundarySuffix reports whether suffix ends key and begins where key
// switches between letters and digits ("61a" in "cs61a", not "1a").
func boundarySuffix(key, suffix string) bool {
	if !strings.HasSuffix(key, suffix) {
		return false
	}
	i := len(key) - len(suffix)
	if i == 0 {
		return true
	}
	return isLetter(key[i-1]) != isLetter(suffix[0])
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// codeKeys returns the code keys of every run of one to three consecutive
// alphanumeric tokens in text, so "took COMPSCI 61A, CS70" yields "cs61a"
// and "cs70" among others.
func codeKeys(text string) map[string]struct{} {
	tokens := strings.FieldsFunc(text, notAlnum)

	keys := make(map[string]struct{})
	for i := range tokens {
		for n := 1; n <= 3 && i+n <= len(tokens); n++ {
			key := courses.CodeKey(strings.Join(tokens[i:i+n], " "))
			if strings.ContainsFunc(key, unicode.IsDigit) {
				keys[key] = struct{}{}
			}
		}
	}
	return keys
}
