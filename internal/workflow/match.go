package workflow

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/JaimeStill/registrar/internal/courses"
)

// DefaultMatchLimit caps the matcher output when no limit is configured.
const DefaultMatchLimit = 10

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {},
	"for": {}, "from": {}, "how": {}, "i": {}, "in": {}, "into": {}, "is": {}, "it": {},
	"its": {}, "like": {}, "me": {}, "my": {}, "of": {}, "on": {}, "or": {}, "some": {},
	"the": {}, "their": {}, "this": {}, "to": {}, "with": {}, "about": {}, "interested": {},
	"interest": {}, "intro": {}, "introduction": {}, "course": {}, "class": {}, "topic": {},
}

var interestAliases = map[string][]string{
	"ai":       {"artificial intelligence"},
	"ml":       {"machine learning"},
	"nlp":      {"natural language processing"},
	"cv":       {"computer vision"},
	"hci":      {"human computer interaction"},
	"os":       {"operating system"},
	"db":       {"database"},
	"security": {"cybersecurity", "cryptography"},
	"web":      {"web development", "internet"},
	"data":     {"data science"},
}

// reverse lookups so "machine learning" also tries "ml"
func init() {
	reverse := make(map[string][]string)
	for short, longs := range interestAliases {
		for _, long := range longs {
			reverse[long] = append(reverse[long], short)
		}
	}
	for long, shorts := range reverse {
		if _, exists := interestAliases[long]; !exists {
			slices.Sort(shorts)
			interestAliases[long] = shorts
		}
	}
}

// Match scores catalog courses against interests with a deterministic
// lexical model and returns at most limit courses with a positive score,
// ordered by score desc, then code, then id.
func Match(catalog []courses.Course, interests []string, limit int) []courses.ScoredCourse {
	if limit < 1 {
		limit = DefaultMatchLimit
	}

	variants := make([]interestVariants, 0, len(interests))
	for _, in := range interests {
		if v := newInterestVariants(in); len(v.sets) > 0 {
			variants = append(variants, v)
		}
	}

	out := []courses.ScoredCourse{}
	if len(variants) == 0 {
		return out
	}

	for _, c := range catalog {
		if sc, ok := score(c, variants); ok {
			out = append(out, sc)
		}
	}

	slices.SortStableFunc(out, func(a, b courses.ScoredCourse) int {
		if c := cmp.Compare(b.AlignmentScore, a.AlignmentScore); c != 0 {
			return c
		}
		if c := cmp.Compare(courses.CodeKey(a.Code), courses.CodeKey(b.Code)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

type interestVariants struct {
	label string
	sets  []tokenSet
}

func newInterestVariants(interest string) interestVariants {
	label := strings.TrimSpace(interest)
	v := interestVariants{label: label}

	phrases := append([]string{label}, interestAliases[strings.ToLower(label)]...)
	for _, p := range phrases {
		if set := tokenize(p); len(set) > 0 {
			v.sets = append(v.sets, set)
		}
	}
	return v
}

type hit struct {
	label string
	title bool
}

func score(c courses.Course, variants []interestVariants) (courses.ScoredCourse, bool) {
	title := tokenize(c.Title)
	full := tokenize(c.Title + " " + c.Description)

	var best, sum float64
	var hits []hit

	for _, v := range variants {
		var r float64
		inTitle := false

		for _, set := range v.sets {
			titleCov := set.coverage(title)
			fullCov := 0.75 * set.coverage(full)

			if titleCov > r {
				r, inTitle = titleCov, true
			}
			if fullCov > r {
				r, inTitle = fullCov, titleCov >= fullCov
			}
		}

		if r > 0 {
			hits = append(hits, hit{label: v.label, title: inTitle})
		}
		best = max(best, r)
		sum += r
	}

	mean := sum / float64(len(variants))
	s := math.Round(10*(0.7*best+0.3*mean)*10) / 10
	s = min(max(s, 0), 10)

	if s == 0 {
		return courses.ScoredCourse{}, false
	}

	return courses.ScoredCourse{
		Course:         c,
		AlignmentScore: s,
		Rationale:      rationale(hits),
	}, true
}

func rationale(hits []hit) string {
	parts := make([]string, len(hits))
	for i, h := range hits {
		where := "description"
		if h.title {
			where = "title"
		}
		parts[i] = fmt.Sprintf("%s (%s)", h.label, where)
	}
	return "Matches interests: " + strings.Join(parts, ", ")
}

type tokenSet map[string]struct{}

func (s tokenSet) coverage(other tokenSet) float64 {
	if len(s) == 0 {
		return 0
	}
	n := 0
	for t := range s {
		if _, ok := other[t]; ok {
			n++
		}
	}
	return float64(n) / float64(len(s))
}

func tokenize(text string) tokenSet {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	set := make(tokenSet, len(fields))
	for _, f := range fields {
		if _, stop := stopwords[f]; stop {
			continue
		}
		set[singular(f)] = struct{}{}
	}
	return set
}

func singular(t string) string {
	if len(t) > 3 && strings.HasSuffix(t, "s") &&
		!strings.HasSuffix(t, "ss") &&
		!strings.HasSuffix(t, "us") &&
		!strings.HasSuffix(t, "is") {
		return t[:len(t)-1]
	}
	return t
}
