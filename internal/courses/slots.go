package courses

import (
	"regexp"
	"strconv"
	"strings"
)

type weekday uint8

const (
	monday weekday = 1 << iota
	tuesday
	wednesday
	thursday
	friday
	saturday
	sunday
)

// Two-letter tokens come first so "th" wins over "t" and "fr" is not read as
// "f" plus "r".
var dayTokens = []struct {
	token string
	day   weekday
}{
	{"mo", monday},
	{"tu", tuesday},
	{"we", wednesday},
	{"th", thursday},
	{"fr", friday},
	{"sa", saturday},
	{"su", sunday},
	{"m", monday},
	{"t", tuesday},
	{"w", wednesday},
	{"r", thursday},
	{"f", friday},
}

var slotPattern = regexp.MustCompile(
	`(?i)^\s*([a-z]+)\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm|a|p)?` +
		`(?:\s*-\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm|a|p)?)?\s*$`,
)

type slot struct {
	days  weekday
	start int
	end   int
	raw   string
	timed bool
}

func (s slot) overlaps(o slot) bool {
	if s.timed && o.timed {
		return s.days&o.days != 0 && s.start < o.end && o.start < s.end
	}
	return s.raw == o.raw
}

// SlotsOverlap reports whether any slot in a intersects any slot in b.
func SlotsOverlap(a, b []string) bool {
	for _, x := range a {
		sx := parseSlot(x)
		for _, y := range b {
			if sx.overlaps(parseSlot(y)) {
				return true
			}
		}
	}
	return false
}

func parseSlot(s string) slot {
	raw := strings.ToLower(strings.Join(strings.Fields(s), ""))
	out := slot{raw: raw}

	m := slotPattern.FindStringSubmatch(s)
	if m == nil {
		return out
	}

	days, ok := parseDays(strings.ToLower(m[1]))
	if !ok {
		return out
	}

	startH, _ := strconv.Atoi(m[2])
	startM := atoiOr(m[3], 0)
	startMer := meridiem(m[4])

	if m[5] == "" {
		start, ok := clock(startH, startM, startMer)
		if !ok {
			return out
		}
		out.days, out.start, out.end, out.timed = days, start, start+60, true
		return out
	}

	endH, _ := strconv.Atoi(m[5])
	endM := atoiOr(m[6], 0)
	endMer := meridiem(m[7])

	var start, end int
	var okS, okE bool

	switch {
	case startMer != "" && endMer != "":
		start, okS = clock(startH, startM, startMer)
		end, okE = clock(endH, endM, endMer)
	case endMer != "":
		end, okE = clock(endH, endM, endMer)
		start, okS = clock(startH, startM, endMer)
		if okS && start >= end {
			start, okS = clock(startH, startM, "")
		}
	case startMer != "":
		start, okS = clock(startH, startM, startMer)
		end, okE = clock(endH, endM, startMer)
		if okE && end <= start {
			end += 12 * 60
		}
	default:
		start, okS = clock(startH, startM, "")
		end, okE = clock(endH, endM, "")
		if okS && okE && end <= start {
			end += 12 * 60
		}
	}

	if !okS || !okE || end <= start {
		return out
	}

	out.days, out.start, out.end, out.timed = days, start, end, true
	return out
}

func parseDays(s string) (weekday, bool) {
	var days weekday
	for len(s) > 0 {
		matched := false
		for _, d := range dayTokens {
			if strings.HasPrefix(s, d.token) {
				days |= d.day
				s = s[len(d.token):]
				matched = true
				break
			}
		}
		if !matched {
			return 0, false
		}
	}
	return days, days != 0
}

func meridiem(s string) string {
	switch strings.ToLower(s) {
	case "am", "a":
		return "am"
	case "pm", "p":
		return "pm"
	}
	return ""
}

// clock converts an hour/minute pair to minutes after midnight. Without a
// meridiem, hours 1 through 7 are read as afternoon class hours.
func clock(h, m int, mer string) (int, bool) {
	if m < 0 || m > 59 || h < 0 || h > 23 {
		return 0, false
	}

	switch mer {
	case "am":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h == 12 {
			h = 0
		}
	case "pm":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h != 12 {
			h += 12
		}
	default:
		if h >= 1 && h <= 7 {
			h += 12
		}
	}

	return h*60 + m, true
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
