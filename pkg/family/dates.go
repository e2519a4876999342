package family

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

var yearRe = regexp.MustCompile(`\b(\d{3,4})\b`)

// Year extracts the calendar year from a free-form date string.
// Full dates and year-month values go through dateparse; qualified values
// such as "c. 1850" or "abt 1900" fall back to the first 3-4 digit number.
func Year(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		return t.Year(), true
	}
	if m := yearRe.FindStringSubmatch(s); m != nil {
		y, err := strconv.Atoi(m[1])
		return y, err == nil
	}
	return 0, false
}

// Lifespan renders "born – died" from the year components of a person's
// dates. Unknown ends are left blank; the result is empty when neither date
// is known.
func (p Person) Lifespan() string {
	born, okB := Year(p.Born)
	died, okD := Year(p.Died)
	switch {
	case okB && okD:
		return strconv.Itoa(born) + " – " + strconv.Itoa(died)
	case okB:
		return "b. " + strconv.Itoa(born)
	case okD:
		return "d. " + strconv.Itoa(died)
	}
	return ""
}
