package podcast

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// SortEpisodes orders episodes in place, stably, using CompareEpisodes.
func SortEpisodes(episodes []Record) {
	slices.SortStableFunc(episodes, CompareEpisodes)
}

// CompareEpisodes orders two episode records:
//
//  1. equal order values (or both missing) fall back to pubDate, latest first,
//     then to title, greatest first;
//  2. when exactly one record has an order, the record without it comes first;
//  3. otherwise the greater order comes first.
//
// Dates that are missing or cannot be parsed rank below every parsed date and
// equal to each other.
func CompareEpisodes(a, b Record) int {
	aOrder, aHas := sortKey(a["order"])
	bOrder, bHas := sortKey(b["order"])

	if aHas && !bHas {
		return 1
	}
	if bHas && !aHas {
		return -1
	}
	if aHas {
		if c := compareOrder(bOrder, aOrder); c != 0 {
			return c
		}
	}

	aDate, _ := sortKey(a["pubDate"])
	bDate, _ := sortKey(b["pubDate"])
	if c := compareDates(bDate, aDate); c != 0 {
		return c
	}

	aTitle, _ := sortKey(a["title"])
	bTitle, _ := sortKey(b["title"])
	return strings.Compare(bTitle, aTitle)
}

// sortKey reduces a record value to a comparable string. Missing and empty
// values report false.
func sortKey(v any) (string, bool) {
	var s string
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		s = val
	case *Node:
		s = val.Text
	case Nodes:
		if first := val.First(); first != nil {
			s = first.Text
		}
	case int:
		s = strconv.Itoa(val)
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// compareOrder compares numerically when both values are numbers. A number
// ranks below any non-numeric value; two non-numeric values compare as strings.
func compareOrder(a, b string) int {
	af, aErr := strconv.ParseFloat(a, 64)
	bf, bErr := strconv.ParseFloat(b, 64)
	switch {
	case aErr == nil && bErr == nil:
		return cmp.Compare(af, bf)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// compareDates compares chronologically. A missing or unparsable date ranks
// below every parsed date.
func compareDates(a, b string) int {
	at, aOK := parseDate(a)
	bt, bOK := parseDate(b)
	switch {
	case aOK && bOK:
		return at.Compare(bt)
	case aOK:
		return 1
	case bOK:
		return -1
	}
	return 0
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
