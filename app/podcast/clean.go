package podcast

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Enclosure is the media file attached to an episode.
type Enclosure struct {
	Length string `json:"length,omitempty"`
	Type   string `json:"type,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Owner is the itunes:owner contact. A nil field means the sub-element was absent.
type Owner struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

type cleanFunc func(raw any) any

// cleaners maps a field name to its normalization. Fields without an entry
// use cleanDefault.
var cleaners = map[string]cleanFunc{
	"author":    passthrough,
	"blocked":   cleanYes,
	"complete":  cleanYes,
	"duration":  cleanDuration,
	"enclosure": cleanEnclosure,
	"explicit":  cleanExplicit,
	"imageURL":  passthrough,
	"owner":     cleanOwner,
}

var (
	explicitTrue  = []string{"yes", "explicit", "true"}
	explicitFalse = []string{"clean", "no", "false"}
)

// Clean normalizes a raw value extracted for field. raw must not be nil.
func Clean(field string, raw any) any {
	if fn, ok := cleaners[field]; ok {
		return fn(raw)
	}
	return cleanDefault(raw)
}

// cleanDefault unwraps single-value lists: a non-empty list yields its first element.
func cleanDefault(raw any) any {
	switch v := raw.(type) {
	case Nodes:
		if len(v) > 0 {
			return v[0].Value()
		}
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case []Funding:
		if len(v) > 0 {
			return v[0]
		}
	case []Transcript:
		if len(v) > 0 {
			return v[0]
		}
	}
	return raw
}

func passthrough(raw any) any { return raw }

func cleanYes(raw any) any {
	return fold(firstText(raw)) == "yes"
}

func cleanExplicit(raw any) any {
	value := fold(firstText(raw))
	switch {
	case slices.Contains(explicitTrue, value):
		return true
	case slices.Contains(explicitFalse, value):
		return false
	default:
		return nil
	}
}

// cleanDuration converts "H:MM:SS", "MM:SS" or "SS" into whole seconds.
// Components that are not numbers make the duration unknown.
func cleanDuration(raw any) any {
	text := strings.TrimSpace(firstText(raw))
	if text == "" {
		return nil
	}

	parts := strings.Split(text, ":")
	sum, mul := 0, 1
	for i := len(parts) - 1; i >= 0; i-- {
		v, ok := leadingInt(parts[i])
		if !ok {
			return nil
		}
		sum += mul * v
		mul *= 60
	}
	return sum
}

// leadingInt reads the optionally signed run of digits at the start of s,
// ignoring anything after it, so "12.5" and "1e3" read as 12 and 1.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

func cleanEnclosure(raw any) any {
	n := firstNode(raw)
	if n == nil {
		return nil
	}
	return Enclosure{
		Length: n.Attrs["length"],
		Type:   n.Attrs["type"],
		URL:    n.Attrs["url"],
	}
}

func cleanOwner(raw any) any {
	n := firstNode(raw)
	if n == nil {
		return nil
	}

	var owner Owner
	if name := n.Child("itunes:name").First(); name != nil {
		owner.Name = &name.Text
	}
	if email := n.Child("itunes:email").First(); email != nil {
		owner.Email = &email.Text
	}
	return owner
}

func firstNode(raw any) *Node {
	switch v := raw.(type) {
	case Nodes:
		return v.First()
	case *Node:
		return v
	}
	return nil
}

func firstText(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	if n := firstNode(raw); n != nil {
		return n.Text
	}
	return ""
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
