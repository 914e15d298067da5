package podcast

// Chapters points at an external chapters document.
type Chapters struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Funding is one podcast:funding entry.
type Funding struct {
	Value string `json:"value,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Locked is the podcast:locked flag and its owner.
type Locked struct {
	Value string `json:"value,omitempty"`
	Owner string `json:"owner,omitempty"`
}

// Transcript is one podcast:transcript entry.
type Transcript struct {
	Language string `json:"language,omitempty"`
	Rel      string `json:"rel,omitempty"`
	Type     string `json:"type,omitempty"`
	URL      string `json:"url,omitempty"`
}

type extractFunc func(n *Node) any

// extractors maps a field name to its raw extraction. Fields without an entry
// fall back to a direct child lookup.
var extractors = map[string]extractFunc{
	"author":     extractAuthor,
	"blocked":    lookup("itunes:block"),
	"categories": extractCategories,
	"chapters":   extractChapters,
	"complete":   lookup("itunes:complete"),
	"duration":   lookup("itunes:duration"),
	"editor":     lookup("managingEditor"),
	"explicit":   lookup("itunes:explicit"),
	"funding":    extractFunding,
	"guid":       extractGUID,
	"imageURL":   extractImageURL,
	"keywords":   lookup("itunes:keywords"),
	"locked":     extractLocked,
	"order":      lookup("itunes:order"),
	"owner":      lookup("itunes:owner"),
	"subtitle":   lookup("itunes:subtitle"),
	"summary":    lookup("itunes:summary"),
	"transcript": extractTranscript,
	"type":       lookup("itunes:type"),
}

// Extract returns the raw value of field on n, or nil when the field is absent.
func Extract(field string, n *Node) any {
	if fn, ok := extractors[field]; ok {
		return fn(n)
	}
	return lookup(field)(n)
}

func lookup(tag string) extractFunc {
	return func(n *Node) any {
		if children := n.Child(tag); len(children) > 0 {
			return children
		}
		return nil
	}
}

func extractAuthor(n *Node) any {
	if v := lookup("author")(n); v != nil {
		return v
	}
	return lookup("itunes:author")(n)
}

// extractCategories flattens itunes:category elements into "Primary" or
// "Primary>Sub" strings, using the first nested sub-category only.
func extractCategories(n *Node) any {
	nodes := n.Child("itunes:category")
	if len(nodes) == 0 {
		return nil
	}

	categories := make([]string, 0, len(nodes))
	for _, c := range nodes {
		category, _ := c.Attr("text")
		if sub := c.Child("itunes:category").First(); sub != nil {
			text, _ := sub.Attr("text")
			category += ">" + text
		}
		categories = append(categories, category)
	}
	return categories
}

func extractChapters(n *Node) any {
	items := itemsWithAttrs(n.Child("podcast:chapters"))
	if len(items) == 0 {
		return nil
	}
	return Chapters{
		Type: items[0].attrs["type"],
		URL:  items[0].attrs["url"],
	}
}

func extractFunding(n *Node) any {
	items := itemsWithAttrs(n.Child("podcast:funding"))
	funding := make([]Funding, 0, len(items))
	for _, item := range items {
		funding = append(funding, Funding{Value: item.value, URL: item.attrs["url"]})
	}
	return funding
}

func extractGUID(n *Node) any {
	if guid := n.Child("guid").First(); guid != nil && guid.Text != "" {
		return guid.Text
	}
	return nil
}

// extractImageURL prefers the RSS image container, then the itunes:image href,
// then a bare itunes:image text value.
func extractImageURL(n *Node) any {
	if image := n.Child("image").First(); image != nil {
		if url := image.Child("url").First(); url != nil && url.Text != "" {
			return url.Text
		}
	}

	if image := n.Child("itunes:image").First(); image != nil {
		if href, ok := image.Attr("href"); ok && href != "" {
			return href
		}
		if image.IsPlain() && image.Text != "" {
			return image.Text
		}
	}

	return nil
}

func extractLocked(n *Node) any {
	items := itemsWithAttrs(n.Child("podcast:locked"))
	if len(items) == 0 {
		return nil
	}
	return Locked{Value: items[0].value, Owner: items[0].attrs["owner"]}
}

func extractTranscript(n *Node) any {
	items := itemsWithAttrs(n.Child("podcast:transcript"))
	transcripts := make([]Transcript, 0, len(items))
	for _, item := range items {
		transcripts = append(transcripts, Transcript{
			Language: item.attrs["language"],
			Rel:      item.attrs["rel"],
			Type:     item.attrs["type"],
			URL:      item.attrs["url"],
		})
	}
	return transcripts
}

type attrItem struct {
	value string
	attrs map[string]string
}

// itemsWithAttrs flattens a run of elements into value/attribute pairs.
// Elements without attributes get an empty map.
func itemsWithAttrs(nodes Nodes) []attrItem {
	items := make([]attrItem, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		attrs := n.Attrs
		if attrs == nil {
			attrs = map[string]string{}
		}
		items = append(items, attrItem{value: n.Text, attrs: attrs})
	}
	return items
}
