package feed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/lysyi3m/pod-comb/app/podcast"
	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"
)

// DetectType reports the syndication format of data: "rss", "atom", "json" or "unknown".
func DetectType(data []byte) string {
	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeRSS:
		return "rss"
	case gofeed.FeedTypeAtom:
		return "atom"
	case gofeed.FeedTypeJSON:
		return "json"
	default:
		return "unknown"
	}
}

// BuildTree parses an XML document into a node tree. Tag and attribute names
// keep their literal namespace prefix; element text is trimmed.
func BuildTree(data []byte) (*podcast.Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	dec.Entity = xml.HTMLEntity

	var (
		root  *podcast.Node
		stack []*podcast.Node
		texts []*strings.Builder
	)

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &podcast.ParsingError{Reason: "malformed XML", Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &podcast.Node{Name: qualifiedName(t.Name)}
			for _, attr := range t.Attr {
				if n.Attrs == nil {
					n.Attrs = make(map[string]string, len(t.Attr))
				}
				n.Attrs[qualifiedName(attr.Name)] = attr.Value
			}

			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			} else {
				return nil, &podcast.ParsingError{Reason: "document has more than one root element"}
			}

			stack = append(stack, n)
			texts = append(texts, &strings.Builder{})

		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(stack) == 0 || stack[len(stack)-1].Name != name {
				return nil, &podcast.ParsingError{Reason: "unexpected closing tag </" + name + ">"}
			}
			top := len(stack) - 1
			stack[top].Text = strings.TrimSpace(texts[top].String())
			stack, texts = stack[:top], texts[:top]

		case xml.CharData:
			if len(texts) > 0 {
				texts[len(texts)-1].Write(t)
			}
		}
	}

	if len(stack) > 0 {
		return nil, &podcast.ParsingError{Reason: "unexpected end of document inside <" + stack[len(stack)-1].Name + ">"}
	}
	if root == nil {
		return nil, &podcast.ParsingError{Reason: "document has no root element"}
	}

	return root, nil
}

// Channel parses data and returns the rss channel element. The document must
// be RSS with a channel holding at least one item.
func Channel(data []byte) (*podcast.Node, error) {
	if kind := DetectType(data); kind != "rss" {
		return nil, &podcast.ParsingError{Reason: "unsupported feed type: " + kind}
	}

	root, err := BuildTree(data)
	if err != nil {
		return nil, err
	}
	if root.Name != "rss" {
		return nil, &podcast.ParsingError{Reason: "root element is <" + root.Name + ">, expected <rss>"}
	}

	channel := root.Child("channel").First()
	if channel == nil {
		return nil, &podcast.ParsingError{Reason: "missing <channel> element"}
	}
	if len(channel.Child("item")) == 0 {
		return nil, &podcast.ParsingError{Reason: "channel has no <item> elements"}
	}

	return channel, nil
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}
