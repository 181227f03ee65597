package opgg

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// extractSeasons returns the title of every past-season badge in document
// order, which op.gg renders oldest first.
func extractSeasons(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == seasonTag && hasClasses(n, seasonClasses) {
			if title := strings.TrimSpace(attr(n, seasonAttr)); title != "" {
				out = append(out, title)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return out, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClasses(n *html.Node, want []string) bool {
	have := strings.Fields(attr(n, "class"))
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
