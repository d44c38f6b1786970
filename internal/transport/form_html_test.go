package transport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// submittedValues returns what a browser submits for the form posting to
// action in body, leaving out file inputs.
func submittedValues(t *testing.T, body, action string) map[string][]string {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)

	form := findForm(doc, action)
	require.NotNil(t, form, "no form posting to %s", action)

	values := map[string][]string{}
	add := func(name, value string) { values[name] = append(values[name], value) }

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			name, named := attr(n, "name")
			switch {
			case !named:
			case n.DataAtom == atom.Input:
				typ, _ := attr(n, "type")
				value, _ := attr(n, "value")
				switch strings.ToLower(typ) {
				case "file", "submit", "button", "reset":
				case "checkbox", "radio":
					if _, checked := attr(n, "checked"); checked {
						if value == "" {
							value = "on"
						}
						add(name, value)
					}
				default:
					add(name, value)
				}
			case n.DataAtom == atom.Textarea:
				add(name, textContent(n))
			case n.DataAtom == atom.Select:
				if value, ok := selectedOption(n); ok {
					add(name, value)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(form)

	return values
}

func findForm(n *html.Node, action string) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Form {
		if got, _ := attr(n, "action"); got == action {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findForm(c, action); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func selectedOption(n *html.Node) (string, bool) {
	var first, selected *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Option {
			if first == nil {
				first = n
			}
			if _, ok := attr(n, "selected"); ok && selected == nil {
				selected = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	if selected == nil {
		selected = first
	}
	if selected == nil {
		return "", false
	}
	if value, ok := attr(selected, "value"); ok {
		return value, true
	}
	return textContent(selected), true
}
