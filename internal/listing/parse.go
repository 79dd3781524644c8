// Package listing extracts rent and floor-area details from apartment
// listing pages.
package listing

import (
	"bytes"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	labelClass  = "rentInfoLabel"
	detailClass = "rentInfoDetail"

	LabelMonthlyRent = "Monthly Rent"
	LabelSquareFeet  = "Square Feet"
)

// RentInfo holds the raw detail strings of a listing; empty when the label
// is absent.
type RentInfo struct {
	Rent       string
	SquareFeet string
}

func (r RentInfo) Empty() bool { return r.Rent == "" && r.SquareFeet == "" }

// ExtractRentInfo finds <p class="rentInfoLabel"> elements whose text is
// exactly a known label and reads the first line of the next
// <p class="rentInfoDetail"> sibling.
func ExtractRentInfo(body []byte) (RentInfo, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return RentInfo{}, eris.Wrap(err, "listing: parse html")
	}

	var info RentInfo
	walk(doc, func(n *html.Node) {
		if !isParagraph(n, labelClass) {
			return
		}
		var dst *string
		switch ownText(n) {
		case LabelMonthlyRent:
			dst = &info.Rent
		case LabelSquareFeet:
			dst = &info.SquareFeet
		default:
			return
		}
		if *dst != "" {
			return
		}
		for s := n.NextSibling; s != nil; s = s.NextSibling {
			if isParagraph(s, detailClass) {
				*dst = firstLine(innerText(s))
				return
			}
		}
	})

	return info, nil
}

// Title returns the text of the document <title>, if any.
func Title(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	var title string
	walk(doc, func(n *html.Node) {
		if title == "" && n.Type == html.ElementNode && n.DataAtom == atom.Title {
			title = strings.TrimSpace(innerText(n))
		}
	})
	return title
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func isParagraph(n *html.Node, class string) bool {
	if n.Type != html.ElementNode || n.DataAtom != atom.P {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "class" && strings.TrimSpace(a.Val) == class {
			return true
		}
	}
	return false
}

// ownText joins the direct text children of n.
func ownText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// innerText renders descendant text with <br> and block children as line breaks.
func innerText(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			b.WriteByte('\n')
		case n.Type == html.ElementNode && (n.DataAtom == atom.Div || n.DataAtom == atom.P || n.DataAtom == atom.Li):
			b.WriteByte('\n')
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				rec(c)
			}
			b.WriteByte('\n')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rec(c)
	}
	return b.String()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
