// Package flightplan reads flight plan documents for the CDU.
//
// Plans are HTML exports: a heading naming the route as
// "Frankfurt (EDDF) to Munich (EDDM)" and a table whose header row contains
// the columns Ident, Course, Leg Time and Head- or Tailwind. A Library lists
// and loads plans from a directory, and a Watcher reports when that
// directory changes.
package flightplan

import (
	"errors"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/muurk/cdubridge/internal/state"
)

// Column headers. A header cell matches when it contains the text.
const (
	ColumnIdent   = "Ident"
	ColumnCourse  = "Course"
	ColumnLegTime = "Leg Time"
	ColumnWind    = "Head- or Tailwind"
)

// Placeholders for unusable cells.
const (
	NoCourse  = "---"
	NoLegTime = "--:--"
)

// MaxIdent is the longest waypoint identifier kept.
const MaxIdent = 8

var (
	headingRoute = regexp.MustCompile(`^.*\((\w{4})\)\s*to\s*.*\((\w{4})\)`)
	titleRoute   = regexp.MustCompile(`^.*\((\w{4})\).*to.*\((\w{4})\)`)
	numericRe    = regexp.MustCompile(`^[0-9]+(\.[0-9]*)?$|^\.[0-9]+$`)
)

// ParseFile parses the plan document at path.
func ParseFile(path string) (*state.Flightplan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Kind: KindIO, Path: path, Message: "cannot open document", Err: err}
	}
	defer func() { _ = f.Close() }()

	fp, err := Parse(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return fp, nil
}

// Parse reads a plan document.
func Parse(r io.Reader) (*state.Flightplan, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, &ParseError{Kind: KindMalformed, Message: "cannot parse HTML", Err: err}
	}

	dep, arr := route(doc)

	table := find(doc, atom.Table)
	if table == nil {
		return nil, newParseError(KindNoTable, "no table in document")
	}

	cols, err := columns(table)
	if err != nil {
		return nil, err
	}

	points := rows(table, cols)
	if len(points) == 0 {
		return nil, newParseError(KindNoPoints, "no usable waypoint rows")
	}
	if dep == "" || arr == "" {
		return nil, newParseError(KindNoRoute, "departure and arrival not found in heading or title")
	}

	return &state.Flightplan{Dep: dep, Arr: arr, Points: points}, nil
}

func route(doc *html.Node) (dep, arr string) {
	if h1 := find(doc, atom.H1); h1 != nil {
		if m := headingRoute.FindStringSubmatch(rawText(h1)); m != nil {
			return m[1], m[2]
		}
	}
	if title := find(doc, atom.Title); title != nil {
		if m := titleRoute.FindStringSubmatch(rawText(title)); m != nil {
			return m[1], m[2]
		}
	}
	return "", ""
}

type columnIndex struct {
	ident, course, legTime, wind int
}

func (c columnIndex) max() int {
	m := c.ident
	for _, v := range []int{c.course, c.legTime, c.wind} {
		if v > m {
			m = v
		}
	}
	return m
}

func columns(table *html.Node) (columnIndex, error) {
	cols := columnIndex{-1, -1, -1, -1}
	for i, th := range findAll(table, atom.Th) {
		h := strippedText(th)
		if strings.Contains(h, ColumnIdent) {
			cols.ident = i
		}
		if strings.Contains(h, ColumnCourse) {
			cols.course = i
		}
		if strings.Contains(h, ColumnLegTime) {
			cols.legTime = i
		}
		if strings.Contains(h, ColumnWind) {
			cols.wind = i
		}
	}

	var missing []string
	for _, c := range []struct {
		idx  int
		name string
	}{
		{cols.ident, ColumnIdent},
		{cols.course, ColumnCourse},
		{cols.legTime, ColumnLegTime},
		{cols.wind, ColumnWind},
	} {
		if c.idx < 0 {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return cols, newParseError(KindMissingColumns, "table columns not found: "+strings.Join(missing, ", "))
	}
	return cols, nil
}

func rows(table *html.Node, cols columnIndex) []state.Point {
	trs := findAll(table, atom.Tr)
	if len(trs) == 0 {
		return nil
	}

	var points []state.Point
	for _, tr := range trs[1:] {
		tds := findAll(tr, atom.Td)
		if len(tds) <= cols.max() {
			continue
		}

		ident := strippedText(tds[cols.ident])
		if ident == "" {
			continue
		}
		course := strings.ReplaceAll(strippedText(tds[cols.course]), ",", ".")
		if !numericRe.MatchString(course) {
			course = NoCourse
		}
		legTime := strippedText(tds[cols.legTime])
		if legTime == "" {
			legTime = NoLegTime
		}

		if r := []rune(ident); len(r) > MaxIdent {
			ident = string(r[:MaxIdent])
		}
		points = append(points, state.Point{
			Ident:   ident,
			Course:  course,
			LegTime: legTime,
			Wind:    strippedText(tds[cols.wind]),
		})
	}
	return points
}

// find returns the first element with tag a in document order.
func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, a); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every descendant element with tag a in document order.
func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == a {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// rawText concatenates all text below n unchanged.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// strippedText concatenates the trimmed text pieces below n.
func strippedText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
