package scraper

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/youruser/adforge/internal/product"
)

var (
	titleSelectors = []string{
		"h1.product-title",
		`h1[class*="title"]`,
		`h1[class*="name"]`,
		`meta[property="og:title"]`,
		"title",
	}
	descriptionSelectors = []string{
		`meta[name="description"]`,
		`meta[property="og:description"]`,
		".product-description",
		`[class*="description"]`,
		`p[class*="description"]`,
	}
	priceSelectors = []string{
		`meta[property="product:price:amount"]`,
		`[class*="price"]`,
		`[id*="price"]`,
	}
	imageSelectors = []string{
		`meta[property="og:image"]`,
		`img[class*="product"]`,
		`img[class*="main"]`,
		`img[alt*="product"]`,
	}
	departmentSelectors = []string{
		`meta[property="product:category"]`,
		`[class*="category"]`,
		`[class*="breadcrumb"]`,
	}
)

var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$[\d,]+\.?\d*`),
	regexp.MustCompile(`€[\d,]+\.?\d*`),
	regexp.MustCompile(`£[\d,]+\.?\d*`),
	regexp.MustCompile(`[\d,]+\.?\d*\s*(?:USD|EUR|GBP)`),
}

const maxDescription = 500

// first returns the first element in document order matching sel.
func first(doc *goquery.Document, sel string) (*goquery.Selection, bool) {
	m := doc.Find(sel).First()
	return m, m.Length() > 0
}

func isMeta(s *goquery.Selection) bool {
	return goquery.NodeName(s) == "meta"
}

func content(s *goquery.Selection) string {
	return strings.TrimSpace(s.AttrOr("content", ""))
}

// text concatenates the text below the selection, skipping scripts and styles.
func text(s *goquery.Selection) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return b.String()
}

// Extract reads product fields from a parsed page. It returns nil when no
// title could be found. Relative image URLs are resolved against base.
func Extract(root *html.Node, base *url.URL) *product.Info {
	doc := goquery.NewDocumentFromNode(root)
	info := &product.Info{
		Title:       extractTitle(doc),
		Description: extractDescription(doc),
		Price:       extractPrice(doc),
		ImageURL:    extractImage(doc, base),
		Department:  extractDepartment(doc),
	}
	if info.Title == "" {
		return nil
	}
	if base != nil {
		info.URL = base.String()
	}
	return info
}

func extractTitle(doc *goquery.Document) string {
	for _, sel := range titleSelectors {
		if m, ok := first(doc, sel); ok {
			if isMeta(m) {
				return content(m)
			}
			return strings.TrimSpace(text(m))
		}
	}
	return ""
}

func extractDescription(doc *goquery.Document) string {
	for _, sel := range descriptionSelectors {
		m, ok := first(doc, sel)
		if !ok {
			continue
		}
		if isMeta(m) {
			return content(m)
		}
		if t := strings.TrimSpace(text(m)); len([]rune(t)) > 20 {
			r := []rune(t)
			return string(r[:min(len(r), maxDescription)])
		}
	}
	return ""
}

func extractPrice(doc *goquery.Document) string {
	page := text(doc.Selection)
	for _, re := range pricePatterns {
		if m := re.FindString(page); m != "" {
			return m
		}
	}
	for _, sel := range priceSelectors {
		m, ok := first(doc, sel)
		if !ok {
			continue
		}
		if isMeta(m) {
			if p := content(m); p != "" {
				return "$" + p
			}
			continue
		}
		if t := strings.TrimSpace(text(m)); t != "" {
			return t
		}
	}
	return product.NoPrice
}

func extractImage(doc *goquery.Document, base *url.URL) string {
	for _, sel := range imageSelectors {
		m, ok := first(doc, sel)
		if !ok {
			continue
		}
		var src string
		if isMeta(m) {
			src = content(m)
		} else if v := strings.TrimSpace(m.AttrOr("src", "")); v != "" {
			src = v
		} else {
			src = strings.TrimSpace(m.AttrOr("data-src", ""))
		}
		if src != "" || isMeta(m) {
			return resolve(base, src)
		}
	}
	return ""
}

func extractDepartment(doc *goquery.Document) string {
	for _, sel := range departmentSelectors {
		m, ok := first(doc, sel)
		if !ok {
			continue
		}
		if isMeta(m) {
			return content(m)
		}
		if t := strings.TrimSpace(text(m)); t != "" {
			if i := strings.LastIndex(t, ">"); i >= 0 {
				return strings.TrimSpace(t[i+1:])
			}
			return t
		}
	}
	return "General"
}

func resolve(base *url.URL, ref string) string {
	if ref == "" || base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
