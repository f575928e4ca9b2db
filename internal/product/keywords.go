package product

import (
	"regexp"
	"strings"
)

// TopKeywords keeps the first n non-blank keywords, trimmed.
func TopKeywords(in []string, n int) []string {
	out := make([]string, 0, min(len(in), max(n, 0)))
	for _, k := range in {
		if len(out) == n {
			break
		}
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

var wordRe = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)

var stopWords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "have": true,
	"will": true, "would": true, "could": true, "should": true,
}

// ExtractKeywords pulls up to ten distinct lowercase words of four or more
// letters out of free text, in order of first appearance.
func ExtractKeywords(text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
		if len(out) == 10 {
			break
		}
	}
	return out
}

// FilterOptions narrows a batch of requests.
type FilterOptions struct {
	Categories []string
	FreeWords  string
}

func containsAny(hay []string, needles []string) bool {
	for _, n := range needles {
		for _, h := range hay {
			if strings.EqualFold(h, n) {
				return true
			}
		}
	}
	return false
}

// Filter keeps requests whose category is listed and whose title,
// description or keywords contain every free word.
func Filter(reqs []Request, opt FilterOptions) []Request {
	var out []Request
	for _, r := range reqs {
		if len(opt.Categories) > 0 && !containsAny([]string{r.Category}, opt.Categories) {
			continue
		}
		if opt.FreeWords != "" {
			hay := strings.ToLower(r.Info.Title + " " + r.Info.Description + " " + strings.Join(r.Analysis.Keywords, " "))
			ok := true
			for _, k := range strings.Fields(opt.FreeWords) {
				if !strings.Contains(hay, strings.ToLower(k)) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
