package product

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func parseListCell(s string) []string {
	s = strings.ReplaceAll(s, "／", "/")
	parts := strings.Split(s, "/")
	out := []string{}
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" && t != "-" {
			out = append(out, t)
		}
	}
	return out
}

// LoadPath loads a single CSV file, or every *.csv in a directory in name order.
func LoadPath(path string) ([]Request, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return LoadCSVFile(path)
	}
	files, err := filepath.Glob(filepath.Join(path, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CSV files found in %s", path)
	}
	sort.Strings(files)
	var all []Request
	for _, f := range files {
		rs, err := LoadCSVFile(f)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
		all = append(all, rs...)
	}
	return all, nil
}

func LoadCSVFile(path string) ([]Request, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return ReadCSV(fp)
}

// ReadCSV parses product rows. Columns are matched by header name; list
// cells (keywords, captions) are separated by "/".
func ReadCSV(r io.Reader) ([]Request, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv has no header")
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := cols["title"]; !ok {
		return nil, fmt.Errorf("csv header lacks a title column")
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Request{}
	for _, row := range rows[1:] {
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		category := get(row, "category")
		if category == "" {
			category = get(row, "style")
		}
		out = append(out, Request{
			Info: Info{
				Title:       get(row, "title"),
				Description: get(row, "description"),
				Price:       get(row, "price"),
				ImageURL:    get(row, "image_url"),
				URL:         get(row, "url"),
			},
			Analysis: Analysis{
				Keywords:   parseListCell(get(row, "keywords")),
				Captions:   parseListCell(get(row, "captions")),
				PrimaryCTA: get(row, "primary_cta"),
			},
			Category: category,
		})
	}
	return out, nil
}
