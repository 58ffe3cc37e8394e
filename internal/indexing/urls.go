// Package indexing collects the site URLs to announce and submits them to
// the Google Indexing API.
package indexing

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// DayOffsets are the days around today whose answer pages are announced.
var DayOffsets = []int{-2, -1, 0, 1, 2}

// DisplayDate formats t as shown on posters, e.g. "January 07, 2026".
func DisplayDate(t time.Time) string {
	return t.Format("January 02, 2006")
}

// URLDate formats t as used in page slugs, e.g. "january-07-2026".
func URLDate(t time.Time) string {
	return strings.ToLower(t.Format("January-02-2006"))
}

// Permalink is the answer page of topic on day t.
func Permalink(base, topic string, t time.Time) string {
	return fmt.Sprintf("%s/%s-answer-for-%s", strings.TrimRight(base, "/"), topic, URLDate(t))
}

// DynamicURLs returns the answer pages of every topic for each day offset
// around now, grouped by day.
func DynamicURLs(base string, topics []string, now time.Time) []string {
	out := make([]string, 0, len(DayOffsets)*len(topics))
	for _, offset := range DayOffsets {
		day := now.AddDate(0, 0, offset)
		for _, topic := range topics {
			out = append(out, Permalink(base, topic, day))
		}
	}
	return out
}

// LoadPages reads one URL per line, skipping blank lines and # comments.
// A missing file yields no URLs.
func LoadPages(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open pages file: %w", err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pages file: %w", err)
	}
	return out, nil
}

// Filter drops duplicates and URLs whose path matches any exclude glob.
// Globs are matched against the path without its leading slash, so
// "**/semantle-*" and "semantle-*" both exclude /semantle-answer-for-...
func Filter(urls, exclude []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		if seen[raw] {
			continue
		}
		seen[raw] = true
		if excluded(raw, exclude) {
			continue
		}
		out = append(out, raw)
	}
	return out
}

func excluded(raw string, exclude []string) bool {
	if len(exclude) == 0 {
		return false
	}
	path := raw
	if u, err := url.Parse(raw); err == nil {
		path = u.Path
	}
	path = strings.TrimPrefix(path, "/")
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
