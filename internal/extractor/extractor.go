// Package extractor implements the heuristic product-record extraction
// engine. Given a parsed page with no known schema it decides which
// markup blocks look like product listings and derives structured
// records from them. It performs no I/O and recovers from every
// per-block failure by skipping the block.
package extractor

import (
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

var (
	ratingClassRe = regexp.MustCompile(`(?i)rating|note|star|avis`)
	reviewCountRe = regexp.MustCompile(`(?i)(\d+)\s*(avis|reviews|commentaires)`)
)

// Engine evaluates markup blocks against a FilterConfig
type Engine struct {
	cfg FilterConfig
}

// NewEngine creates an engine with the given heuristics
func NewEngine(cfg FilterConfig) *Engine {
	if cfg.MoneyPattern == nil {
		cfg.MoneyPattern = defaultMoneyPattern
	}
	return &Engine{cfg: cfg}
}

// NewDefaultEngine creates an engine with the default heuristics
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultFilterConfig())
}

// ScanPage evaluates every div of a page snapshot and returns the
// records of the blocks that passed all gates, stamped with the page's
// category label and source site. Links are resolved against baseURL
// before use; duplicate links within the page are dropped, keeping the
// first occurrence.
func (e *Engine) ScanPage(doc *goquery.Document, baseURL, category, site string) []ProductRecord {
	if doc == nil {
		return nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	var records []ProductRecord
	seen := make(map[string]struct{})

	doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		cand := e.filterCandidate(s, base)
		if cand == nil {
			return
		}
		if _, dup := seen[cand.link]; dup {
			return
		}
		seen[cand.link] = struct{}{}
		records = append(records, e.buildRecord(cand, category, site))
	})

	return records
}

// buildRecord assembles the final record from an accepted candidate.
// Name, price and link were already derived by the gates; only the
// optional fields need a secondary scan.
func (e *Engine) buildRecord(cand *candidate, category, site string) ProductRecord {
	rec := ProductRecord{
		Name:     cand.name,
		Price:    cand.price,
		Category: category,
		InStock:  true,
		Link:     cand.link,
		Site:     site,
	}

	if rating, ok := findRating(cand.block); ok {
		rec.Rating = &rating
	}
	if count, ok := findReviewCount(cand.text); ok {
		rec.ReviewCount = &count
	}

	return rec
}

// findRating scans for the first span or div whose class attribute looks
// rating-related and normalizes its text. The scan stops at the first
// class match even when its text does not parse.
func findRating(block *goquery.Selection) (float64, bool) {
	var rating float64
	found := false

	block.Find("span, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		if !ok || !ratingClassRe.MatchString(class) {
			return true
		}
		rating, found = ParseRating(s.Text())
		return false
	})

	return rating, found
}

// findReviewCount looks for a number directly followed by a review word,
// French or English, in the block's flattened text.
func findReviewCount(text string) (int, bool) {
	match := reviewCountRe.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	return ParseReviewCount(match[1])
}
