package extractor

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"skasmi/soukscan/helpers"
)

// FilterConfig carries the heuristics that decide whether a markup block
// is product-like. The defaults are tuned for the Tunisian market (TND
// prices, French storefront chrome); they are data, not policy, so a
// caller can swap them out.
type FilterConfig struct {
	// MoneyPattern matches digits followed by a currency marker. The
	// first capture group is the price substring handed to ParsePrice.
	MoneyPattern *regexp.Regexp

	// Flattened block text length window, in runes, inclusive. Rejects
	// both decorative fragments and whole-page containers.
	MinTextLen int
	MaxTextLen int

	// Name length window after whitespace collapsing, in runes, inclusive
	MinNameLen int
	MaxNameLen int

	// Accepted price range. Prices above MaxPrice are treated as parse
	// artifacts rather than real listings.
	MinPrice float64
	MaxPrice float64

	// LinkDenylist rejects resolved links containing any of these
	// substrings (case-insensitive): navigation, cart mutations,
	// category indexes.
	LinkDenylist []string

	// ChromePhrases rejects derived names that exactly match storefront
	// UI labels (case-insensitive).
	ChromePhrases []string
}

var defaultMoneyPattern = regexp.MustCompile(`(\d+[\d\s,.]*)\s*(TND|DT|د\.ت)`)

var percentNameRe = regexp.MustCompile(`^-?\d+%$`)

// DefaultFilterConfig returns the heuristics tuned against the current
// layouts of the harvested sites.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MoneyPattern: defaultMoneyPattern,
		MinTextLen:   20,
		MaxTextLen:   1500,
		MinNameLen:   5,
		MaxNameLen:   250,
		MinPrice:     1,
		MaxPrice:     100000,
		LinkDenylist: []string{
			"#",
			"javascript",
			"store/",
			"add-to-cart",
			"categorie",
		},
		ChromePhrases: []string{
			"ajouter au panier",
			"vendu par :",
			"compare",
			"liste de souhaits",
			"demander un devis",
			"effacer les filtres",
			"bon plan",
			"newsletter",
			"satisfait ou remboursé",
			"gratuite en 48h à partir de 300dt",
			"jeux de construction",
			"loisirs créatifs",
		},
	}
}

// candidate is a block that passed every gate, with the fields already
// derived along the way so extraction does not re-scan the block.
type candidate struct {
	block *goquery.Selection
	text  string
	name  string
	price float64
	link  string
}

// filterCandidate applies the acceptance gates in order, cheapest and
// most discriminating first, and short-circuits on the first failure.
// It returns nil when the block is not product-like.
func (e *Engine) filterCandidate(s *goquery.Selection, base *url.URL) *candidate {
	text := s.Text()

	// Gate 1: the block must contain a monetary pattern
	money := e.cfg.MoneyPattern.FindStringSubmatch(text)
	if money == nil {
		return nil
	}

	// Gate 2: reasonable text length
	textLen := utf8.RuneCountInString(text)
	if textLen < e.cfg.MinTextLen || textLen > e.cfg.MaxTextLen {
		return nil
	}

	// Gate 3: the block must contain a usable hyperlink
	linkSel := s.Find("a[href]").First()
	if linkSel.Length() == 0 {
		return nil
	}
	href, _ := linkSel.Attr("href")
	link := resolveLink(base, href)
	if link == "" {
		return nil
	}

	// Gate 4: skip non-product navigation links
	lowerLink := strings.ToLower(link)
	for _, deny := range e.cfg.LinkDenylist {
		if strings.Contains(lowerLink, deny) {
			return nil
		}
	}

	// Gate 5: a plausible name must be derivable
	name := deriveName(s, linkSel)
	if !e.plausibleName(name) {
		return nil
	}

	// Gate 6: the matched monetary substring must parse into range
	price, ok := ParsePrice(money[1])
	if !ok || price < e.cfg.MinPrice || price > e.cfg.MaxPrice {
		return nil
	}

	return &candidate{
		block: s,
		text:  text,
		name:  name,
		price: price,
		link:  link,
	}
}

// plausibleName rejects names that are too short, too long, storefront
// chrome labels, or bare discount percentages such as "-20%".
func (e *Engine) plausibleName(name string) bool {
	nameLen := utf8.RuneCountInString(name)
	if nameLen < e.cfg.MinNameLen || nameLen > e.cfg.MaxNameLen {
		return false
	}
	lower := strings.ToLower(name)
	for _, phrase := range e.cfg.ChromePhrases {
		if lower == phrase {
			return false
		}
	}
	return !percentNameRe.MatchString(name)
}

// deriveName walks the title cascade: a heading or emphasis element
// anywhere in the block, then a heading nested inside the link, then the
// link text itself. Different sites put the title in different places,
// so no single selector works everywhere.
func deriveName(block, linkSel *goquery.Selection) string {
	nameSel := block.Find("h3, h2, strong").First()
	if nameSel.Length() == 0 {
		nameSel = linkSel.Find("span, h3, h2").First()
	}
	if nameSel.Length() == 0 {
		nameSel = linkSel
	}
	return helpers.CollapseSpace(nameSel.Text())
}

// resolveLink resolves href against the page base. A nil base or an
// unparsable href falls back to the raw href so the denylist still sees it.
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
