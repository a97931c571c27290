// Package harvester walks the configured sites page by page and feeds
// each markup snapshot to the extraction engine. Fetch pacing, backoff
// after rate limiting, and skip-on-failure all live here; the engine
// itself stays a pure function over snapshots.
package harvester

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"skasmi/soukscan/config"
	"skasmi/soukscan/helpers"
	"skasmi/soukscan/internal/extractor"
	"skasmi/soukscan/logger"
	"skasmi/soukscan/services/cache"
)

// defaultBlockTime is how long a site stays blocked after answering 429
const defaultBlockTime = 5 * time.Minute

// Harvester fetches category pages for one run and accumulates the
// extracted records per site
type Harvester struct {
	engine    *extractor.Engine
	cacheSvc  cache.CacheService
	limiter   *rate.Limiter
	fetcher   Fetcher
	renderer  Fetcher
	blockTime time.Duration
}

// New creates a harvester. fetchDelay is the fixed pause between page
// fetches; rendererAddr may be empty when no render service is running.
func New(engine *extractor.Engine, cacheSvc cache.CacheService, fetchDelay time.Duration, rendererAddr string) *Harvester {
	h := &Harvester{
		engine:    engine,
		cacheSvc:  cacheSvc,
		limiter:   rate.NewLimiter(rate.Every(fetchDelay), 1),
		fetcher:   FetchFunc(helpers.FetchPage),
		blockTime: defaultBlockTime,
	}
	if rendererAddr != "" {
		h.renderer = NewRenderer(rendererAddr)
	}
	return h
}

// HarvestSite walks every category of a site through its pages and
// returns the site's accumulated records. Page failures are logged and
// skipped; the site result is whatever could be extracted.
func (h *Harvester) HarvestSite(ctx context.Context, site config.Site) []extractor.ProductRecord {
	log := logger.ForSite(site.Name)
	acc := extractor.NewAccumulator()

	fetcher := h.fetcher
	if site.Render {
		if h.renderer == nil {
			log.Warn().Msg("Site needs a rendered snapshot but no renderer is configured, skipping")
			return acc.Records()
		}
		fetcher = h.renderer
	}

	pages := site.PagesPerCategory
	if pages < 1 {
		pages = 1
	}

	for _, cat := range site.Categories {
		catLog := log.WithField("category", cat.Label)

		for page := 1; page <= pages; page++ {
			if ctx.Err() != nil {
				return acc.Records()
			}

			if h.blocked(site.Name) {
				log.Warn().Msg("Site is in rate-limit backoff, stopping harvest")
				return acc.Records()
			}

			if err := h.limiter.Wait(ctx); err != nil {
				return acc.Records()
			}

			pageURL := cat.URL
			if page > 1 {
				pageURL = cat.URL + "?page=" + strconv.Itoa(page)
			}

			body, err := fetcher.Fetch(pageURL)
			if err != nil {
				if strings.HasPrefix(err.Error(), "rate limited") {
					h.block(site.Name)
				}
				catLog.Warn().Err(err).Int("page", page).Msg("Fetch failed, skipping page")
				continue
			}

			doc, err := goquery.NewDocumentFromReader(body)
			if err != nil {
				catLog.Warn().Err(err).Int("page", page).Msg("Parse failed, skipping page")
				continue
			}

			records := h.engine.ScanPage(doc, site.BaseURL, cat.Label, site.Name)
			kept := acc.AppendAll(records)

			catLog.Debug().
				Int("page", page).
				Int("extracted", len(records)).
				Int("kept", kept).
				Msg("Scanned page")

			// A later page with nothing new means the category ran out
			if kept == 0 && page > 1 {
				break
			}
		}
	}

	log.Info().Int("products", acc.Len()).Msg("Finished site")
	return acc.Records()
}

func (h *Harvester) blocked(site string) bool {
	if h.cacheSvc == nil {
		return false
	}
	_, err := h.cacheSvc.Get(blockKey(site))
	return err == nil
}

func (h *Harvester) block(site string) {
	if h.cacheSvc == nil {
		return
	}
	value := []byte(strconv.Itoa(int(h.blockTime / time.Second)))
	if err := h.cacheSvc.Set(blockKey(site), value, h.blockTime); err != nil {
		logger.ForSite(site).Warn().Err(err).Msg("Failed to set backoff key")
	}
}

func blockKey(site string) string {
	return strings.ToLower(site) + "_rate_limited"
}
