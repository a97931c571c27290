package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"skasmi/soukscan/config"
	"skasmi/soukscan/exporter"
	"skasmi/soukscan/internal/extractor"
	"skasmi/soukscan/logger"
	"skasmi/soukscan/services/publisher"
)

// SiteHarvester yields the accumulated records of one site
type SiteHarvester interface {
	HarvestSite(ctx context.Context, site config.Site) []extractor.ProductRecord
}

// Worker runs the harvesting pass: all sites, global dedup, export,
// publish
type Worker struct {
	ctx        context.Context
	harvester  SiteHarvester
	publisher  publisher.Publisher
	sites      []config.Site
	outputPath string
	interval   time.Duration
}

// NewWorker creates a new worker. An interval of zero means a single
// run.
func NewWorker(
	ctx context.Context,
	harvester SiteHarvester,
	pub publisher.Publisher,
	sites []config.Site,
	outputPath string,
	interval time.Duration,
) *Worker {
	return &Worker{
		ctx:        ctx,
		harvester:  harvester,
		publisher:  pub,
		sites:      sites,
		outputPath: outputPath,
		interval:   interval,
	}
}

// Start runs the harvesting pass, and repeats it on the configured
// interval when one is set
func (w *Worker) Start() error {
	for {
		if err := w.runOnce(); err != nil {
			return err
		}

		if w.interval <= 0 {
			return nil
		}

		select {
		case <-w.ctx.Done():
			return nil
		case <-time.After(w.interval):
		}
	}
}

// runOnce harvests every site, deduplicates globally, exports the CSV
// and publishes each surviving record
func (w *Worker) runOnce() error {
	log := logger.ForWorker()
	start := time.Now()

	// One goroutine per site; results land in configured site order so
	// the first-occurrence-wins dedup stays deterministic regardless of
	// which site finishes first.
	results := make([][]extractor.ProductRecord, len(w.sites))
	var wg sync.WaitGroup
	for i, site := range w.sites {
		wg.Add(1)
		go func(i int, site config.Site) {
			defer wg.Done()
			results[i] = w.harvester.HarvestSite(w.ctx, site)
		}(i, site)
	}
	wg.Wait()

	var all []extractor.ProductRecord
	for _, records := range results {
		all = append(all, records...)
	}

	unique := extractor.Deduplicate(all)

	log.Info().
		Int("collected", len(all)).
		Int("unique", len(unique)).
		Dur("elapsed", time.Since(start)).
		Msg("Harvest pass complete")

	if err := exporter.WriteCSV(unique, w.outputPath); err != nil {
		return err
	}

	w.publishRecords(unique)

	if err := w.publisher.TrimStreams(); err != nil {
		logger.LogError("worker", err, "Failed to trim streams")
	}

	return nil
}

// publishRecords streams the deduplicated records; a publish failure
// never aborts the run
func (w *Worker) publishRecords(records []extractor.ProductRecord) {
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			logger.LogError("worker", err, "Failed to marshal record %s", rec.Link)
			continue
		}

		if err := w.publisher.Publish(rec.Site, data); err != nil {
			logger.LogError("worker", err, "Failed to publish record %s", rec.Link)
		}
	}
}
