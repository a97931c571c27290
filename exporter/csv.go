// Package exporter serializes the final deduplicated record set. The
// column set and order are fixed so downstream spreadsheets stay stable
// across runs.
package exporter

import (
	"encoding/csv"
	"os"
	"strconv"

	"skasmi/soukscan/internal/extractor"
	"skasmi/soukscan/logger"
	apperrors "skasmi/soukscan/pkg/errors"
)

// header is the stable CSV column order
var header = []string{
	"name",
	"price",
	"category",
	"rating",
	"review_count",
	"in_stock",
	"link",
	"source_site",
}

// WriteCSV writes records to path, one per row, with the stable header.
// Absent ratings and review counts become empty cells.
func WriteCSV(records []extractor.ProductRecord, path string) error {
	log := logger.ForExporter()

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewExport("failed to create output file "+path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(header); err != nil {
		return apperrors.NewExport("failed to write header", err)
	}

	for _, rec := range records {
		if err := w.Write(recordRow(rec)); err != nil {
			return apperrors.NewExport("failed to write record "+rec.Link, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return apperrors.NewExport("failed to flush output", err)
	}

	log.Info().
		Int("count", len(records)).
		Str("path", path).
		Msg("Exported products")

	return nil
}

// recordRow serializes one record in header order
func recordRow(rec extractor.ProductRecord) []string {
	rating := ""
	if rec.Rating != nil {
		rating = strconv.FormatFloat(*rec.Rating, 'f', -1, 64)
	}

	reviews := ""
	if rec.ReviewCount != nil {
		reviews = strconv.Itoa(*rec.ReviewCount)
	}

	return []string{
		rec.Name,
		strconv.FormatFloat(rec.Price, 'f', -1, 64),
		rec.Category,
		rating,
		reviews,
		strconv.FormatBool(rec.InStock),
		rec.Link,
		rec.Site,
	}
}
