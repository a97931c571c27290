package worker

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"skasmi/soukscan/config"
	"skasmi/soukscan/internal/extractor"
)

type mockHarvester struct {
	bySite map[string][]extractor.ProductRecord
}

func (m *mockHarvester) HarvestSite(_ context.Context, site config.Site) []extractor.ProductRecord {
	return m.bySite[site.Name]
}

type mockPublisher struct {
	mu        sync.Mutex
	published []extractor.ProductRecord
	trims     int
	closed    bool
}

func (m *mockPublisher) Publish(site string, record []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rec extractor.ProductRecord
	if err := json.Unmarshal(record, &rec); err != nil {
		return err
	}
	m.published = append(m.published, rec)
	return nil
}

func (m *mockPublisher) TrimStreams() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trims++
	return nil
}

func (m *mockPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func testSites() []config.Site {
	return []config.Site{
		{Name: "Tdiscount", BaseURL: "https://www.tdiscount.tn"},
		{Name: "Darty", BaseURL: "https://darty.tn"},
	}
}

func TestWorkerRunDeduplicatesAcrossSites(t *testing.T) {
	harvester := &mockHarvester{bySite: map[string][]extractor.ProductRecord{
		"Tdiscount": {
			{Name: "Casque Bluetooth", Price: 129.9, Category: "Informatique", InStock: true, Link: "https://x.tn/produit/1", Site: "Tdiscount"},
			{Name: "Souris Gamer", Price: 59.9, Category: "Informatique", InStock: true, Link: "https://x.tn/produit/2", Site: "Tdiscount"},
		},
		"Darty": {
			// Same link seen on the second site, the first occurrence wins
			{Name: "Casque Bluetooth Promo", Price: 119.9, Category: "Son", InStock: true, Link: "https://x.tn/produit/1", Site: "Darty"},
			{Name: "Cafetiere Italienne", Price: 45, Category: "Électroménager", InStock: true, Link: "https://x.tn/produit/3", Site: "Darty"},
		},
	}}

	pub := &mockPublisher{}
	outputPath := filepath.Join(t.TempDir(), "products.csv")

	w := NewWorker(context.Background(), harvester, pub, testSites(), outputPath, 0)
	assert.NoError(t, w.Start())

	// The CSV holds the three unique records in site order
	f, err := os.Open(outputPath)
	assert.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 4)

	assert.Equal(t, "Casque Bluetooth", rows[1][0])
	assert.Equal(t, "Tdiscount", rows[1][7])
	assert.Equal(t, "Souris Gamer", rows[2][0])
	assert.Equal(t, "Cafetiere Italienne", rows[3][0])

	// Every unique record is published exactly once
	assert.Len(t, pub.published, 3)
	links := make(map[string]bool)
	for _, rec := range pub.published {
		links[rec.Link] = true
	}
	assert.Len(t, links, 3)

	assert.Equal(t, 1, pub.trims)
}

func TestWorkerRunWithNoRecords(t *testing.T) {
	harvester := &mockHarvester{bySite: map[string][]extractor.ProductRecord{}}
	pub := &mockPublisher{}
	outputPath := filepath.Join(t.TempDir(), "empty.csv")

	w := NewWorker(context.Background(), harvester, pub, testSites(), outputPath, 0)
	assert.NoError(t, w.Start())

	f, err := os.Open(outputPath)
	assert.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 1) // header only
	assert.Empty(t, pub.published)
}

func TestWorkerExportFailureAbortsRun(t *testing.T) {
	harvester := &mockHarvester{bySite: map[string][]extractor.ProductRecord{
		"Tdiscount": {{Name: "A", Price: 10, InStock: true, Link: "https://x.tn/1", Site: "Tdiscount"}},
	}}
	pub := &mockPublisher{}

	outputPath := filepath.Join(t.TempDir(), "missing", "out.csv")
	w := NewWorker(context.Background(), harvester, pub, testSites(), outputPath, 0)

	assert.Error(t, w.Start())
	assert.Empty(t, pub.published)
}
