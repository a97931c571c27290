package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"skasmi/soukscan/config"
	"skasmi/soukscan/internal/extractor"
	"skasmi/soukscan/internal/harvester"
	"skasmi/soukscan/services/worker"
)

type capturingPublisher struct {
	mu        sync.Mutex
	published int
	trims     int
}

func (p *capturingPublisher) Publish(string, []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published++
	return nil
}

func (p *capturingPublisher) TrimStreams() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trims++
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func listingPage(ids ...int) string {
	page := "<html><body>"
	for _, id := range ids {
		page += fmt.Sprintf(
			`<div class="product"><h3>Produit Integration %d</h3><a href="/produit/%d">Voir le produit</a><span>%d9.900 TND</span></div>`,
			id, id, id,
		)
	}
	return page + "</body></html>"
}

// TestHarvestPipeline runs a full pass against a local server: fetch,
// extract, paginate, deduplicate, export and publish.
func TestHarvestPipeline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/informatique" && r.URL.RawQuery == "":
			w.Write([]byte(listingPage(1, 2)))
		case r.URL.Path == "/informatique" && r.URL.Query().Get("page") == "2":
			// Same products again, the category has run out
			w.Write([]byte(listingPage(1, 2)))
		case r.URL.Path == "/beaute":
			w.Write([]byte(listingPage(3)))
		default:
			w.Write([]byte("<html><body></body></html>"))
		}
	}))
	defer server.Close()

	sites := []config.Site{
		{
			Name:             "Boutique",
			BaseURL:          server.URL,
			PagesPerCategory: 3,
			Categories: []config.Category{
				{URL: server.URL + "/informatique", Label: "Informatique"},
				{URL: server.URL + "/beaute", Label: "Beauté"},
			},
		},
	}

	engine := extractor.NewDefaultEngine()
	h := harvester.New(engine, nil, time.Millisecond, "")
	pub := &capturingPublisher{}

	outputPath := filepath.Join(t.TempDir(), "products.csv")
	w := worker.NewWorker(context.Background(), h, pub, sites, outputPath, 0)
	assert.NoError(t, w.Start())

	f, err := os.Open(outputPath)
	assert.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 4) // header plus the three unique products

	assert.Equal(t, "Produit Integration 1", rows[1][0])
	assert.Equal(t, "19.9", rows[1][1])
	assert.Equal(t, "Informatique", rows[1][2])
	assert.Equal(t, server.URL+"/produit/1", rows[1][6])
	assert.Equal(t, "Boutique", rows[1][7])
	assert.Equal(t, "Produit Integration 3", rows[3][0])
	assert.Equal(t, "Beauté", rows[3][2])

	assert.Equal(t, 3, pub.published)
	assert.Equal(t, 1, pub.trims)
}
