package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"REDIS_ADDR", "REDIS_DB", "REDIS_STREAM", "REDIS_STREAM_COUNT",
		"REDIS_STREAM_MAX_LENGTH", "MEMCACHE_ADDR", "FETCH_DELAY_MS",
		"HARVEST_INTERVAL_SECONDS", "RENDERER_ADDR", "SITES_FILE",
		"OUTPUT_PATH", "SOUKSCAN_ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "products", cfg.RedisStream)
	assert.Equal(t, 1, cfg.RedisStreamCount)
	assert.Equal(t, 500, cfg.RedisStreamMaxLength)
	assert.Equal(t, "localhost:11211", cfg.MemcacheAddr)
	assert.Equal(t, 1500*time.Millisecond, cfg.FetchDelay)
	assert.Equal(t, time.Duration(0), cfg.HarvestInterval)
	assert.Equal(t, "", cfg.RendererAddr)
	assert.Equal(t, "products.csv", cfg.OutputPath)
	assert.Equal(t, "development", cfg.Environment)

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_STREAM_COUNT", "4")
	t.Setenv("FETCH_DELAY_MS", "250")
	t.Setenv("HARVEST_INTERVAL_SECONDS", "3600")
	t.Setenv("RENDERER_ADDR", "http://renderer:3000")
	t.Setenv("OUTPUT_PATH", "/tmp/out.csv")
	t.Setenv("SOUKSCAN_ENVIRONMENT", "production")

	cfg := LoadConfig()

	assert.Equal(t, "redis:6380", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 4, cfg.RedisStreamCount)
	assert.Equal(t, 250*time.Millisecond, cfg.FetchDelay)
	assert.Equal(t, time.Hour, cfg.HarvestInterval)
	assert.Equal(t, "http://renderer:3000", cfg.RendererAddr)
	assert.Equal(t, "/tmp/out.csv", cfg.OutputPath)
	assert.Equal(t, "production", cfg.Environment)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := LoadConfig()
	cfg.RedisStreamCount = 0
	assert.Error(t, cfg.Validate())

	cfg = LoadConfig()
	cfg.RedisStreamMaxLength = 0
	assert.Error(t, cfg.Validate())

	cfg = LoadConfig()
	cfg.FetchDelay = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = LoadConfig()
	cfg.OutputPath = ""
	assert.Error(t, cfg.Validate())
}

func TestLoadSitesDefaults(t *testing.T) {
	sites, err := LoadSites("")
	assert.NoError(t, err)
	assert.NotEmpty(t, sites)

	byName := make(map[string]Site, len(sites))
	for _, s := range sites {
		byName[s.Name] = s
		assert.NotEmpty(t, s.BaseURL)
		assert.NotEmpty(t, s.Categories)
		assert.GreaterOrEqual(t, s.PagesPerCategory, 1)
	}

	assert.Contains(t, byName, "Tdiscount")
	assert.True(t, byName["Mytek"].Render)
	assert.False(t, byName["Tdiscount"].Render)
}

func TestLoadSitesFromFile(t *testing.T) {
	content := `[
		{
			"name": "Boutique",
			"base_url": "https://boutique.tn",
			"categories": [
				{"url": "https://boutique.tn/informatique", "label": "Informatique"}
			]
		},
		{
			"name": "Rendu",
			"base_url": "https://rendu.tn",
			"render": true,
			"pages_per_category": 1,
			"categories": [
				{"url": "https://rendu.tn/tout", "label": "Divers"}
			]
		}
	]`

	path := filepath.Join(t.TempDir(), "sites.json")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	sites, err := LoadSites(path)
	assert.NoError(t, err)
	assert.Len(t, sites, 2)

	assert.Equal(t, "Boutique", sites[0].Name)
	assert.Equal(t, 3, sites[0].PagesPerCategory) // default when unset
	assert.Equal(t, "Informatique", sites[0].Categories[0].Label)

	assert.True(t, sites[1].Render)
	assert.Equal(t, 1, sites[1].PagesPerCategory)
}

func TestLoadSitesErrors(t *testing.T) {
	_, err := LoadSites(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadSites(path)
	assert.Error(t, err)
}
