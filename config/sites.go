package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Category is one listing page of a site, stamped with the label its
// records will carry. Categories are assigned per source page, never
// derived from markup.
type Category struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// Site describes one harvested source: where to start, how many pages
// per category, and whether the site needs a rendered DOM snapshot.
type Site struct {
	Name             string     `json:"name"`
	BaseURL          string     `json:"base_url"`
	Render           bool       `json:"render,omitempty"`
	PagesPerCategory int        `json:"pages_per_category,omitempty"`
	Categories       []Category `json:"categories"`
}

// LoadSites reads site descriptors from a JSON file. An empty path
// returns the built-in descriptors.
func LoadSites(path string) ([]Site, error) {
	if path == "" {
		return DefaultSites(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sites file %s: %w", path, err)
	}

	var sites []Site
	if err := json.Unmarshal(data, &sites); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sites file %s: %w", path, err)
	}

	for i := range sites {
		if sites[i].PagesPerCategory == 0 {
			sites[i].PagesPerCategory = 3
		}
	}

	return sites, nil
}

// DefaultSites returns the descriptors for the Tunisian shops this
// project was tuned against.
func DefaultSites() []Site {
	return []Site{
		{
			Name:             "Tdiscount",
			BaseURL:          "https://www.tdiscount.tn",
			PagesPerCategory: 6,
			Categories: []Category{
				{URL: "https://www.tdiscount.tn/informatique", Label: "Informatique"},
				{URL: "https://www.tdiscount.tn/telephonie", Label: "Téléphonie"},
				{URL: "https://www.tdiscount.tn/beaute", Label: "Beauté"},
				{URL: "https://www.tdiscount.tn/electromenager", Label: "Électroménager"},
				{URL: "https://tdiscount.tn/categorie-produit/electromenager/gros-electromenager/", Label: "Électroménager"},
				{URL: "https://tdiscount.tn/categorie-produit/electromenager/machine-a-cafe/", Label: "Électroménager"},
			},
		},
		{
			Name:             "Darty",
			BaseURL:          "https://darty.tn",
			PagesPerCategory: 6,
			Categories: []Category{
				{URL: "https://darty.tn/247-hard-produits-maitres", Label: "Informatique"},
				{URL: "https://darty.tn/248-ordinateurs-portables", Label: "Informatique"},
				{URL: "https://darty.tn/422-ordinateurs-de-bureau", Label: "Informatique"},
				{URL: "https://darty.tn/45-telephonie-mobilite", Label: "Téléphonie"},
				{URL: "https://darty.tn/291-telephonie-mobile", Label: "Téléphonie"},
				{URL: "https://darty.tn/173-beaute-sante-et-hygiene", Label: "Beauté"},
				{URL: "https://darty.tn/179-seche-cheveux", Label: "Beauté"},
				{URL: "https://darty.tn/181-hygiene-dentaire", Label: "Beauté"},
				{URL: "https://darty.tn/190-epilation", Label: "Beauté"},
				{URL: "https://darty.tn/10-10-gros-electromenager", Label: "Électroménager"},
				{URL: "https://darty.tn/13-petit-electromenager", Label: "Électroménager"},
				{URL: "https://darty.tn/14-petit-dejeuner", Label: "Électroménager"},
				{URL: "https://darty.tn/294-traitement-sol", Label: "Électroménager"},
				{URL: "https://darty.tn/141-lavage", Label: "Électroménager"},
				{URL: "https://darty.tn/21-televiseurs-tv-led", Label: "Électroménager"},
				{URL: "https://darty.tn/123-smart-tv-et-televiseur", Label: "Électroménager"},
			},
		},
		{
			Name:             "Fnac",
			BaseURL:          "https://www.fnac.tn",
			PagesPerCategory: 5,
			Categories: []Category{
				{URL: "https://www.fnac.tn/informatique", Label: "Informatique"},
				{URL: "https://fnac.tn/49-informatique-pc-tablettes", Label: "Informatique"},
				{URL: "https://fnac.tn/56-pc-portables-et-laptops", Label: "Informatique"},
				{URL: "https://www.fnac.tn/telephonie", Label: "Téléphonie"},
				{URL: "https://www.fnac.tn/beaute", Label: "Beauté"},
				{URL: "https://www.fnac.tn/electromenager", Label: "Électroménager"},
				{URL: "https://fnac.tn/211-son-casques-enceintes", Label: "Informatique"},
				{URL: "https://fnac.tn/477-radio", Label: "Informatique"},
				{URL: "https://fnac.tn/106-smartphones-objets-connectes", Label: "Téléphonie"},
			},
		},
		{
			Name:             "Fatales",
			BaseURL:          "https://www.fatales.tn",
			PagesPerCategory: 5,
			Categories: []Category{
				{URL: "https://www.fatales.tn/417-maquillage", Label: "Beauté"},
				{URL: "https://www.fatales.tn/426-soins-visage", Label: "Beauté"},
				{URL: "https://www.fatales.tn/428-fragrance", Label: "Beauté"},
			},
		},
		{
			// Mytek renders its listings client-side; a plain fetch
			// returns an empty grid
			Name:             "Mytek",
			BaseURL:          "https://www.mytek.tn",
			Render:           true,
			PagesPerCategory: 1,
			Categories: []Category{
				{URL: "https://www.mytek.tn/informatique", Label: "Informatique"},
				{URL: "https://www.mytek.tn/telephonie-tunisie", Label: "Téléphonie"},
				{URL: "https://www.mytek.tn/electromenager", Label: "Électroménager"},
				{URL: "https://www.mytek.tn/mode-beaute-sante/bijouterie.html", Label: "Beauté"},
				{URL: "https://www.mytek.tn/mode-beaute-sante/parfums.html", Label: "Beauté"},
				{URL: "https://www.mytek.tn/mode-beaute-sante/epilation.html", Label: "Beauté"},
				{URL: "https://www.mytek.tn/mode-beaute-sante/hygiene-soin-beaute.html", Label: "Beauté"},
				{URL: "https://www.mytek.tn/mode-beaute-sante/soins-femme.html", Label: "Beauté"},
				{URL: "https://www.mytek.tn/mode-beaute-sante/soins-homme.html", Label: "Beauté"},
			},
		},
	}
}
