// README: Static place searcher for demos and tests (no API key needed).
package maps

import (
	"context"
	"strings"
)

type demoPlace struct {
	Name    string
	Item    string
	Address string
}

var demoPlacesDB = []demoPlace{
	{"Pizza Pizza", "pizza", "123 Main St"},
	{"Pizza Hut", "pizza", "456 Central Ave"},
	{"Blaze Pizza", "pizza", "789 Broad St"},
	{"Pizza Pizza", "pasta", "321 Olive Blvd"},
	{"Cheesy Slice", "pizza", "654 Maple Lane"},
	{"Burger Town", "burger", "888 King Street"},
	{"Staples", "package", "654 Maple Lane"},
	{"Staples", "package", "888 Maple Lane"},
}

// DemoPlaces serves searches from a fixed table with the same result caps
// as the real provider.
type DemoPlaces struct{}

func NewDemoPlaces() *DemoPlaces {
	return &DemoPlaces{}
}

func (s *DemoPlaces) Search(ctx context.Context, query, near string, searchType SearchType) ([]Place, error) {
	var results []Place
	limit := ResultLimit(searchType)
	for _, p := range demoPlacesDB {
		match := false
		switch searchType {
		case SearchTypeItem:
			match = strings.EqualFold(p.Item, query)
		default:
			match = strings.Contains(strings.ToLower(p.Name), strings.ToLower(query))
		}
		if !match {
			continue
		}
		results = append(results, Place{Name: p.Name, Address: p.Address})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}
