package pipeline

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shoplytics/shoplytics/internal/dataset"
	"github.com/shoplytics/shoplytics/internal/errors"
	"github.com/shoplytics/shoplytics/internal/table"
)

// DefaultTopCities is the standard ranking size of the city distribution
// view.
const DefaultTopCities = 10

// CityCount is one entry of the city ranking.
type CityCount struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}

// DensityPoint is a geographic coordinate weighted by how many joined rows
// fall on it exactly.
type DensityPoint struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Weight int64   `json:"weight"`
}

// NormalizeCity maps a free-text city name to its canonical display form:
// surrounding whitespace trimmed and Unicode title-cased, so "SÃO PAULO" and
// "são paulo " group under the same key.
func NormalizeCity(name string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(name))
}

// TopCities counts customers per normalized city and returns the top n by
// count descending, ties broken by city name ascending for determinism.
func TopCities(customers *table.Table, n int) ([]CityCount, error) {
	const op = "TopCities"

	cities, err := customers.Strings(dataset.ColCustomerCity)
	if err != nil {
		return nil, errors.NewInternalError(op, err)
	}
	if len(cities) == 0 {
		return nil, errors.ErrNoData
	}

	counts := make(map[string]int64)
	for _, city := range cities {
		counts[NormalizeCity(city)]++
	}

	ranked := make([]CityCount, 0, len(counts))
	for city, count := range counts {
		ranked = append(ranked, CityCount{City: city, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].City < ranked[j].City
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// Density groups joined geo rows by their exact (lat, lng) coordinate and
// counts rows per coordinate. The zip-prefix join upstream fans out, so a
// coordinate's weight is exactly the number of joined rows landing on it;
// weights sum to the joined-row total. Output is ordered by latitude then
// longitude.
func Density(geoRows *table.Table) ([]DensityPoint, error) {
	const op = "Density"

	lats, err := geoRows.Floats(dataset.ColGeoLat)
	if err != nil {
		return nil, errors.NewInternalError(op, err)
	}
	lngs, err := geoRows.Floats(dataset.ColGeoLng)
	if err != nil {
		return nil, errors.NewInternalError(op, err)
	}
	if len(lats) == 0 {
		return nil, errors.ErrNoData
	}

	type coord struct{ lat, lng float64 }
	weights := make(map[coord]int64)
	for i := range lats {
		weights[coord{lats[i], lngs[i]}]++
	}

	points := make([]DensityPoint, 0, len(weights))
	for c, w := range weights {
		points = append(points, DensityPoint{Lat: c.lat, Lng: c.lng, Weight: w})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Lat != points[j].Lat {
			return points[i].Lat < points[j].Lat
		}
		return points[i].Lng < points[j].Lng
	})
	return points, nil
}
