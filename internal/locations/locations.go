// Package locations provides the predefined survey-area lookup table.
package locations

import (
	_ "embed"
	"sort"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/pugetsound-wardrive/wiglectl/internal/model"
)

//go:embed locations.yaml
var rawTable []byte

// Location is one predefined bounding box.
type Location struct {
	Name    string  `yaml:"name"`
	LatLow  float64 `yaml:"lat_low"`
	LatHigh float64 `yaml:"lat_high"`
	LonLow  float64 `yaml:"lon_low"`
	LonHigh float64 `yaml:"lon_high"`
}

// Bounds builds QueryBounds for the location with the given token.
func (l Location) Bounds(token string) model.QueryBounds {
	return model.QueryBounds{
		LatLow:   l.LatLow,
		LatHigh:  l.LatHigh,
		LonLow:   l.LonLow,
		LonHigh:  l.LonHigh,
		APIToken: token,
		Label:    l.Name,
	}
}

var (
	loadOnce sync.Once
	table    []Location
	loadErr  error
)

func load() ([]Location, error) {
	loadOnce.Do(func() {
		loadErr = yaml.Unmarshal(rawTable, &table)
	})
	return table, loadErr
}

// All returns every predefined location, sorted by name.
func All() ([]Location, error) {
	locs, err := load()
	if err != nil {
		return nil, eris.Wrap(err, "locations: parse embedded table")
	}
	out := make([]Location, len(locs))
	copy(out, locs)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Lookup finds a predefined location by name, case-insensitively. The error
// for an unknown name lists the available choices.
func Lookup(name string) (Location, error) {
	locs, err := load()
	if err != nil {
		return Location{}, eris.Wrap(err, "locations: parse embedded table")
	}

	for _, l := range locs {
		if strings.EqualFold(l.Name, name) {
			return l, nil
		}
	}

	names := make([]string, 0, len(locs))
	for _, l := range locs {
		names = append(names, l.Name)
	}
	sort.Strings(names)
	return Location{}, eris.Errorf("locations: unknown location %q (available: %s)", name, strings.Join(names, ", "))
}
