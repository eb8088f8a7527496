package store

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/italianiuk/italianiuk-server/internal/domain"
	"github.com/italianiuk/italianiuk-server/internal/validation"
)

//go:embed data/listings.yaml
var embeddedListings []byte

// document is the on-disk layout of the listing data file:
//
//	cities:
//	  leeds:
//	    restaurants:
//	      - slug: ...
type document struct {
	Cities map[string]map[domain.Category][]domain.Listing `yaml:"cities"`
}

// Decode parses listing data. Unknown fields are rejected so typos in the
// data file fail the deploy instead of silently dropping data.
func Decode(r io.Reader) (map[string]domain.CityBucket, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]domain.CityBucket{}, nil
		}
		return nil, fmt.Errorf("decode listings: %w", err)
	}

	cities := make(map[string]domain.CityBucket, len(doc.Cities))
	for key, bucket := range doc.Cities {
		// "bradford:" with no body decodes to a nil map.
		if bucket == nil {
			bucket = map[domain.Category][]domain.Listing{}
		}
		cities[key] = domain.CityBucket(bucket)
	}
	return cities, nil
}

// Load decodes and validates listing data from r.
func Load(r io.Reader, v *validation.Validator) (*Store, error) {
	cities, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return New(cities, v)
}

// LoadFile loads listing data from a YAML file on disk.
func LoadFile(path string, v *validation.Validator) (*Store, error) {
	f, err := os.Open(path) //#nosec G304 -- Data path comes from deploy configuration
	if err != nil {
		return nil, fmt.Errorf("open listings file: %w", err)
	}
	defer f.Close()

	s, err := Load(f, v)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// LoadEmbedded loads the listing data compiled into the binary.
func LoadEmbedded(v *validation.Validator) (*Store, error) {
	return Load(bytes.NewReader(embeddedListings), v)
}

// Open loads from path, or from the embedded data when path is empty.
func Open(path string, v *validation.Validator) (*Store, error) {
	if path == "" {
		return LoadEmbedded(v)
	}
	return LoadFile(path, v)
}
