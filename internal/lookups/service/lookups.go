package service

import (
	"context"
	"sort"

	"dwellio/internal/properties/query"
	"dwellio/pkg/config"
	apperrors "dwellio/pkg/errors"
	"dwellio/pkg/model"
)

// CityLister provides the distinct cities currently listed. Satisfied
// by the property repository.
type CityLister interface {
	DistinctCities(ctx context.Context, term string) ([]string, error)
}

// PriceRangeOption is one entry of the price filter dropdown.
type PriceRangeOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type LookupsService interface {
	PropertyTypes() []string
	PriceRanges() []PriceRangeOption
	BedroomOptions() []int
	Cities(ctx context.Context) ([]string, error)
}

type lookupsService struct {
	cities CityLister
	cfg    *config.Config
}

func NewLookupsService(cities CityLister, cfg *config.Config) LookupsService {
	return &lookupsService{
		cities: cities,
		cfg:    cfg,
	}
}

func (s *lookupsService) PropertyTypes() []string {
	types := make([]string, len(model.PropertyTypes))
	copy(types, model.PropertyTypes)
	return types
}

func (s *lookupsService) PriceRanges() []PriceRangeOption {
	return []PriceRangeOption{
		{Value: query.PriceUnder500k, Label: "Under $500k"},
		{Value: query.Price500kTo1m, Label: "$500k - $1M"},
		{Value: query.Price1mTo2m, Label: "$1M - $2M"},
		{Value: query.PriceOver2m, Label: "$2M+"},
	}
}

func (s *lookupsService) BedroomOptions() []int {
	return []int{1, 2, 3, 4, 5}
}

// Cities returns the distinct listing cities, sorted.
func (s *lookupsService) Cities(ctx context.Context) ([]string, error) {
	cities, err := s.cities.DistinctCities(ctx, "")
	if err != nil {
		s.cfg.Log.Error("Failed to list cities", "error", err)
		return nil, apperrors.Internal("Failed to retrieve cities", err)
	}
	sort.Strings(cities)
	return cities, nil
}
