package steamtrader

import (
	"slices"
)

// Facet names one classification axis of an item.
type Facet int

const (
	FacetQuality Facet = iota
	FacetType
	FacetUsedBy
	FacetCraft
	FacetRegion
	FacetGenre
	FacetMode
	FacetTrade
	FacetRarity
	FacetHero
	facetCount
)

var facetNames = [facetCount]string{
	"quality", "type", "used_by", "craft", "region",
	"genre", "mode", "trade", "rarity", "hero",
}

func (f Facet) String() string {
	if f < 0 || f >= facetCount {
		return "unknown"
	}
	return facetNames[f]
}

// Facets lists every facet in a fixed order.
func Facets() []Facet {
	out := make([]Facet, facetCount)
	for i := range out {
		out[i] = Facet(i)
	}
	return out
}

// FacetSet constrains items by facet ids. A nil slot places no constraint,
// a filled slot keeps items that carry at least one of its ids. Slots are
// combined with AND.
type FacetSet struct {
	Quality []int
	Type    []int
	UsedBy  []int
	Craft   []int
	Region  []int
	Genre   []int
	Mode    []int
	Trade   []int
	Rarity  []int
	Hero    []int
}

func (s *FacetSet) slot(f Facet) *[]int {
	switch f {
	case FacetQuality:
		return &s.Quality
	case FacetType:
		return &s.Type
	case FacetUsedBy:
		return &s.UsedBy
	case FacetCraft:
		return &s.Craft
	case FacetRegion:
		return &s.Region
	case FacetGenre:
		return &s.Genre
	case FacetMode:
		return &s.Mode
	case FacetTrade:
		return &s.Trade
	case FacetRarity:
		return &s.Rarity
	case FacetHero:
		return &s.Hero
	}
	return nil
}

// Category returns the ids requested for f, nil when f is unconstrained.
func (s *FacetSet) Category(f Facet) []int {
	slot := s.slot(f)
	if slot == nil {
		return nil
	}
	return *slot
}

// Set replaces the ids requested for f.
func (s *FacetSet) Set(f Facet, ids ...int) {
	slot := s.slot(f)
	if slot != nil {
		*slot = ids
	}
}

// Empty reports whether no slot is constrained.
func (s *FacetSet) Empty() bool {
	for _, f := range Facets() {
		if s.Category(f) != nil {
			return false
		}
	}
	return true
}

// Validate rejects slots that are present but hold no ids, such a slot
// would exclude every item.
func (s *FacetSet) Validate() error {
	for _, f := range Facets() {
		ids := s.Category(f)
		if ids != nil && len(ids) == 0 {
			return &ArgumentError{Name: "facet " + f.String(), Value: ids, Reason: "must hold at least one id when set"}
		}
	}
	return nil
}

// Category returns the ids of the values the item carries for f.
func (f *Filters) Category(facet Facet) []int {
	if f == nil {
		return nil
	}
	var values []Filter
	switch facet {
	case FacetQuality:
		values = f.Quality
	case FacetType:
		values = f.Type
	case FacetUsedBy:
		values = f.UsedBy
	case FacetCraft:
		values = f.Craft
	case FacetRegion:
		values = f.Region
	case FacetGenre:
		values = f.Genre
	case FacetMode:
		values = f.Mode
	case FacetTrade:
		values = f.Trade
	case FacetRarity:
		values = f.Rarity
	case FacetHero:
		values = f.Hero
	}
	ids := make([]int, 0, len(values))
	for _, v := range values {
		if v.ID != nil {
			ids = append(ids, *v.ID)
		}
	}
	return ids
}

// Match reports whether an item with the given facet values passes s. An
// item without facet values fails every constrained slot.
func (s *FacetSet) Match(item *Filters) bool {
	for _, f := range Facets() {
		requested := s.Category(f)
		if requested == nil {
			continue
		}
		carried := item.Category(f)
		if !slices.ContainsFunc(carried, func(id int) bool {
			return slices.Contains(requested, id)
		}) {
			return false
		}
	}
	return true
}
