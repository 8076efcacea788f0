package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"steamtrader/lib/steamtrader"

	"github.com/jedib0t/go-pretty/v6/table"
)

var gameNames = map[string]int{
	"tf2":   steamtrader.AppTF2,
	"dota2": steamtrader.AppDOTA2,
	"gifts": steamtrader.AppSteamGift,
	"csgo":  steamtrader.AppCSGO,
}

// parseGame accepts an app id or a section name like "tf2".
func parseGame(s string) (int, error) {
	if id, ok := gameNames[strings.ToLower(s)]; ok {
		return id, nil
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown game %q", s)
	}
	return id, nil
}

func parseFacet(name string) (steamtrader.Facet, bool) {
	for _, f := range steamtrader.Facets() {
		if f.String() == name {
			return f, true
		}
	}
	return 0, false
}

// parseFacets reads "<facet>=<id>" pairs, repeating a facet widens it. It
// returns nil when there are no pairs.
func parseFacets(pairs []string) (*steamtrader.FacetSet, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	set := &steamtrader.FacetSet{}
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("filter %q should look like quality=28", pair)
		}
		facet, ok := parseFacet(name)
		if !ok {
			return nil, fmt.Errorf("unknown facet %q", name)
		}
		id, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("filter %q: id is not a number", pair)
		}
		set.Set(facet, append(set.Category(facet), id)...)
	}
	return set, nil
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	return t
}

func formatPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
