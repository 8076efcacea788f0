package web

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// Match is the main page item closest to a searched name.
type Match struct {
	Item       MainPageItem
	Similarity float64
}

// BestMatch returns the item whose name is most similar to name, comparing
// case-insensitively. An exact name always wins. ok is false when items is
// empty.
func BestMatch(items []MainPageItem, name string) (match Match, ok bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	for _, item := range items {
		candidate := strings.ToLower(item.Name)
		if candidate == target {
			return Match{Item: item, Similarity: 1}, true
		}
		similarity := matchr.JaroWinkler(target, candidate, false)
		if !ok || similarity > match.Similarity {
			match = Match{Item: item, Similarity: similarity}
			ok = true
		}
	}
	return match, ok
}
