package catalogue

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest returns up to limit ids that loosely match id, closest first.
func Suggest(c Catalogue, id string, limit int) []string {
	query := strings.TrimSpace(id)
	if query == "" || limit <= 0 || c.Len() == 0 {
		return nil
	}
	ids := c.IDs()
	ranks := fuzzy.RankFindNormalizedFold(query, ids)
	if len(ranks) == 0 {
		// Fall back to the reverse direction so a longer typo still hits
		// a shorter id ("lions" -> "lion").
		for i, candidate := range ids {
			if fuzzy.MatchNormalizedFold(candidate, query) {
				ranks = append(ranks, fuzzy.Rank{
					Source:        query,
					Target:        candidate,
					Distance:      fuzzy.LevenshteinDistance(candidate, query),
					OriginalIndex: i,
				})
			}
		}
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, rank := range ranks {
		if _, ok := seen[rank.Target]; ok {
			continue
		}
		seen[rank.Target] = struct{}{}
		out = append(out, rank.Target)
		if len(out) == limit {
			break
		}
	}
	return out
}
