package search

import "github.com/sahilm/fuzzy"

// Match is a fuzzy match against the tag vocabulary.
type Match struct {
	Tag            string
	MatchedIndexes []int
	Score          int
}

// tagSource implements fuzzy.Source for a tag slice.
type tagSource []string

func (ts tagSource) String(i int) string {
	return ts[i]
}

func (ts tagSource) Len() int {
	return len(ts)
}

// FilterTags fuzzy-matches query against tags.
// Returns results sorted by match score (best first); nil for an empty query.
func FilterTags(tags []string, query string) []Match {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, tagSource(tags))

	results := make([]Match, len(matches))
	for i, m := range matches {
		results[i] = Match{
			Tag:            tags[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

// FilterTagNames is FilterTags reduced to the matching tag names.
func FilterTagNames(tags []string, query string) []string {
	matches := FilterTags(tags, query)
	if matches == nil {
		return nil
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Tag
	}
	return names
}
