// Package recommend implements the marketplace's discovery helpers: the
// trending-locations ranking shown in the search bar and the wizard that
// scores listings against an advertiser's budget and target audience.
package recommend

import (
    "sort"

    "github.com/adplaze/ooh-marketplace/internal/model"
)

// SeedLocations pads the trending list when the marketplace has little
// real inventory, so the search bar never looks empty.
var SeedLocations = []string{
    "Kochi, Edappally", "Kochi, MG Road", "Kochi, Vyttila",
    "Calicut, Mavoor Road", "Calicut, Beach Road",
    "Trivandrum, Technopark", "Trivandrum, MG Road",
    "Bangalore, Koramangala", "Mumbai, Bandra",
}

// TrendingLimit caps the number of locations returned.
const TrendingLimit = 10

// TrendingLocations counts how often each location occurs across the given
// spaces (city preferred, falling back to address), ranks real locations by
// descending frequency, then pads with the seed list up to TrendingLimit.
// Ties between equally frequent locations are broken alphabetically so the
// ranking is deterministic.
func TrendingLocations(spaces []model.AdSpace) []string {
    counts := map[string]int{}
    for _, s := range spaces {
        loc := s.City
        if loc == "" && s.Address != nil {
            loc = *s.Address
        }
        if loc != "" {
            counts[loc]++
        }
    }

    ranked := make([]string, 0, len(counts))
    for loc := range counts {
        ranked = append(ranked, loc)
    }
    sort.Slice(ranked, func(i, j int) bool {
        if counts[ranked[i]] != counts[ranked[j]] {
            return counts[ranked[i]] > counts[ranked[j]]
        }
        return ranked[i] < ranked[j]
    })

    seen := map[string]bool{}
    out := make([]string, 0, TrendingLimit)
    for _, loc := range ranked {
        if !seen[loc] {
            seen[loc] = true
            out = append(out, loc)
        }
        if len(out) == TrendingLimit {
            return out
        }
    }
    for _, loc := range SeedLocations {
        if !seen[loc] {
            seen[loc] = true
            out = append(out, loc)
        }
        if len(out) == TrendingLimit {
            break
        }
    }
    return out
}

// Wizard scoring weights.  A space within budget earns budgetBonus, each
// matching demographic tag earns matchBonus, and a space matching none of
// the requested tags loses missPenalty.
const (
    budgetBonus = 5
    matchBonus  = 3
    missPenalty = 2
    // TopN is the number of recommendations the wizard returns.
    TopN = 3
)

// Scored pairs a space with its wizard score.
type Scored struct {
    Space model.AdSpace
    Score int
}

// Score rates a single space against a daily budget and a set of audience
// tags.
func Score(space model.AdSpace, budget float64, audience []string) int {
    score := 0
    if space.PricePerDay <= budget {
        score += budgetBonus
    }
    wanted := map[string]bool{}
    for _, a := range audience {
        wanted[a] = true
    }
    matches := 0
    for _, d := range space.Demographics {
        if wanted[d] {
            matches++
        }
    }
    score += matches * matchBonus
    if matches == 0 && len(audience) > 0 {
        score -= missPenalty
    }
    return score
}

// Recommend scores every space and returns the TopN best matches in
// descending score order.  Ties keep the input order, which is newest
// listings first as fetched from the store.
func Recommend(spaces []model.AdSpace, budget float64, audience []string) []Scored {
    scored := make([]Scored, len(spaces))
    for i, s := range spaces {
        scored[i] = Scored{Space: s, Score: Score(s, budget, audience)}
    }
    sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
    if len(scored) > TopN {
        scored = scored[:TopN]
    }
    return scored
}
