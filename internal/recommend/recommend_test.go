package recommend

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/adplaze/ooh-marketplace/internal/model"
)

func spaceIn(city string) model.AdSpace {
    return model.AdSpace{City: city}
}

func TestTrendingLocationsRanksByFrequency(t *testing.T) {
    spaces := []model.AdSpace{
        spaceIn("Kochi"), spaceIn("Kochi"), spaceIn("Kochi"),
        spaceIn("Calicut"), spaceIn("Calicut"),
        spaceIn("Thrissur"),
    }
    got := TrendingLocations(spaces)
    require.GreaterOrEqual(t, len(got), 3)
    assert.Equal(t, []string{"Kochi", "Calicut", "Thrissur"}, got[:3])
}

func TestTrendingLocationsTiesAlphabetical(t *testing.T) {
    spaces := []model.AdSpace{
        spaceIn("Mumbai"), spaceIn("Bangalore"), spaceIn("Ahmedabad"),
    }
    got := TrendingLocations(spaces)
    assert.Equal(t, []string{"Ahmedabad", "Bangalore", "Mumbai"}, got[:3])
}

func TestTrendingLocationsFallsBackToAddress(t *testing.T) {
    addr := "NH66 Bypass"
    spaces := []model.AdSpace{{Address: &addr}}
    got := TrendingLocations(spaces)
    require.NotEmpty(t, got)
    assert.Equal(t, "NH66 Bypass", got[0])
}

func TestTrendingLocationsPadsWithSeeds(t *testing.T) {
    got := TrendingLocations(nil)
    assert.Equal(t, SeedLocations, got[:len(SeedLocations)])
    assert.LessOrEqual(t, len(got), TrendingLimit)
}

func TestTrendingLocationsCapped(t *testing.T) {
    spaces := make([]model.AdSpace, 0, 20)
    cities := []string{
        "A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L",
    }
    for _, c := range cities {
        spaces = append(spaces, spaceIn(c))
    }
    got := TrendingLocations(spaces)
    assert.Len(t, got, TrendingLimit)
}

func TestScore(t *testing.T) {
    space := model.AdSpace{
        PricePerDay:  1000,
        Demographics: []string{"students", "gen_z"},
    }
    cases := []struct {
        name     string
        budget   float64
        audience []string
        want     int
    }{
        {"within budget, two matches", 1500, []string{"students", "gen_z"}, 5 + 3 + 3},
        {"within budget, one match", 1500, []string{"students", "hnw"}, 5 + 3},
        {"within budget, no audience requested", 1500, nil, 5},
        {"within budget, no overlap", 1500, []string{"hnw"}, 5 - 2},
        {"over budget, two matches", 500, []string{"students", "gen_z"}, 3 + 3},
        {"over budget, no overlap", 500, []string{"hnw"}, -2},
        {"budget boundary is inclusive", 1000, nil, 5},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, Score(space, tc.budget, tc.audience))
        })
    }
}

func TestRecommendReturnsTopThree(t *testing.T) {
    spaces := []model.AdSpace{
        {ID: 1, PricePerDay: 5000, Demographics: []string{"hnw"}},
        {ID: 2, PricePerDay: 800, Demographics: []string{"students", "gen_z"}},
        {ID: 3, PricePerDay: 900, Demographics: []string{"students"}},
        {ID: 4, PricePerDay: 700},
        {ID: 5, PricePerDay: 20000},
    }
    got := Recommend(spaces, 1000, []string{"students", "gen_z"})
    require.Len(t, got, TopN)
    assert.Equal(t, uint64(2), got[0].Space.ID) // 5+3+3
    assert.Equal(t, uint64(3), got[1].Space.ID) // 5+3
    assert.Equal(t, uint64(4), got[2].Space.ID) // 5-2
    for i := 1; i < len(got); i++ {
        assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
    }
}

func TestScoreBudgetDominance(t *testing.T) {
    // With equal demographic overlap, a space within budget always outscores
    // one over budget.
    audiences := [][]string{nil, {"students"}, {"students", "gen_z"}}
    overlaps := [][]string{nil, {"students"}, {"students", "gen_z"}}
    for _, audience := range audiences {
        for _, tags := range overlaps {
            within := model.AdSpace{PricePerDay: 900, Demographics: tags}
            over := model.AdSpace{PricePerDay: 1100, Demographics: tags}
            assert.Greater(t, Score(within, 1000, audience), Score(over, 1000, audience),
                "audience=%v tags=%v", audience, tags)
        }
    }
}

func TestRecommendFewerSpacesThanTopN(t *testing.T) {
    spaces := []model.AdSpace{{ID: 1, PricePerDay: 100}}
    got := Recommend(spaces, 1000, nil)
    require.Len(t, got, 1)
    assert.Equal(t, uint64(1), got[0].Space.ID)
}

func TestRecommendTiesKeepInputOrder(t *testing.T) {
    spaces := []model.AdSpace{
        {ID: 10, PricePerDay: 100},
        {ID: 11, PricePerDay: 100},
        {ID: 12, PricePerDay: 100},
    }
    got := Recommend(spaces, 1000, nil)
    require.Len(t, got, 3)
    assert.Equal(t, uint64(10), got[0].Space.ID)
    assert.Equal(t, uint64(11), got[1].Space.ID)
    assert.Equal(t, uint64(12), got[2].Space.ID)
}
