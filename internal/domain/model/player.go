// Package model contains domain models passed between layers.
package model

import "sort"

// Tier is an upstream skill band name in canonical upper case.
type Tier string

// Tiers in ascending skill order.
const (
	TierIron        Tier = "IRON"
	TierBronze      Tier = "BRONZE"
	TierSilver      Tier = "SILVER"
	TierGold        Tier = "GOLD"
	TierPlatinum    Tier = "PLATINUM"
	TierDiamond     Tier = "DIAMOND"
	TierMaster      Tier = "MASTER"
	TierGrandmaster Tier = "GRANDMASTER"
	TierChallenger  Tier = "CHALLENGER"
)

// Basis names the source that determined a player's final score.
type Basis string

const (
	BasisMedianHistory Basis = "median-history"
	BasisCurrentRank   Basis = "current-rank"
)

// RankRecord is one season's final standing for a player.
type RankRecord struct {
	Tier     Tier // skill band
	Division int  // 1 (strongest) to 5; 0 when the tier has none
	Points   int  // LP, carried for display only
}

// Score is a player's derived skill value.
type Score struct {
	Value float64
	Basis Basis
}

// Player is one roster entry with its retrieved history.
type Player struct {
	ID      string
	History []RankRecord // oldest first
	Current RankRecord   // last element of History
	Score   Score
}

// Cohort is a read-only view of every player in a run.
type Cohort struct {
	RunID       string
	Players     map[string]Player
	Count       int
	MedianScore float64
	Skipped     []string
}

// Standing is a cohort member ordered by score.
type Standing struct {
	Position int
	PlayerID string
	Score    float64
	Basis    Basis
}

// Standings lists players by descending score, ties broken by name.
func (c Cohort) Standings() []Standing {
	out := make([]Standing, 0, len(c.Players))
	for id, p := range c.Players {
		out = append(out, Standing{PlayerID: id, Score: p.Score.Value, Basis: p.Score.Basis})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}
