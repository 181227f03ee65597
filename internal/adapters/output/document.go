package output

import (
	"github.com/okian/teambalancer/internal/domain/model"
)

// Field order is alphabetical so struct output is key-sorted like the maps.

type document struct {
	Players map[string]playerDoc `json:"players" yaml:"players"`
	Total   totalDoc             `json:"total" yaml:"total"`
}

type totalDoc struct {
	Count       int      `json:"count" yaml:"count"`
	MedianScore float64  `json:"median_score" yaml:"median_score"`
	RunID       string   `json:"run_id" yaml:"run_id"`
	Skipped     []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

type playerDoc struct {
	Current rankDoc   `json:"current" yaml:"current"`
	History []rankDoc `json:"history" yaml:"history"`
	Score   scoreDoc  `json:"score" yaml:"score"`
}

type rankDoc struct {
	Division int    `json:"division" yaml:"division"`
	Points   int    `json:"points" yaml:"points"`
	Tier     string `json:"tier" yaml:"tier"`
}

type scoreDoc struct {
	Basis string  `json:"basis" yaml:"basis"`
	Value float64 `json:"value" yaml:"value"`
}

func toDocument(c model.Cohort) document {
	d := document{
		Players: make(map[string]playerDoc, len(c.Players)),
		Total: totalDoc{
			Count:       c.Count,
			MedianScore: c.MedianScore,
			RunID:       c.RunID,
			Skipped:     c.Skipped,
		},
	}
	for name, p := range c.Players {
		pd := playerDoc{
			Current: toRankDoc(p.Current),
			History: make([]rankDoc, len(p.History)),
			Score:   scoreDoc{Basis: string(p.Score.Basis), Value: p.Score.Value},
		}
		for i, r := range p.History {
			pd.History[i] = toRankDoc(r)
		}
		d.Players[name] = pd
	}
	return d
}

func toRankDoc(r model.RankRecord) rankDoc {
	return rankDoc{Division: r.Division, Points: r.Points, Tier: string(r.Tier)}
}

func (d document) cohort() model.Cohort {
	c := model.Cohort{
		RunID:       d.Total.RunID,
		Players:     make(map[string]model.Player, len(d.Players)),
		Count:       d.Total.Count,
		MedianScore: d.Total.MedianScore,
		Skipped:     d.Total.Skipped,
	}
	for name, pd := range d.Players {
		p := model.Player{
			ID:      name,
			Current: pd.Current.record(),
			History: make([]model.RankRecord, len(pd.History)),
			Score:   model.Score{Value: pd.Score.Value, Basis: model.Basis(pd.Score.Basis)},
		}
		for i, r := range pd.History {
			p.History[i] = r.record()
		}
		c.Players[name] = p
	}
	return c
}

func (r rankDoc) record() model.RankRecord {
	return model.RankRecord{Tier: model.Tier(r.Tier), Division: r.Division, Points: r.Points}
}
