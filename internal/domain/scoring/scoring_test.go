package scoring_test

import (
	"errors"
	"testing"

	"github.com/okian/teambalancer/internal/domain/model"
	"github.com/okian/teambalancer/internal/domain/rank"
	"github.com/okian/teambalancer/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func rec(tier model.Tier, division, points int) model.RankRecord {
	return model.RankRecord{Tier: tier, Division: division, Points: points}
}

func TestComputeScore(t *testing.T) {
	Convey("Given a player's rank history", t, func() {
		Convey("When the current season beats the median", func() {
			history := []model.RankRecord{
				rec(model.TierGold, 3, 20),
				rec(model.TierGold, 1, 10),
			}
			score, err := scoring.ComputeScore(history)

			Convey("Then the current rank is used", func() {
				So(err, ShouldBeNil)
				So(score, ShouldResemble, model.Score{Value: 3.75, Basis: model.BasisCurrentRank})
			})
		})

		Convey("When there is a single season", func() {
			score, err := scoring.ComputeScore([]model.RankRecord{rec(model.TierSilver, 4, 0)})

			Convey("Then the tie resolves to the median", func() {
				So(err, ShouldBeNil)
				So(score, ShouldResemble, model.Score{Value: 2.0, Basis: model.BasisMedianHistory})
			})
		})

		Convey("When the only season is an apex tier", func() {
			score, err := scoring.ComputeScore([]model.RankRecord{rec(model.TierMaster, 0, 50)})
			So(err, ShouldBeNil)
			So(score.Value, ShouldEqual, 6.0)
			So(score.Basis, ShouldEqual, model.BasisMedianHistory)
		})

		Convey("When the current season is below the median", func() {
			history := []model.RankRecord{
				rec(model.TierDiamond, 2, 0),
				rec(model.TierDiamond, 4, 0),
				rec(model.TierPlatinum, 1, 0),
			}
			score, err := scoring.ComputeScore(history)

			Convey("Then the median of all seasons is used", func() {
				So(err, ShouldBeNil)
				So(score, ShouldResemble, model.Score{Value: 5.0, Basis: model.BasisMedianHistory})
			})
		})

		Convey("When the history has an even count", func() {
			history := []model.RankRecord{
				rec(model.TierIron, 4, 0),
				rec(model.TierGold, 4, 0),
				rec(model.TierSilver, 4, 0),
				rec(model.TierBronze, 4, 0),
			}
			score, err := scoring.ComputeScore(history)

			Convey("Then the median averages the middle values", func() {
				So(err, ShouldBeNil)
				So(score, ShouldResemble, model.Score{Value: 1.5, Basis: model.BasisMedianHistory})
			})
		})

		Convey("When earlier seasons are reordered", func() {
			a := []model.RankRecord{
				rec(model.TierBronze, 2, 0),
				rec(model.TierGold, 3, 0),
				rec(model.TierSilver, 1, 0),
				rec(model.TierPlatinum, 4, 0),
			}
			b := []model.RankRecord{a[2], a[0], a[1], a[3]}
			sa, errA := scoring.ComputeScore(a)
			sb, errB := scoring.ComputeScore(b)

			Convey("Then the score does not change", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(sa, ShouldResemble, sb)
			})
		})

		Convey("When a different season becomes the last one", func() {
			a := []model.RankRecord{rec(model.TierGold, 3, 0), rec(model.TierGold, 1, 0)}
			b := []model.RankRecord{rec(model.TierGold, 1, 0), rec(model.TierGold, 3, 0)}
			sa, _ := scoring.ComputeScore(a)
			sb, _ := scoring.ComputeScore(b)

			Convey("Then basis and value can change", func() {
				So(sa, ShouldResemble, model.Score{Value: 3.75, Basis: model.BasisCurrentRank})
				So(sb, ShouldResemble, model.Score{Value: 3.5, Basis: model.BasisMedianHistory})
			})
		})

		Convey("When the history is empty", func() {
			_, err := scoring.ComputeScore(nil)
			So(errors.Is(err, scoring.ErrEmptyHistory), ShouldBeTrue)
		})

		Convey("When a season has an unmapped tier", func() {
			_, err := scoring.ComputeScore([]model.RankRecord{rec("EMERALD", 2, 0)})
			So(errors.Is(err, rank.ErrUnknownTier), ShouldBeTrue)
		})
	})
}

func TestComputeGroupScore(t *testing.T) {
	Convey("Given player scores", t, func() {
		Convey("When the count is even", func() {
			v, err := scoring.ComputeGroupScore([]float64{3.75, 2.0})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 2.875)
		})

		Convey("When the count is odd", func() {
			v, err := scoring.ComputeGroupScore([]float64{6.0, 2.0, 3.75})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 3.75)
		})

		Convey("When the input is unsorted", func() {
			in := []float64{5, 1, 4, 2}
			v, err := scoring.ComputeGroupScore(in)

			Convey("Then it sorts a copy", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 3.0)
				So(in, ShouldResemble, []float64{5, 1, 4, 2})
			})
		})

		Convey("When there are no players", func() {
			_, err := scoring.ComputeGroupScore(nil)
			So(errors.Is(err, scoring.ErrEmptyCohort), ShouldBeTrue)
		})
	})
}
