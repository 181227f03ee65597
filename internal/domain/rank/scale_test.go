package rank_test

import (
	"errors"
	"testing"

	"github.com/okian/teambalancer/internal/domain/model"
	"github.com/okian/teambalancer/internal/domain/rank"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTierIndex(t *testing.T) {
	Convey("Given the tier enumeration", t, func() {
		Convey("Then every tier resolves to its ordinal", func() {
			for i, tier := range rank.Tiers() {
				idx, err := rank.TierIndex(tier)
				So(err, ShouldBeNil)
				So(idx, ShouldEqual, i)
			}
			So(len(rank.Tiers()), ShouldEqual, 9)
		})

		Convey("When the tier name has inconsistent casing", func() {
			idx, err := rank.TierIndex("gRaNdMaStEr")

			Convey("Then it still resolves", func() {
				So(err, ShouldBeNil)
				So(idx, ShouldEqual, 7)
			})
		})

		Convey("When the tier is not part of the scale", func() {
			_, err := rank.TierIndex("EMERALD")

			Convey("Then it should fail with ErrUnknownTier", func() {
				So(errors.Is(err, rank.ErrUnknownTier), ShouldBeTrue)
			})
		})
	})
}

func TestDivisionOffset(t *testing.T) {
	Convey("Given the division table", t, func() {
		expected := map[int]float64{0: 0, 1: 0.75, 2: 0.5, 3: 0.25, 4: 0, 5: 0}
		for div, want := range expected {
			got, err := rank.DivisionOffset(div)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		Convey("When the division is out of range", func() {
			for _, div := range []int{-1, 6, 42} {
				_, err := rank.DivisionOffset(div)
				So(errors.Is(err, rank.ErrUnknownDivision), ShouldBeTrue)
			}
		})
	})
}

func TestValue(t *testing.T) {
	Convey("Given every valid tier and division", t, func() {
		Convey("Then the value is deterministic and within range", func() {
			for _, tier := range rank.Tiers() {
				for div := 0; div <= 5; div++ {
					rec := model.RankRecord{Tier: tier, Division: div}
					a, err := rank.Value(rec)
					So(err, ShouldBeNil)
					b, _ := rank.Value(rec)
					So(a, ShouldEqual, b)
					So(a, ShouldBeBetweenOrEqual, 0, rank.MaxValue)
				}
			}
		})

		Convey("Then apex tiers ignore the division they carry", func() {
			for _, tier := range []model.Tier{model.TierMaster, model.TierGrandmaster, model.TierChallenger} {
				idx, _ := rank.TierIndex(tier)
				for _, div := range []int{0, 1, 2, 3, 4, 5, 9} {
					v, err := rank.Value(model.RankRecord{Tier: tier, Division: div})
					So(err, ShouldBeNil)
					So(v, ShouldEqual, float64(idx))
				}
			}
		})

		Convey("Then GOLD 3 maps to 3.25 and GOLD 1 to 3.75", func() {
			v, _ := rank.Value(model.RankRecord{Tier: model.TierGold, Division: 3})
			So(v, ShouldEqual, 3.25)
			v, _ = rank.Value(model.RankRecord{Tier: model.TierGold, Division: 1})
			So(v, ShouldEqual, 3.75)
		})

		Convey("When a lower tier carries a bad division", func() {
			_, err := rank.Value(model.RankRecord{Tier: model.TierSilver, Division: 7})
			So(errors.Is(err, rank.ErrUnknownDivision), ShouldBeTrue)
		})
	})
}
