package rank_test

import (
	"errors"
	"testing"

	"github.com/okian/teambalancer/internal/domain/model"
	"github.com/okian/teambalancer/internal/domain/rank"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given raw rank descriptions", t, func() {
		Convey("When a divisioned rank carries LP", func() {
			r, err := rank.Parse("Gold 1 10LP")

			Convey("Then it parses into a DivisionedRank", func() {
				So(err, ShouldBeNil)
				So(r, ShouldResemble, rank.DivisionedRank{Tier: model.TierGold, Division: 1, Points: 10})
				So(r.Record(), ShouldResemble, model.RankRecord{Tier: model.TierGold, Division: 1, Points: 10})
			})
		})

		Convey("When a divisioned rank omits LP", func() {
			r, err := rank.Parse("silver 4")
			So(err, ShouldBeNil)
			So(r, ShouldResemble, rank.DivisionedRank{Tier: model.TierSilver, Division: 4, Points: 0})
		})

		Convey("When the division is a roman numeral", func() {
			r, err := rank.Parse("PLATINUM II 55 LP")
			So(err, ShouldBeNil)
			So(r, ShouldResemble, rank.DivisionedRank{Tier: model.TierPlatinum, Division: 2, Points: 55})
		})

		Convey("When an apex rank starts directly with LP", func() {
			r, err := rank.Parse("Challenger 1,204LP")

			Convey("Then it parses into an ApexRank", func() {
				So(err, ShouldBeNil)
				So(r, ShouldResemble, rank.ApexRank{Tier: model.TierChallenger, Points: 1204})
				So(r.Record().Division, ShouldEqual, 0)
			})
		})

		Convey("When an apex rank carries a division token anyway", func() {
			rec, err := rank.ParseRecord("MASTER 1 50LP")

			Convey("Then the division is dropped and the value stays whole", func() {
				So(err, ShouldBeNil)
				So(rec, ShouldResemble, model.RankRecord{Tier: model.TierMaster, Points: 50})
				v, _ := rank.Value(rec)
				So(v, ShouldEqual, 6.0)
			})
		})

		Convey("When an apex rank has no LP", func() {
			r, err := rank.Parse("GRANDMASTER")
			So(err, ShouldBeNil)
			So(r, ShouldResemble, rank.ApexRank{Tier: model.TierGrandmaster})
		})

		Convey("When the tier is unknown", func() {
			_, err := rank.Parse("EMERALD 2 40LP")
			So(errors.Is(err, rank.ErrUnknownTier), ShouldBeTrue)
		})

		Convey("When the division is out of range", func() {
			_, err := rank.Parse("BRONZE 6 10LP")
			So(errors.Is(err, rank.ErrUnknownDivision), ShouldBeTrue)
		})

		Convey("When a lower tier has no division", func() {
			_, err := rank.Parse("IRON")
			So(errors.Is(err, rank.ErrMalformedRank), ShouldBeTrue)
		})

		Convey("When the points are garbage", func() {
			_, err := rank.Parse("GOLD 2 lotsLP")
			So(errors.Is(err, rank.ErrMalformedRank), ShouldBeTrue)
			_, err = rank.Parse("GOLD 2 -5LP")
			So(errors.Is(err, rank.ErrMalformedRank), ShouldBeTrue)
			_, err = rank.Parse("GOLD 2 5LP extra")
			So(errors.Is(err, rank.ErrMalformedRank), ShouldBeTrue)
		})

		Convey("When the description is blank", func() {
			_, err := rank.Parse("   ")
			So(errors.Is(err, rank.ErrMalformedRank), ShouldBeTrue)
		})
	})
}

func TestParseHistory(t *testing.T) {
	Convey("Given a season list", t, func() {
		recs, err := rank.ParseHistory([]string{"GOLD 3 20LP", "GOLD 1 10LP"})

		Convey("Then order is preserved", func() {
			So(err, ShouldBeNil)
			So(recs, ShouldResemble, []model.RankRecord{
				{Tier: model.TierGold, Division: 3, Points: 20},
				{Tier: model.TierGold, Division: 1, Points: 10},
			})
		})

		Convey("When one season is broken", func() {
			_, err := rank.ParseHistory([]string{"GOLD 3 20LP", "EMERALD 1"})

			Convey("Then the error names the season", func() {
				So(errors.Is(err, rank.ErrUnknownTier), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "season 2")
			})
		})
	})
}
