package dedupe_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	dedupe "github.com/okian/teambalancer/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()

		Convey("Then it starts empty", func() {
			So(d.Size(), ShouldEqual, 0)
			So(d.Order(), ShouldBeEmpty)
			So(d.Duplicates(), ShouldEqual, 0)
		})

		Convey("When names are recorded", func() {
			for _, name := range []string{"Faker", "Caps", "Faker", "Chovy", "Caps"} {
				d.SeenAndRecord(ctx, name)
			}

			Convey("Then first-seen order is kept and repeats are counted", func() {
				So(d.Order(), ShouldResemble, []string{"Faker", "Caps", "Chovy"})
				So(d.Size(), ShouldEqual, 3)
				So(d.Duplicates(), ShouldEqual, 2)
			})
		})

		Convey("When names differ only by case", func() {
			So(d.SeenAndRecord(ctx, "faker"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "Faker"), ShouldBeFalse)

			Convey("Then they are distinct players", func() {
				So(d.Size(), ShouldEqual, 2)
			})
		})

		Convey("When a name is unrecorded", func() {
			d.SeenAndRecord(ctx, "a")
			d.SeenAndRecord(ctx, "b")
			d.SeenAndRecord(ctx, "c")
			d.Unrecord(ctx, "b")

			Convey("Then order closes the gap and the name can return", func() {
				So(d.Order(), ShouldResemble, []string{"a", "c"})
				So(d.SeenAndRecord(ctx, "c"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "b"), ShouldBeFalse)
				So(d.Order(), ShouldResemble, []string{"a", "c", "b"})
			})
		})

		Convey("When an unknown name is unrecorded", func() {
			d.Unrecord(ctx, "ghost")
			So(d.Size(), ShouldEqual, 0)
		})

		Convey("When the Order slice is mutated by the caller", func() {
			d.SeenAndRecord(ctx, "a")
			order := d.Order()
			order[0] = "z"
			So(d.Order(), ShouldResemble, []string{"a"})
		})
	})
}

func TestDedupeOptions(t *testing.T) {
	Convey("Given a case-folding normalizer", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper(
			dedupe.WithCapacityHint(4),
			dedupe.WithNormalizer(strings.ToLower),
		)

		So(d.SeenAndRecord(ctx, "Faker"), ShouldBeFalse)
		So(d.SeenAndRecord(ctx, "FAKER"), ShouldBeTrue)

		Convey("Then the first spelling is kept", func() {
			So(d.Order(), ShouldResemble, []string{"Faker"})
		})
	})

	Convey("Given nil or invalid options", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithNormalizer(nil), dedupe.WithCapacityHint(-3))
		So(d, ShouldNotBeNil)
		So(d.SeenAndRecord(context.Background(), "x"), ShouldBeFalse)
	})
}

func TestDedupeConcurrency(t *testing.T) {
	Convey("Given concurrent writers", t, func() {
		d := dedupe.NewInMemoryDeduper()
		const goroutines = 10
		const names = 50

		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < names; j++ {
					d.SeenAndRecord(context.Background(), fmt.Sprintf("player-%d", j))
				}
			}()
		}
		wg.Wait()

		Convey("Then every name is recorded once", func() {
			So(d.Size(), ShouldEqual, names)
			So(d.Duplicates(), ShouldEqual, names*(goroutines-1))
		})
	})
}
