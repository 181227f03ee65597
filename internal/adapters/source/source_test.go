package source_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/okian/teambalancer/internal/adapters/source"
	"github.com/okian/teambalancer/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func TestInstrument(t *testing.T) {
	Convey("Given an instrumented source", t, func() {
		var asked []string
		inner := source.Func(func(_ context.Context, name string) ([]string, error) {
			asked = append(asked, name)
			if name == "down" {
				return nil, source.ErrUpstreamStatus
			}
			return []string{"SILVER 2 15LP", "GOLD 4"}, nil
		})
		src := source.Instrument(inner, "test", nil)

		Convey("Successful fetches pass through unchanged", func() {
			got, err := src.FetchHistory(context.Background(), "Faker")
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []string{"SILVER 2 15LP", "GOLD 4"})
			So(asked, ShouldResemble, []string{"Faker"})
		})

		Convey("Failures keep their error kind", func() {
			got, err := src.FetchHistory(context.Background(), "down")
			So(got, ShouldBeNil)
			So(errors.Is(err, source.ErrUpstreamStatus), ShouldBeTrue)
		})
	})
}
