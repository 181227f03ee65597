package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

// value reads the current value of a single gauge or counter.
func value(c prometheus.Metric) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return -1
	}
	if m.GetGauge() != nil {
		return m.GetGauge().GetValue()
	}
	return m.GetCounter().GetValue()
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry and custom options", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metrics are registered under the custom names", func() {
				So(m, ShouldNotBeNil)
				m.playersTotal.Set(3)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_unit_players_total"], ShouldBeTrue)
			})
		})

		Convey("When empty options are given", func() {
			m := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(m.namespace, ShouldEqual, "teambalancer")
				So(m.subsystem, ShouldEqual, "run")
				So(m.histogramBuckets, ShouldResemble, defaultLatencyBuckets)
			})
		})
	})
}

func TestRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When run metrics are recorded", func() {
			before := value(globalManager.playersScored.WithLabelValues("current-rank"))
			UpdatePlayersTotal(4)
			RecordPlayerScored("current-rank")
			UpdateGroupMedianScore(2.875)
			RecordFetchError("fixture")
			RecordFetchLatency("fixture", 12)

			Convey("Then the collectors reflect them", func() {
				So(value(globalManager.playersTotal), ShouldEqual, 4)
				So(value(globalManager.playersScored.WithLabelValues("current-rank")), ShouldEqual, before+1)
				So(value(globalManager.groupMedianScore), ShouldEqual, 2.875)
				So(value(globalManager.fetchErrors.WithLabelValues("fixture")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("Then the remaining recorders do not panic", func() {
			So(func() {
				RecordDuplicateNames(2)
				RecordPlayerSkipped()
				UpdateRunDuration(1.5)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueRejected()
				UpdateWorkerActiveCount(2)
				RecordErrorByStage("fetch", "upstream_status")
			}, ShouldNotPanic)
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given recorded metrics", t, func() {
		UpdatePlayersTotal(7)
		path := filepath.Join(t.TempDir(), "teambalancer.prom")

		Convey("When written as a textfile", func() {
			err := WriteTextfile(path)

			Convey("Then the exposition contains the metrics", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "teambalancer_run_players_total 7")
			})
		})

		Convey("When the directory does not exist", func() {
			err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
			So(err, ShouldNotBeNil)
		})
	})
}
