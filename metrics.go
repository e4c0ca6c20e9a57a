package zrcodec

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	drawlistsBuilt = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "zrcodec",
			Subsystem: "drawlist",
			Name:      "built_total",
			Help:      "Drawlists successfully built.",
		},
	)
	drawlistBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "zrcodec",
			Subsystem: "drawlist",
			Name:      "bytes_total",
			Help:      "Bytes of drawlist output produced.",
		},
	)
	encodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zrcodec",
			Subsystem: "drawlist",
			Name:      "errors_total",
			Help:      "Drawlist encoder failures by reason.",
		},
		[]string{"reason"},
	)
	batchesDecoded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "zrcodec",
			Subsystem: "events",
			Name:      "batches_total",
			Help:      "Event batches accepted.",
		},
	)
	batchesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zrcodec",
			Subsystem: "events",
			Name:      "rejected_total",
			Help:      "Event batches rejected by reason.",
		},
		[]string{"reason"},
	)
	recordsDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zrcodec",
			Subsystem: "events",
			Name:      "records_total",
			Help:      "Event records in accepted batches by type.",
		},
		[]string{"type"},
	)
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{drawlistsBuilt, drawlistBytes, encodeErrors, batchesDecoded, batchesRejected, recordsDecoded}
}

// RegisterMetrics registers the codec counters with reg.
// Registering with the same registry twice is not an error.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
		}
	}
	return nil
}

var reasons = []struct {
	err   error
	label string
}{
	{ErrUnsupportedVersion, "version"},
	{ErrNilText, "nil_text"},
	{ErrUnsupportedCommand, "unsupported_command"},
	{ErrStringRef, "string_ref"},
	{ErrClipUnderflow, "clip_underflow"},
	{ErrLimit, "limit"},
	{ErrLayoutMismatch, "layout"},
	{ErrShortBuffer, "short_buffer"},
	{ErrBadMagic, "magic"},
	{ErrTotalSize, "total_size"},
	{ErrEventCount, "event_count"},
	{ErrRecordSize, "record_size"},
	{ErrRecordOverrun, "record_overrun"},
	{ErrTrailingBytes, "trailing_bytes"},
}

// reasonOf maps err to a low-cardinality metric label.
func reasonOf(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "other"
}

func recordBuild(n int) {
	drawlistsBuilt.Inc()
	drawlistBytes.Add(float64(n))
}

func recordEncodeError(err error) { encodeErrors.WithLabelValues(reasonOf(err)).Inc() }

// recordKinds is one slot per known EventType plus one for "unknown".
const recordKinds = int(EventUser) + 2

var recordCounters = func() (c [recordKinds]prometheus.Counter) {
	for t := EventInvalid; t <= EventUser; t++ {
		c[t] = recordsDecoded.WithLabelValues(t.String())
	}
	c[recordKinds-1] = recordsDecoded.WithLabelValues("unknown")
	return c
}()

func kindOf(t EventType) int {
	if t <= EventUser {
		return int(t)
	}
	return recordKinds - 1
}

func recordBatch(b *EventBatch) {
	batchesDecoded.Inc()
	for k, n := range b.kinds {
		if n != 0 {
			recordCounters[k].Add(float64(n))
		}
	}
}

func recordReject(err error) { batchesRejected.WithLabelValues(reasonOf(err)).Inc() }
