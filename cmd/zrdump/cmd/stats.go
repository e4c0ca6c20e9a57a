package cmd

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// writeStats prints the gathered counters in the Prometheus text format.
func writeStats(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	return writeFamilies(w, mfs)
}

func writeFamilies(w io.Writer, mfs []*dto.MetricFamily) error {
	for _, mf := range mfs {
		if len(mf.GetMetric()) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
