// Implements the per-flow summary statistics printed after a capture
// has been attributed to its flows.

package rttstats

import (
	"fmt"
	"math"

	"github.com/influxdata/tdigest"
	"github.com/network-quality/goepping/epping"
)

// FlowRTTSummary aggregates the round-trip-time samples of a single
// flow, in microseconds.
type FlowRTTSummary struct {
	empiricalDistribution *tdigest.TDigest
	sum                   float64
	sumOfSquares          float64
	numberOfSamples       int64
	minimumRTT            float64
	maximumRTT            float64
}

func NewFlowRTTSummary() *FlowRTTSummary {
	return &FlowRTTSummary{
		empiricalDistribution: tdigest.NewWithCompression(50),
		sum:                   0.0,
		sumOfSquares:          0.0,
		numberOfSamples:       0,
		minimumRTT:            0.0,
		maximumRTT:            0.0,
	}
}

// Summarize folds an entire sample sequence into a fresh summary.
func Summarize(samples []epping.Sample) (*FlowRTTSummary, error) {
	summary := NewFlowRTTSummary()
	for _, sample := range samples {
		if err := summary.AddSample(sample.RTTMicros); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

func (summary *FlowRTTSummary) AddSample(rttMicros float64) error {
	if rttMicros < 0.0 {
		return fmt.Errorf("rtt sample is negative")
	}
	summary.numberOfSamples++
	if summary.numberOfSamples == 1 || rttMicros < summary.minimumRTT {
		summary.minimumRTT = rttMicros
	}
	if rttMicros > summary.maximumRTT {
		summary.maximumRTT = rttMicros
	}
	summary.empiricalDistribution.Add(rttMicros, 1)
	summary.sum += rttMicros
	summary.sumOfSquares += rttMicros * rttMicros
	return nil
}

func (summary *FlowRTTSummary) GetNumberOfSamples() int64 {
	return summary.numberOfSamples
}

func (summary *FlowRTTSummary) GetMinimum() float64 {
	return summary.minimumRTT
}

func (summary *FlowRTTSummary) GetMaximum() float64 {
	return summary.maximumRTT
}

func (summary *FlowRTTSummary) GetAverage() float64 {
	return summary.sum / float64(summary.numberOfSamples)
}

func (summary *FlowRTTSummary) GetVariance() float64 {
	numberOfSamples := float64(summary.numberOfSamples)
	return (summary.sumOfSquares - (summary.sum * summary.sum / numberOfSamples)) / (numberOfSamples - 1)
}

func (summary *FlowRTTSummary) GetStandardDeviation() float64 {
	return math.Sqrt(summary.GetVariance())
}

func (summary *FlowRTTSummary) GetPercentile(percentile float64) float64 {
	return summary.empiricalDistribution.Quantile(percentile / 100)
}

func (summary *FlowRTTSummary) GetMedian() float64 {
	return summary.GetPercentile(50.0)
}

func (summary *FlowRTTSummary) Repr() string {
	return fmt.Sprintf(`RTT Summary:
	Samples: %v
	Minimum RTT (us): %v
	Maximum RTT (us): %v
	Average RTT (us): %v
	Median RTT (us): %v
	Standard Deviation (us): %v
`, summary.GetNumberOfSamples(), summary.GetMinimum(), summary.GetMaximum(),
		summary.GetAverage(), summary.GetMedian(), summary.GetStandardDeviation())
}
