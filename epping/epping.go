/*
 * This file is part of Go Epping.
 *
 * Go Epping is free software: you can redistribute it and/or modify it under
 * the terms of the GNU General Public License as published by the Free Software Foundation,
 * either version 2 of the License, or (at your option) any later version.
 * Go Epping is distributed in the hope that it will be useful, but WITHOUT ANY
 * WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR A
 * PARTICULAR PURPOSE. See the GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with Go Epping. If not, see <https://www.gnu.org/licenses/>.
 */

// Package epping extracts per-flow round-trip-time samples from the
// text output of the epping passive RTT probe. All the flows of an
// experiment live interleaved in a single capture, so the capture is
// scanned once per flow with a flow-specific pattern.
package epping

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/network-quality/goepping/executor"
	"github.com/network-quality/goepping/timestamp"
	"github.com/network-quality/goepping/utilities"
)

// ErrNoSamples reports that no line of the capture matched a flow's
// pattern. An empty scan means the probe never saw the flow, and the
// usual reaction is to abort the whole multi-flow operation rather
// than report partial results.
var ErrNoSamples = errors.New("the capture contains no samples for the flow")

// Sample is a single round-trip-time observation. The offset is
// relative to the first observation of the same flow's scan.
type Sample struct {
	OffsetNs  int64
	RTTMicros float64
}

// Record renders the sample in the per-flow output format: the
// integer nanosecond offset and the float microsecond RTT, separated
// by a comma.
func (sample Sample) Record() string {
	return strconv.FormatInt(sample.OffsetNs, 10) + "," +
		strconv.FormatFloat(sample.RTTMicros, 'f', -1, 64)
}

// FlowSeries is the ordered sample sequence of one flow. It is owned
// exclusively by the caller that requested the scan.
type FlowSeries struct {
	FlowIndex int
	Target    string
	Samples   []Sample
}

// Scan walks every line of the capture buffer and accumulates a
// sample from each one that matches the flow's pattern. The pattern
// must expose three capture groups: the wall-clock timestamp, the
// retained millisecond RTT and a second RTT-like field that the
// current pipeline does not consume.
//
// The relative timeline is anchored at the flow's own first match;
// the anchor is scoped to this call and never survives it. Lines that
// do not match are skipped, as is a matched line whose timestamp or
// RTT field fails to parse -- the probe's output includes non-data
// lines. A scan with zero samples returns ErrNoSamples.
func Scan(lines []string, expr *regexp.Regexp) ([]Sample, error) {
	samples := make([]Sample, 0)

	// An anchor of 0 is a legitimate first timestamp (a capture can
	// start at midnight), so "unset" must be out of band.
	anchor := utilities.None[int64]()

	for _, line := range lines {
		match := expr.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		timestampNs, err := timestamp.ToNanoseconds(match[1])
		if err != nil {
			continue
		}
		rttMs, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			continue
		}

		if utilities.IsNone(anchor) {
			anchor = utilities.Some(timestampNs)
		}

		samples = append(samples, Sample{
			OffsetNs:  timestampNs - utilities.GetSome(anchor),
			RTTMicros: rttMs * 1000,
		})
	}

	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	return samples, nil
}

// ScanFlows attributes the shared capture buffer to flowCount flows,
// one scan per flow. The buffer is never mutated, so the scans are
// independent and may run in parallel. If any flow comes up empty the
// whole operation fails -- there is no partial report.
func ScanFlows(
	lines []string,
	mode TransportMode,
	saddr string,
	daddr string,
	flowCount int,
	executionMethod executor.ExecutionMethod,
) (map[int]FlowSeries, error) {
	type scanOutcome struct {
		series FlowSeries
		err    error
	}
	outcomes := make([]scanOutcome, flowCount)

	executionUnits := make([]executor.ExecutionUnit, 0)
	for _, flowIndex := range utilities.Iota(0, flowCount) {
		flowIndex := flowIndex

		expr, err := BuildFlowPattern(mode, saddr, daddr, flowIndex)
		if err != nil {
			return nil, err
		}
		target, _ := Target(daddr, flowIndex)

		executionUnits = append(executionUnits, func() {
			samples, err := Scan(lines, expr)
			outcomes[flowIndex] = scanOutcome{
				series: FlowSeries{FlowIndex: flowIndex, Target: target, Samples: samples},
				err:    err,
			}
		})
	}

	executor.Execute(executionMethod, executionUnits).Wait()

	flowMap := make(map[int]FlowSeries)
	for flowIndex, outcome := range outcomes {
		if outcome.err != nil {
			return nil, fmt.Errorf("flow %d (%s): %w", flowIndex, outcomes[flowIndex].series.Target, outcome.err)
		}
		flowMap[flowIndex] = outcome.series
	}
	return flowMap, nil
}
