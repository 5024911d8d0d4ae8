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

// Package sampler turns the CPU and interrupt telemetry captured
// around a recording into utilization and delta reports. It only
// parses and diffs snapshots; taking them is the orchestrator's job.
package sampler

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/network-quality/goepping/utilities"
)

// CPUTicks holds the jiffy counters of one /proc/stat cpu line.
type CPUTicks struct {
	Label   string
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	Iowait  uint64
	Irq     uint64
	Softirq uint64
	Steal   uint64
}

func (ticks CPUTicks) Total() uint64 {
	return ticks.User + ticks.Nice + ticks.System + ticks.Idle +
		ticks.Iowait + ticks.Irq + ticks.Softirq + ticks.Steal
}

func (ticks CPUTicks) Busy() uint64 {
	return ticks.Total() - ticks.Idle - ticks.Iowait
}

// CPUSnapshot is one parsed reading of /proc/stat.
type CPUSnapshot struct {
	Aggregate CPUTicks
	PerCPU    []CPUTicks
}

// ParseCPUSnapshot reads /proc/stat-formatted text. Lines that do not
// describe a cpu (intr, ctxt, btime, ...) are skipped.
func ParseCPUSnapshot(source io.Reader) (*CPUSnapshot, error) {
	lines, err := utilities.ReadAllLines(source)
	if err != nil {
		return nil, err
	}

	snapshot := &CPUSnapshot{PerCPU: make([]CPUTicks, 0)}
	sawAggregate := false
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 || !strings.HasPrefix(fields[0], "cpu") {
			continue
		}
		ticks, err := parseCPUTicks(fields)
		if err != nil {
			return nil, err
		}
		if ticks.Label == "cpu" {
			snapshot.Aggregate = ticks
			sawAggregate = true
		} else {
			snapshot.PerCPU = append(snapshot.PerCPU, ticks)
		}
	}

	if !sawAggregate {
		return nil, fmt.Errorf("the snapshot holds no aggregate cpu line")
	}
	return snapshot, nil
}

func parseCPUTicks(fields []string) (CPUTicks, error) {
	// user nice system idle iowait irq softirq steal; newer kernels
	// append guest columns that double-count into user/nice.
	if len(fields) < 9 {
		return CPUTicks{}, fmt.Errorf("cpu line %q holds %d counters (expected at least 8)", fields[0], len(fields)-1)
	}
	counters := make([]uint64, 8)
	for index := range counters {
		counter, err := strconv.ParseUint(fields[index+1], 10, 64)
		if err != nil {
			return CPUTicks{}, fmt.Errorf("cpu line %q holds a non-numeric counter: %v", fields[0], err)
		}
		counters[index] = counter
	}
	return CPUTicks{
		Label: fields[0],
		User:  counters[0], Nice: counters[1], System: counters[2], Idle: counters[3],
		Iowait: counters[4], Irq: counters[5], Softirq: counters[6], Steal: counters[7],
	}, nil
}

// CPUUtilization is the busy share of one cpu between two snapshots.
type CPUUtilization struct {
	Label       string
	BusyPercent float64
}

func (utilization CPUUtilization) Record() string {
	return utilization.Label + "," + strconv.FormatFloat(utilization.BusyPercent, 'f', 2, 64)
}

// UtilizationSince computes per-cpu busy percentages from before to
// after, with the aggregate first. The counters are monotonic, so
// after must be the later snapshot.
func (after *CPUSnapshot) UtilizationSince(before *CPUSnapshot) ([]CPUUtilization, error) {
	if len(after.PerCPU) != len(before.PerCPU) {
		return nil, fmt.Errorf(
			"snapshots disagree on the cpu count (%d vs %d)",
			len(before.PerCPU), len(after.PerCPU),
		)
	}

	result := make([]CPUUtilization, 0)
	pairs := []utilities.Pair[CPUTicks, CPUTicks]{utilities.NewPair(before.Aggregate, after.Aggregate)}
	for index := range before.PerCPU {
		pairs = append(pairs, utilities.NewPair(before.PerCPU[index], after.PerCPU[index]))
	}

	for _, pair := range pairs {
		if pair.First.Label != pair.Second.Label {
			return nil, fmt.Errorf(
				"snapshots disagree on cpu labels (%q vs %q)",
				pair.First.Label, pair.Second.Label,
			)
		}
		if pair.Second.Total() < pair.First.Total() {
			return nil, fmt.Errorf("cpu %q counters went backwards between snapshots", pair.First.Label)
		}
		totalDelta := pair.Second.Total() - pair.First.Total()
		busyPercent := 0.0
		if totalDelta != 0 {
			busyPercent = 100.0 * float64(pair.Second.Busy()-pair.First.Busy()) / float64(totalDelta)
		}
		result = append(result, CPUUtilization{Label: pair.First.Label, BusyPercent: busyPercent})
	}
	return result, nil
}
