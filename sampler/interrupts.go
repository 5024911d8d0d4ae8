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

package sampler

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/network-quality/goepping/utilities"
)

// InterruptRow is one source (an IRQ number or a named counter like
// ERR) of a /proc/interrupts snapshot. Named counters may carry fewer
// counts than there are cpus.
type InterruptRow struct {
	Source      string
	Counts      []uint64
	Description string
}

func (row InterruptRow) total() uint64 {
	total := uint64(0)
	for _, count := range row.Counts {
		total += count
	}
	return total
}

// InterruptSnapshot is one parsed reading of /proc/interrupts.
type InterruptSnapshot struct {
	CPUCount int
	Rows     []InterruptRow
}

// ParseInterruptSnapshot reads /proc/interrupts-formatted text: a
// header row naming the cpus, then one row per interrupt source.
func ParseInterruptSnapshot(source io.Reader) (*InterruptSnapshot, error) {
	lines, err := utilities.ReadAllLines(source)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("the snapshot is empty")
	}

	cpuCount := len(strings.Fields(lines[0]))
	if cpuCount == 0 {
		return nil, fmt.Errorf("the snapshot header names no cpus")
	}

	snapshot := &InterruptSnapshot{CPUCount: cpuCount, Rows: make([]InterruptRow, 0)}
	for _, line := range lines[1:] {
		name, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		row := InterruptRow{Source: strings.TrimSpace(name)}

		fields := strings.Fields(rest)
		consumed := 0
		for ; consumed < len(fields) && consumed < cpuCount; consumed++ {
			count, err := strconv.ParseUint(fields[consumed], 10, 64)
			if err != nil {
				break
			}
			row.Counts = append(row.Counts, count)
		}
		row.Description = strings.Join(fields[consumed:], " ")

		if len(row.Counts) == 0 {
			return nil, fmt.Errorf("interrupt source %q carries no counts", row.Source)
		}
		snapshot.Rows = append(snapshot.Rows, row)
	}
	return snapshot, nil
}

// InterruptDelta is the per-source count growth between two snapshots.
type InterruptDelta struct {
	Source      string
	PerCPU      []uint64
	Total       uint64
	Description string
}

func (delta InterruptDelta) Record() string {
	return fmt.Sprintf("%s,%d,%s", delta.Source, delta.Total, delta.Description)
}

// DeltaSince subtracts an earlier snapshot from this one, source by
// source, and drops the sources that did not fire at all. Sources
// that appear in only one snapshot are skipped -- IRQs can be
// registered while the recording runs.
func (after *InterruptSnapshot) DeltaSince(before *InterruptSnapshot) ([]InterruptDelta, error) {
	if after.CPUCount != before.CPUCount {
		return nil, fmt.Errorf(
			"snapshots disagree on the cpu count (%d vs %d)",
			before.CPUCount, after.CPUCount,
		)
	}

	earlier := make(map[string]InterruptRow)
	for _, row := range before.Rows {
		earlier[row.Source] = row
	}

	deltas := make([]InterruptDelta, 0)
	for _, row := range after.Rows {
		beforeRow, present := earlier[row.Source]
		if !present || len(beforeRow.Counts) != len(row.Counts) {
			continue
		}
		if row.total() < beforeRow.total() {
			return nil, fmt.Errorf("interrupt source %q counters went backwards between snapshots", row.Source)
		}

		delta := InterruptDelta{Source: row.Source, Description: row.Description}
		for index, count := range row.Counts {
			perCPU := count - beforeRow.Counts[index]
			delta.PerCPU = append(delta.PerCPU, perCPU)
			delta.Total += perCPU
		}
		deltas = append(deltas, delta)
	}

	return utilities.Filter(deltas, func(delta InterruptDelta) bool {
		return delta.Total != 0
	}), nil
}
