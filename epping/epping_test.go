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
package epping

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"testing"

	"github.com/network-quality/goepping/executor"
	"github.com/network-quality/goepping/utilities"
)

const (
	testClientAddr = "192.168.2.102"
	testServerAddr = "192.168.2.103"
)

func captureLine(clock string, rttMs string, dport int) string {
	return fmt.Sprintf("%s %s ms 0.301 ms TCP %s:51234+%s:%d",
		clock, rttMs, testClientAddr, testServerAddr, dport)
}

func mustBuildPattern(t *testing.T, flowIndex int) *regexp.Regexp {
	t.Helper()
	expr, err := BuildFlowPattern(Host, testClientAddr, testServerAddr, flowIndex)
	if err != nil {
		t.Fatalf("Building a pattern for flow %d failed: %v.", flowIndex, err)
	}
	return expr
}

func TestFirstSampleIsAnchoredAtZero(t *testing.T) {
	lines := []string{
		captureLine("10:00:05.100000000", "1.5", 5200),
		captureLine("10:00:05.200000000", "1.6", 5200),
	}

	samples, err := Scan(lines, mustBuildPattern(t, 0))
	if err != nil {
		t.Fatalf("Scanning a well-formed capture failed: %v.", err)
	}
	if samples[0].OffsetNs != 0 {
		t.Fatalf("The first sample's offset should be 0 but is %d.", samples[0].OffsetNs)
	}
	if samples[1].OffsetNs != 100_000_000 {
		t.Fatalf("The second sample should be 100ms after the anchor but is %d ns after.", samples[1].OffsetNs)
	}
}

func TestZeroTimestampAnchor(t *testing.T) {
	// A capture that starts exactly at midnight must still anchor on
	// its first sample, not mistake it for "anchor unset".
	lines := []string{
		captureLine("00:00:00.000000000", "1.5", 5200),
		captureLine("00:00:00.250000000", "1.6", 5200),
		captureLine("00:00:00.500000000", "1.7", 5200),
	}

	samples, err := Scan(lines, mustBuildPattern(t, 0))
	if err != nil {
		t.Fatalf("Scanning a midnight capture failed: %v.", err)
	}
	if len(samples) != 3 {
		t.Fatalf("Expected 3 samples but got %d.", len(samples))
	}
	offsets := []int64{samples[0].OffsetNs, samples[1].OffsetNs, samples[2].OffsetNs}
	if !reflect.DeepEqual([]int64{0, 250_000_000, 500_000_000}, offsets) {
		t.Fatalf("Midnight capture produced the wrong offsets: %v.", offsets)
	}
}

func TestOffsetsAreMonotonic(t *testing.T) {
	lines := make([]string, 0)
	for _, tenth := range utilities.Iota(0, 10) {
		clock := fmt.Sprintf("10:00:%02d.%d00000000", 5+tenth/10, tenth%10)
		lines = append(lines, captureLine(clock, "1.5", 5200))
	}

	samples, err := Scan(lines, mustBuildPattern(t, 0))
	if err != nil {
		t.Fatalf("Scanning a well-formed capture failed: %v.", err)
	}
	previous := int64(0)
	for _, sample := range samples {
		if sample.OffsetNs < previous {
			t.Fatalf("Offsets are not non-decreasing: %d follows %d.", sample.OffsetNs, previous)
		}
		previous = sample.OffsetNs
	}
}

func TestMillisecondsConvertToMicroseconds(t *testing.T) {
	lines := []string{captureLine("10:00:05.1", "12.5", 5200)}

	samples, err := Scan(lines, mustBuildPattern(t, 0))
	if err != nil {
		t.Fatalf("Scanning a well-formed capture failed: %v.", err)
	}
	if samples[0].RTTMicros != 12500.0 {
		t.Fatalf("12.5 ms should convert to exactly 12500.0 us but converted to %v.", samples[0].RTTMicros)
	}
}

func TestEmptyScanIsAnError(t *testing.T) {
	lines := []string{
		captureLine("10:00:05.100000000", "1.5", 5201),
		"Some diagnostic output from the probe",
	}

	samples, err := Scan(lines, mustBuildPattern(t, 0))
	if !errors.Is(err, ErrNoSamples) {
		t.Fatalf("A scan with zero matches should yield ErrNoSamples but yielded %v.", err)
	}
	if samples != nil {
		t.Fatalf("A failed scan should not yield samples but yielded %v.", samples)
	}
}

func TestScansOverSharedBufferDoNotInterfere(t *testing.T) {
	lines := []string{
		"Starting the epping probe",
		captureLine("10:00:05.100000000", "1.5", 5200),
		captureLine("10:00:05.200000000", "2.5", 5201),
	}

	flowASamples, err := Scan(lines, mustBuildPattern(t, 0))
	if err != nil {
		t.Fatalf("Scanning for flow A failed: %v.", err)
	}
	flowBSamples, err := Scan(lines, mustBuildPattern(t, 1))
	if err != nil {
		t.Fatalf("Scanning for flow B failed: %v.", err)
	}

	if len(flowASamples) != 1 || flowASamples[0].RTTMicros != 1500.0 {
		t.Fatalf("Flow A should see exactly its own sample but saw %v.", flowASamples)
	}
	if len(flowBSamples) != 1 || flowBSamples[0].RTTMicros != 2500.0 {
		t.Fatalf("Flow B should see exactly its own sample but saw %v.", flowBSamples)
	}
	if flowASamples[0].OffsetNs != 0 || flowBSamples[0].OffsetNs != 0 {
		t.Fatalf("Each flow's timeline should start at its own first match.")
	}
}

func TestMatchedLineWithBadFieldsIsSkipped(t *testing.T) {
	lines := []string{
		captureLine("10:00:05.100000000", "nonsense", 5200),
		captureLine("10:00:05.200000000", "1.5", 5200),
	}

	samples, err := Scan(lines, mustBuildPattern(t, 0))
	if err != nil {
		t.Fatalf("A single malformed line should not fail the scan: %v.", err)
	}
	if len(samples) != 1 {
		t.Fatalf("The malformed line should cost only its own sample; got %d samples.", len(samples))
	}
	// The skipped line must not have consumed the anchor either.
	if samples[0].OffsetNs != 0 {
		t.Fatalf("The anchor should come from the first parseable match, not the skipped one.")
	}
}

func TestSampleRecordFormat(t *testing.T) {
	sample := Sample{OffsetNs: 100000000, RTTMicros: 12500.0}
	if sample.Record() != "100000000,12500" {
		t.Fatalf("Sample record format is wrong: %q.", sample.Record())
	}
}

func TestScanFlowsSerialAndParallelAgree(t *testing.T) {
	lines := make([]string, 0)
	for _, counter := range utilities.Iota(0, 40) {
		clock := fmt.Sprintf("10:00:%02d.%09d", 5+counter/10, (counter%10)*100_000_000)
		lines = append(lines, captureLine(clock, fmt.Sprintf("%d.5", counter%7), DestinationPorts[counter%4]))
	}

	serial, err := ScanFlows(lines, Host, testClientAddr, testServerAddr, 4, executor.Serial)
	if err != nil {
		t.Fatalf("Serial multi-flow scan failed: %v.", err)
	}
	parallel, err := ScanFlows(lines, Host, testClientAddr, testServerAddr, 4, executor.Parallel)
	if err != nil {
		t.Fatalf("Parallel multi-flow scan failed: %v.", err)
	}

	if !reflect.DeepEqual(serial, parallel) {
		t.Fatalf("Serial and parallel scans of the same buffer disagree.")
	}
	for _, flowIndex := range utilities.Iota(0, 4) {
		if len(serial[flowIndex].Samples) != 10 {
			t.Fatalf("Flow %d should hold 10 samples but holds %d.", flowIndex, len(serial[flowIndex].Samples))
		}
	}
}

func TestScanFlowsAbortsWhenAnyFlowIsEmpty(t *testing.T) {
	// Only flows 0 and 1 are present; asking for 3 must abort the
	// whole operation.
	lines := []string{
		captureLine("10:00:05.100000000", "1.5", 5200),
		captureLine("10:00:05.200000000", "1.6", 5201),
	}

	flowMap, err := ScanFlows(lines, Host, testClientAddr, testServerAddr, 3, executor.Serial)
	if !errors.Is(err, ErrNoSamples) {
		t.Fatalf("A multi-flow scan with an empty flow should fail with ErrNoSamples but failed with %v.", err)
	}
	if flowMap != nil {
		t.Fatalf("An aborted multi-flow scan should not yield a partial report.")
	}
}
