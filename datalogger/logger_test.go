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
package datalogger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/network-quality/goepping/datalogger"
	"github.com/network-quality/goepping/epping"
)

func TestExportedSampleFileFormat(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "epping.0.rx-h-f1-t60-bbr-iperf-0.out")

	logger, err := datalogger.CreateCSVDataLogger[epping.Sample](filename, epping.Sample.Record)
	if err != nil {
		t.Fatalf("Creating a sample logger failed: %v.", err)
	}

	logger.LogRecord(epping.Sample{OffsetNs: 0, RTTMicros: 1500.0})
	logger.LogRecord(epping.Sample{OffsetNs: 100000000, RTTMicros: 12500.0})
	if !logger.Export() {
		t.Fatalf("Exporting the logged samples failed.")
	}
	if !logger.Close() {
		t.Fatalf("Closing the sample logger failed.")
	}

	contents, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Reading back the sample file failed: %v.", err)
	}
	expected := "0,1500\n100000000,12500\n"
	if string(contents) != expected {
		t.Fatalf("The sample file should hold %q but holds %q.", expected, string(contents))
	}
}

func TestCloseTwiceFails(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "samples.out")

	logger, err := datalogger.CreateCSVDataLogger[epping.Sample](filename, epping.Sample.Record)
	if err != nil {
		t.Fatalf("Creating a sample logger failed: %v.", err)
	}

	if !logger.Close() {
		t.Fatalf("The first close should succeed.")
	}
	if logger.Close() {
		t.Fatalf("The second close should fail.")
	}
	if logger.Export() {
		t.Fatalf("An export after close should fail.")
	}
}

func TestCreateInMissingDirectoryFails(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "missing", "samples.out")

	if _, err := datalogger.CreateCSVDataLogger[epping.Sample](filename, epping.Sample.Record); err == nil {
		t.Fatalf("Creating a logger inside a missing directory should fail.")
	}
}
