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

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/network-quality/goepping/constants"
	"github.com/network-quality/goepping/datalogger"
	"github.com/network-quality/goepping/debug"
	"github.com/network-quality/goepping/epping"
	"github.com/network-quality/goepping/executor"
	"github.com/network-quality/goepping/experiment"
	"github.com/network-quality/goepping/rttstats"
	"github.com/network-quality/goepping/sampler"
	"github.com/network-quality/goepping/utilities"
)

var (
	// Variables to hold CLI arguments.
	captureFlag    = flag.String("capture", "", "path to a raw epping capture. When empty, the named trial's capture inside the data directory is used.")
	experimentFlag = flag.String("experiment", "", "name of the experiment trial to parse. Derived from the other arguments when empty.")
	flowsFlag      = flag.Int("flow", constants.DefaultFlowCount, "number of traffic-generator flows recorded in the capture.")
	timeFlag       = flag.Int("time", constants.DefaultTestTime, "length of the recording in seconds (only used for trial naming).")
	appFlag        = flag.String("app", constants.DefaultApplication, "traffic-generating application (iperf or neper).")
	ccaFlag        = flag.String("cca", constants.DefaultCongestionControl, "congestion-control algorithm the traffic generators ran with.")
	vxlanFlag      = flag.Bool("vxlan", false, "the capture was taken on the vxlan-encapsulated path.")
	nativeFlag     = flag.Bool("native", false, "the capture was taken on the native path.")
	clientFlag     = flag.String("client", constants.DefaultClientAddr, "address of the client host originating the flows.")
	serverFlag     = flag.String("server", constants.DefaultServerAddr, "address of the server host the flows target.")
	dataDirFlag    = flag.String("data", constants.DefaultDataDir, "directory the experiment trials live in.")
	parallelFlag   = flag.Bool("parallel", false, "scan the capture for all flows in parallel.")
	silentFlag     = flag.Bool("silent", false, "do not print per-flow RTT summaries.")
	cpuBeforeFlag  = flag.String("cpu-before", "", "path to a /proc/stat snapshot taken before the recording.")
	cpuAfterFlag   = flag.String("cpu-after", "", "path to a /proc/stat snapshot taken after the recording.")
	intBeforeFlag  = flag.String("int-before", "", "path to a /proc/interrupts snapshot taken before the recording.")
	intAfterFlag   = flag.String("int-after", "", "path to a /proc/interrupts snapshot taken after the recording.")
	debugCliFlag   = flag.Bool("debug", constants.DefaultDebug, "enable debugging.")
)

func main() {
	flag.Parse()

	debugLevel := debug.Error
	if *debugCliFlag {
		debugLevel = debug.Debug
	}
	scanDebugging := debug.NewDebugWithPrefix(debugLevel, "scan")

	if *vxlanFlag && *nativeFlag {
		fmt.Fprintf(os.Stderr, "Error: -vxlan and -native are mutually exclusive.\n")
		os.Exit(1)
	}
	mode := epping.Host
	if *vxlanFlag {
		mode = epping.Tunnel
	} else if *nativeFlag {
		mode = epping.Native
	}

	parameters, err := experiment.ParametersFromArguments(
		*flowsFlag, *timeFlag, mode, *ccaFlag, *appFlag, *clientFlag, *serverFlag, *dataDirFlag,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	name := *experimentFlag
	if len(name) == 0 {
		name = parameters.BaseName()
	}

	capturePath := *captureFlag
	if len(capturePath) == 0 {
		capturePath = filepath.Join(parameters.DataDir, name, experiment.CaptureFilename(name))
	}

	if debug.IsDebug(scanDebugging.Level) {
		fmt.Printf("(%v) Parsing %s with parameters:\n%s\n", scanDebugging, capturePath, parameters.ToString())
		if experiment.KernelInfoAvailable() {
			if kernel, err := experiment.KernelInfo(); err == nil {
				fmt.Printf("(%v) Host kernel: %s\n", scanDebugging, kernel)
			}
		}
	}

	lines, err := readCapture(capturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not read the capture %s: %v\n", capturePath, err)
		os.Exit(1)
	}

	executionMethod := executor.Serial
	if *parallelFlag {
		executionMethod = executor.Parallel
	}

	if debug.IsDebug(scanDebugging.Level) {
		proto := utilities.Conditional(mode == epping.Tunnel, "UDP", "TCP")
		for _, flowIndex := range utilities.Iota(0, parameters.FlowCount) {
			target, _ := epping.Target(parameters.ServerAddr, flowIndex)
			fmt.Printf("(%v) %d: %s %s:*+%s\n", scanDebugging, flowIndex, proto, parameters.ClientAddr, target)
		}
	}

	flowMap, err := epping.ScanFlows(
		lines, mode, parameters.ClientAddr, parameters.ServerAddr,
		parameters.FlowCount, executionMethod,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: there are no epping samples: %v\n", err)
		os.Exit(1)
	}

	outputDir := filepath.Dir(capturePath)
	for _, flowIndex := range utilities.Iota(0, parameters.FlowCount) {
		series := flowMap[flowIndex]
		if err := exportFlowSeries(outputDir, name, series); err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not export flow %d: %v\n", flowIndex, err)
			os.Exit(1)
		}
		if !*silentFlag {
			summary, err := rttstats.Summarize(series.Samples)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: could not summarize flow %d: %v\n", flowIndex, err)
				os.Exit(1)
			}
			fmt.Printf("Flow %d (%s), %d samples:\n%s", flowIndex, series.Target, len(series.Samples), summary.Repr())
		}
	}

	if err := reportCPUUtilization(outputDir, name, *cpuBeforeFlag, *cpuAfterFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not report cpu utilization: %v\n", err)
		os.Exit(1)
	}
	if err := reportInterruptDeltas(outputDir, name, *intBeforeFlag, *intAfterFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not report interrupt counts: %v\n", err)
		os.Exit(1)
	}
}

func readCapture(capturePath string) ([]string, error) {
	captureFile, err := os.Open(capturePath)
	if err != nil {
		return nil, err
	}
	defer captureFile.Close()
	return utilities.ReadAllLines(captureFile)
}

func exportFlowSeries(outputDir string, name string, series epping.FlowSeries) error {
	outputPath := filepath.Join(outputDir, experiment.FlowOutputFilename(series.FlowIndex, name))
	logger, err := datalogger.CreateCSVDataLogger[epping.Sample](outputPath, epping.Sample.Record)
	if err != nil {
		return err
	}
	defer logger.Close()

	for _, sample := range series.Samples {
		logger.LogRecord(sample)
	}
	if !logger.Export() {
		return fmt.Errorf("exporting to %s failed", outputPath)
	}
	return nil
}

func reportCPUUtilization(outputDir string, name string, beforePath string, afterPath string) error {
	if len(beforePath) == 0 && len(afterPath) == 0 {
		return nil
	}
	if len(beforePath) == 0 || len(afterPath) == 0 {
		return fmt.Errorf("cpu snapshots must be given in a before/after pair")
	}

	before, err := parseCPUSnapshotFile(beforePath)
	if err != nil {
		return err
	}
	after, err := parseCPUSnapshotFile(afterPath)
	if err != nil {
		return err
	}
	utilization, err := after.UtilizationSince(before)
	if err != nil {
		return err
	}

	outputPath := filepath.Join(outputDir, experiment.CPUFilename(name))
	logger, err := datalogger.CreateCSVDataLogger[sampler.CPUUtilization](outputPath, sampler.CPUUtilization.Record)
	if err != nil {
		return err
	}
	defer logger.Close()
	for _, record := range utilization {
		logger.LogRecord(record)
	}
	if !logger.Export() {
		return fmt.Errorf("exporting to %s failed", outputPath)
	}
	return nil
}

func reportInterruptDeltas(outputDir string, name string, beforePath string, afterPath string) error {
	if len(beforePath) == 0 && len(afterPath) == 0 {
		return nil
	}
	if len(beforePath) == 0 || len(afterPath) == 0 {
		return fmt.Errorf("interrupt snapshots must be given in a before/after pair")
	}

	before, err := parseInterruptSnapshotFile(beforePath)
	if err != nil {
		return err
	}
	after, err := parseInterruptSnapshotFile(afterPath)
	if err != nil {
		return err
	}
	deltas, err := after.DeltaSince(before)
	if err != nil {
		return err
	}

	outputPath := filepath.Join(outputDir, experiment.InterruptFilename(name))
	logger, err := datalogger.CreateCSVDataLogger[sampler.InterruptDelta](outputPath, sampler.InterruptDelta.Record)
	if err != nil {
		return err
	}
	defer logger.Close()
	for _, record := range deltas {
		logger.LogRecord(record)
	}
	if !logger.Export() {
		return fmt.Errorf("exporting to %s failed", outputPath)
	}
	return nil
}

func parseCPUSnapshotFile(path string) (*sampler.CPUSnapshot, error) {
	snapshotFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer snapshotFile.Close()
	return sampler.ParseCPUSnapshot(snapshotFile)
}

func parseInterruptSnapshotFile(path string) (*sampler.InterruptSnapshot, error) {
	snapshotFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer snapshotFile.Close()
	return sampler.ParseInterruptSnapshot(snapshotFile)
}
