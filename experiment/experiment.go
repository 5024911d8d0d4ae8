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

package experiment

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/network-quality/goepping/epping"
)

func modeLetter(mode epping.TransportMode) string {
	switch mode {
	case epping.Tunnel:
		return "e"
	case epping.Native:
		return "n"
	}
	return "h"
}

// BaseName composes a trial-0 experiment name, e.g.
// rx-h-f6-t60-bbr-iperf-0.
func (parameters *Parameters) BaseName() string {
	return fmt.Sprintf("rx-%s-f%d-t%d-%s-%s-0",
		modeLetter(parameters.Mode), parameters.FlowCount,
		int(parameters.TestTime.Seconds()),
		parameters.CongestionControl, parameters.Application)
}

// NextTrialName bumps the trailing trial number of the given name
// until no directory of that name exists under dataDir.
func NextTrialName(dataDir string, name string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dataDir, name)); os.IsNotExist(err) {
			return name, nil
		}
		remained, last := reverseCutPoint(name)
		trial, err := strconv.Atoi(last)
		if err != nil {
			return "", fmt.Errorf("experiment name %q does not end in a trial number", name)
		}
		name = fmt.Sprintf("%s-%d", remained, trial+1)
	}
}

// reverseCutPoint splits name at its last dash for strings.Cut.
func reverseCutPoint(name string) (string, string) {
	index := strings.LastIndex(name, "-")
	if index < 0 {
		return name, ""
	}
	return name[:index], name[index+1:]
}

// CreateTrialDir reserves and creates the next free trial directory
// for the given base name and returns the trial's name.
func CreateTrialDir(dataDir string, base string) (string, error) {
	name, err := NextTrialName(dataDir, base)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Join(dataDir, name), 0755); err != nil {
		return "", err
	}
	return name, nil
}

// CaptureFilename is the name of the raw epping capture of a trial.
func CaptureFilename(name string) string {
	return fmt.Sprintf("raw.epping.%s.out", name)
}

// FlowOutputFilename is the name of the per-flow sample file of a trial.
func FlowOutputFilename(flowIndex int, name string) string {
	return fmt.Sprintf("epping.%d.%s.out", flowIndex, name)
}

// CPUFilename is the name of the cpu-utilization report of a trial.
func CPUFilename(name string) string {
	return fmt.Sprintf("cpu.%s.out", name)
}

// InterruptFilename is the name of the interrupt-count report of a trial.
func InterruptFilename(name string) string {
	return fmt.Sprintf("int.%s.out", name)
}
