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

// Package experiment carries the naming and bookkeeping conventions of
// the latency measurement experiments: trial directories, capture and
// per-flow output filenames, and the validated parameter set a run is
// described by.
package experiment

import (
	"fmt"
	"time"

	"github.com/network-quality/goepping/epping"
)

type Parameters struct {
	FlowCount         int
	TestTime          time.Duration
	Mode              epping.TransportMode
	CongestionControl string
	Application       string
	ClientAddr        string
	ServerAddr        string
	DataDir           string
}

func ParametersFromArguments(
	flows int, seconds int, mode epping.TransportMode,
	cca string, app string, clientAddr string, serverAddr string, dataDir string,
) (*Parameters, error) {
	if flows <= 0 || flows > len(epping.DestinationPorts) {
		return nil, fmt.Errorf(
			"cannot measure %d flows; the destination-port table holds 1 through %d",
			flows, len(epping.DestinationPorts),
		)
	}
	if seconds <= 0 {
		return nil, fmt.Errorf("cannot specify a 0 or negative test time")
	}
	if app != "iperf" && app != "neper" {
		return nil, fmt.Errorf("unknown traffic-generating application %q", app)
	}
	if len(cca) == 0 {
		return nil, fmt.Errorf("cannot specify an empty congestion-control algorithm")
	}
	if len(clientAddr) == 0 || len(serverAddr) == 0 {
		return nil, fmt.Errorf("cannot specify empty measurement-host addresses")
	}
	if len(dataDir) == 0 {
		return nil, fmt.Errorf("cannot specify an empty data directory")
	}

	params := Parameters{
		FlowCount: flows, TestTime: time.Duration(seconds) * time.Second,
		Mode: mode, CongestionControl: cca, Application: app,
		ClientAddr: clientAddr, ServerAddr: serverAddr, DataDir: dataDir,
	}
	return &params, nil
}

func (parameters *Parameters) ToString() string {
	return fmt.Sprintf(
		`Flows:                   %v,
Test Time:               %v,
Transport Mode:          %v,
Congestion Control:      %v,
Application:             %v,
Client Address:          %v,
Server Address:          %v,
Data Directory:          %v`,
		parameters.FlowCount, parameters.TestTime, parameters.Mode.ToString(),
		parameters.CongestionControl, parameters.Application,
		parameters.ClientAddr, parameters.ServerAddr, parameters.DataDir,
	)
}
