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
	"fmt"
	"regexp"

	"github.com/network-quality/goepping/utilities"
)

// TransportMode describes the path the capture was taken on. Tunnel
// traffic is vxlan-encapsulated and shows up in the capture as UDP;
// the native and host paths show up as TCP.
type TransportMode int

const (
	Tunnel TransportMode = iota
	Native
	Host
)

func (mode TransportMode) ToString() string {
	switch mode {
	case Tunnel:
		return "Tunnel"
	case Native:
		return "Native"
	case Host:
		return "Host"
	}
	return "Unrecognized transport mode"
}

// DestinationPorts is the fixed table of well-known traffic-generator
// ports. Flow index i is the flow destined to DestinationPorts[i].
var DestinationPorts = [8]int{5200, 5201, 5202, 5203, 5204, 5205, 5206, 5207}

// Target yields the destination address:port identifier of a flow.
func Target(daddr string, flowIndex int) (string, error) {
	if flowIndex < 0 || flowIndex >= len(DestinationPorts) {
		return "", fmt.Errorf(
			"flow index %d is outside the destination-port table (0 through %d)",
			flowIndex, len(DestinationPorts)-1,
		)
	}
	return fmt.Sprintf("%s:%d", daddr, DestinationPorts[flowIndex]), nil
}

// BuildFlowPattern constructs the line-matching pattern for one flow:
// a leading timestamp field, two millisecond fields, the transport
// protocol tag and the source-wildcard/destination address pair. The
// three capture groups are the ones Scan expects.
func BuildFlowPattern(
	mode TransportMode,
	saddr string,
	daddr string,
	flowIndex int,
) (*regexp.Regexp, error) {
	target, err := Target(daddr, flowIndex)
	if err != nil {
		return nil, err
	}

	proto := utilities.Conditional(mode == Tunnel, "UDP", "TCP")
	pattern := `^(\d{2}:\d{2}:\d{2}\.\d{1,9})\s(.+?)\sms\s(.+?)\sms\s` +
		proto + `\s` + regexp.QuoteMeta(saddr) + `:.*\+` + regexp.QuoteMeta(target) + `$`
	return regexp.Compile(pattern)
}
