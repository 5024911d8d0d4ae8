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

package constants

var (
	// The number of traffic-generator flows recorded in a capture by default.
	DefaultFlowCount int = 6
	// The default length of the recording window, in seconds. Only used
	// for experiment naming -- the parser takes the capture as it is.
	DefaultTestTime int = 60

	// The congestion-control algorithm the traffic generators run with.
	DefaultCongestionControl string = "bbr"
	// The traffic-generating application driving the flows.
	DefaultApplication string = "iperf"

	// Addresses of the two measurement hosts on the experiment network.
	// The client originates the flows; the server side carries the
	// well-known destination ports that tell the flows apart.
	DefaultClientAddr string = "192.168.2.102"
	DefaultServerAddr string = "192.168.2.103"

	// Where experiment trial directories live, relative to the working
	// directory of the capture scripts.
	DefaultDataDir string = "../data"

	// The default determination of whether to run in debug mode.
	DefaultDebug bool = false
)
