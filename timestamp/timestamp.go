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

// Package timestamp converts the wall-clock strings that epping stamps
// on its report lines into absolute nanosecond counts.
package timestamp

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const nanosecondDigits = 9

// ToNanoseconds converts a wall-clock string of the form
// HH:MM:SS.fffffffff into a count of nanoseconds since midnight. The
// fractional-seconds field may carry between 1 and 9 digits and is
// right-padded with zeros to nanosecond resolution, so "00:00:00.5"
// means half a second, not 5 nanoseconds.
func ToNanoseconds(text string) (int64, error) {
	clockFields := strings.Split(text, ":")
	if len(clockFields) != 3 {
		return 0, fmt.Errorf("timestamp %q does not have the form HH:MM:SS.f", text)
	}

	secondsFields := strings.Split(clockFields[2], ".")
	if len(secondsFields) != 2 {
		return 0, fmt.Errorf("timestamp %q is missing a fractional-seconds field", text)
	}

	fraction := secondsFields[1]
	if len(fraction) < 1 || len(fraction) > nanosecondDigits {
		return 0, fmt.Errorf(
			"timestamp %q has a fractional-seconds field of %d digits (expected 1 through %d)",
			text, len(fraction), nanosecondDigits,
		)
	}
	fraction += strings.Repeat("0", nanosecondDigits-len(fraction))

	hours, err := strconv.ParseUint(clockFields[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("timestamp %q has a non-numeric hours field: %v", text, err)
	}
	minutes, err := strconv.ParseUint(clockFields[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("timestamp %q has a non-numeric minutes field: %v", text, err)
	}
	seconds, err := strconv.ParseUint(secondsFields[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("timestamp %q has a non-numeric seconds field: %v", text, err)
	}
	nanoseconds, err := strconv.ParseUint(fraction, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("timestamp %q has a non-numeric fractional-seconds field: %v", text, err)
	}

	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(nanoseconds)*time.Nanosecond
	return int64(total), nil
}
