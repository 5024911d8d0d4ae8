//go:build dragonfly || freebsd || linux || netbsd || openbsd || darwin
// +build dragonfly freebsd linux netbsd openbsd darwin

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

	"golang.org/x/sys/unix"
)

func KernelInfoAvailable() bool {
	return true
}

// KernelInfo identifies the kernel the capture was taken under, so a
// trial's report names the environment it measured.
func KernelInfo() (string, error) {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return "", fmt.Errorf("could not query uname: %v", err)
	}
	return fmt.Sprintf("%s %s %s",
		unix.ByteSliceToString(uname.Sysname[:]),
		unix.ByteSliceToString(uname.Release[:]),
		unix.ByteSliceToString(uname.Machine[:]),
	), nil
}
