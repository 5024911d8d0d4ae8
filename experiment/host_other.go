//go:build !(dragonfly || freebsd || linux || netbsd || openbsd || darwin)
// +build !dragonfly,!freebsd,!linux,!netbsd,!openbsd,!darwin

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

import "fmt"

func KernelInfoAvailable() bool {
	return false
}

func KernelInfo() (string, error) {
	return "", fmt.Errorf("kernel identification is unsupported on this platform")
}
