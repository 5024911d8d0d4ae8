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

package utilities

import (
	"bufio"
	"fmt"
	"io"
	"math"
)

type Optional[S any] struct {
	value S
	some  bool
}

func Some[S any](value S) Optional[S] {
	return Optional[S]{value: value, some: true}
}

func None[S any]() Optional[S] {
	return Optional[S]{some: false}
}

func IsNone[S any](optional Optional[S]) bool {
	return !optional.some
}

func IsSome[S any](optional Optional[S]) bool {
	return optional.some
}

// GetSome panics when given a None -- check with IsSome first.
func GetSome[S any](optional Optional[S]) S {
	if !optional.some {
		panic("Attempting to access the value of a None optional.")
	}
	return optional.value
}

func GetSomeWithDefault[S any](optional Optional[S], defaultValue S) S {
	if optional.some {
		return optional.value
	}
	return defaultValue
}

func (optional Optional[S]) String() string {
	if optional.some {
		return fmt.Sprintf("Some(%v)", optional.value)
	}
	return "None"
}

type Pair[F any, S any] struct {
	First  F
	Second S
}

func NewPair[F any, S any](first F, second S) Pair[F, S] {
	return Pair[F, S]{First: first, Second: second}
}

func Filter[T any](elements []T, filterer func(T) bool) []T {
	result := make([]T, 0)
	for _, element := range elements {
		if filterer(element) {
			result = append(result, element)
		}
	}
	return result
}

// Iota generates the sequence of integers in [low, high), for use as
// a range expression.
func Iota(low int, high int) []int {
	result := make([]int, high-low)
	for counter := low; counter < high; counter++ {
		result[counter-low] = counter
	}
	return result
}

func ApproximatelyEqual(first float64, second float64, tolerance float64) bool {
	return math.Abs(first-second) < tolerance
}

func Conditional(condition bool, t string, f string) string {
	if condition {
		return t
	}
	return f
}

// ReadAllLines slurps a text stream into a line buffer. The resulting
// slice is safe to share (read-only) between repeated scans.
func ReadAllLines(source io.Reader) ([]string, error) {
	lines := make([]string, 0)
	scanner := bufio.NewScanner(source)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
