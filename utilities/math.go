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
	"math"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

type Number interface {
	constraints.Float | constraints.Integer
}

func CalculateAverage[T Number](elements []T) float64 {
	total := T(0)
	for i := 0; i < len(elements); i++ {
		total += elements[i]
	}
	return float64(total) / float64(len(elements))
}

func CalculatePercentile[T Number](
	elements []T,
	p uint,
) (result T) {
	result = T(0)
	if p < 1 || p > 100 {
		return
	}

	sorted := make([]T, len(elements))
	copy(sorted, elements)
	slices.Sort(sorted)

	pindex := int((float64(p) / float64(100)) * float64(len(sorted)))
	if pindex >= len(sorted) {
		return
	}
	result = sorted[pindex]
	return
}

func CalculateStandardDeviation[T Number](elements []T) float64 {
	average := CalculateAverage(elements)

	// The variance is the average of the elements' squared differences
	// from the mean.
	sds := float64(0)
	for _, value := range elements {
		sds += math.Pow(float64(value)-average, 2)
	}
	variance := sds / float64(len(elements))

	return math.Sqrt(variance)
}
