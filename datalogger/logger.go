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

package datalogger

import (
	"io"
	"os"
	"sync"
)

type DataLogger[T any] interface {
	LogRecord(record T)
	Export() bool
	Close() bool
}

// CSVDataLogger accumulates records in memory and writes them out on
// Export, one line per record, formatted by the record formatter it
// was created with. The per-flow sample files carry no header.
type CSVDataLogger[T any] struct {
	mut         *sync.Mutex
	recordCount int
	data        []T
	format      func(T) string
	isOpen      bool
	destination io.WriteCloser
}

func CreateCSVDataLogger[T any](filename string, format func(T) string) (DataLogger[T], error) {
	data := make([]T, 0)
	destination, err := os.Create(filename)
	if err != nil {
		return &CSVDataLogger[T]{&sync.Mutex{}, 0, data, format, false, destination}, err
	}

	result := CSVDataLogger[T]{&sync.Mutex{}, 0, data, format, true, destination}
	return &result, nil
}

func (logger *CSVDataLogger[T]) LogRecord(record T) {
	logger.mut.Lock()
	defer logger.mut.Unlock()
	logger.recordCount += 1
	logger.data = append(logger.data, record)
}

func (logger *CSVDataLogger[T]) Export() bool {
	logger.mut.Lock()
	defer logger.mut.Unlock()
	if !logger.isOpen {
		return false
	}

	for _, record := range logger.data {
		if _, err := logger.destination.Write([]byte(logger.format(record) + "\n")); err != nil {
			return false
		}
	}
	return true
}

func (logger *CSVDataLogger[T]) Close() bool {
	logger.mut.Lock()
	defer logger.mut.Unlock()
	if !logger.isOpen {
		return false
	}
	logger.destination.Close()
	logger.isOpen = false
	return true
}
