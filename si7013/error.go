// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package si7013

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned before any bus access when a register
// selector, address or field value is not one the device accepts.
var ErrInvalidArgument = errors.New("si7013: invalid argument")

// TransportError is returned when the I²C bus fails while transmitting a
// command or receiving its result. The bus error is returned by Unwrap as is.
type TransportError struct {
	// Op is "transmit" or "receive".
	Op string
	// Cmd is the first command byte of the failed transaction.
	Cmd byte
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("si7013: %s 0x%02x: %v", e.Op, e.Cmd, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DataCorruptionError is returned when a CRC read from the device does not
// match the data it covers.
type DataCorruptionError struct {
	Want, Got byte
}

func (e *DataCorruptionError) Error() string {
	return fmt.Sprintf("si7013: data is corrupt, crc 0x%02x != 0x%02x", e.Got, e.Want)
}
