// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package si7013

import "fmt"

// Command is a single byte command understood by the Si7013.
//
// The register selectors accepted by ReadRegister and WriteRegister are
// values of this type.
type Command byte

const (
	// Hold master mode commands stretch the clock until the conversion is
	// done. They are the only measurement commands this driver issues.
	CmdMeasureHumidityHold    Command = 0xe5
	CmdMeasureTemperatureHold Command = 0xe3
	CmdMeasureThermistorHold  Command = 0xee

	// No hold master mode. Listed for completeness, not driven.
	CmdMeasureHumidityNoHold    Command = 0xf5
	CmdMeasureTemperatureNoHold Command = 0xf3

	// Temperature value measured during the last humidity conversion.
	CmdReadPreviousTemperature Command = 0xe0
	CmdReset                   Command = 0xfe

	CmdWriteRegister1 Command = 0xe6
	CmdReadRegister1  Command = 0xe7
	CmdWriteRegister2 Command = 0x50
	CmdReadRegister2  Command = 0x10
	CmdWriteRegister3 Command = 0x51
	CmdReadRegister3  Command = 0x11

	// Thermistor correction coefficient memory. Not driven.
	CmdWriteCoefficient Command = 0xc5
	CmdReadCoefficient  Command = 0x84
)

// Two byte command sequences.
var (
	// First access of the electronic ID. 8 byte response.
	readIDFirstAccess = []byte{0xfa, 0x0f}
	// Second access of the electronic ID. 6 byte response, the first byte
	// is the device identification.
	readIDSecondAccess = []byte{0xfc, 0xc9}
	readFirmware       = []byte{byte(CmdReadCoefficient), 0xb8}
)

const (
	responseSizeMeasure  = 2
	responseSizeRegister = 1
	responseSizeIDFirst  = 8
	responseSizeIDSecond = 6
)

// isMeasurement reports whether the command starts a full conversion.
func (c Command) isMeasurement() bool {
	switch c {
	case CmdMeasureHumidityHold, CmdMeasureTemperatureHold, CmdMeasureThermistorHold:
		return true
	}
	return false
}

// readRegister returns the register number, 1 through 3, that a read selector
// addresses. 0 is returned for anything else.
func (c Command) readRegister() int {
	switch c {
	case CmdReadRegister1:
		return 1
	case CmdReadRegister2:
		return 2
	case CmdReadRegister3:
		return 3
	}
	return 0
}

// writeRegister is the write selector equivalent of readRegister.
func (c Command) writeRegister() int {
	switch c {
	case CmdWriteRegister1:
		return 1
	case CmdWriteRegister2:
		return 2
	case CmdWriteRegister3:
		return 3
	}
	return 0
}

func (c Command) String() string {
	switch c {
	case CmdMeasureHumidityHold:
		return "MeasureHumidityHold"
	case CmdMeasureTemperatureHold:
		return "MeasureTemperatureHold"
	case CmdMeasureThermistorHold:
		return "MeasureThermistorHold"
	case CmdMeasureHumidityNoHold:
		return "MeasureHumidityNoHold"
	case CmdMeasureTemperatureNoHold:
		return "MeasureTemperatureNoHold"
	case CmdReadPreviousTemperature:
		return "ReadPreviousTemperature"
	case CmdReset:
		return "Reset"
	case CmdWriteRegister1:
		return "WriteRegister1"
	case CmdReadRegister1:
		return "ReadRegister1"
	case CmdWriteRegister2:
		return "WriteRegister2"
	case CmdReadRegister2:
		return "ReadRegister2"
	case CmdWriteRegister3:
		return "WriteRegister3"
	case CmdReadRegister3:
		return "ReadRegister3"
	case CmdWriteCoefficient:
		return "WriteCoefficient"
	case CmdReadCoefficient:
		return "ReadCoefficient"
	}
	return fmt.Sprintf("Command(0x%02x)", byte(c))
}
