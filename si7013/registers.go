// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package si7013

import (
	"fmt"
	"strings"
)

// Register1 is the raw value of User Register 1.
//
// Bits 1, 3, 4 and 5 are reserved. The setters only touch their own bit so
// reserved bits read from the device are written back unchanged.
type Register1 byte

// Register2 is the raw value of User Register 2. Bits 3 and 7 are reserved.
type Register2 byte

// Register3 is the raw value of User Register 3. Bits 4 to 7 are reserved.
type Register3 byte

// Resolution is the measurement resolution selected by RES1:RES0 in Register1.
type Resolution byte

const (
	// RH 12 bits, temperature 14 bits. Power on default.
	ResolutionRH12T14 Resolution = iota
	// RH 8 bits, temperature 12 bits.
	ResolutionRH8T12
	// RH 10 bits, temperature 13 bits.
	ResolutionRH10T13
	// RH 11 bits, temperature 11 bits.
	ResolutionRH11T11
)

const (
	reg1Res0 Register1 = 1 << 0
	reg1HTRE Register1 = 1 << 2
	reg1VDDS Register1 = 1 << 6
	reg1Res1 Register1 = 1 << 7

	reg2VOut      Register2 = 1 << 0
	reg2VRefP     Register2 = 1 << 1
	reg2VInBuf    Register2 = 1 << 2
	reg2ConvTime  Register2 = 1 << 4
	reg2ThermCorr Register2 = 1 << 5
	reg2NoHold    Register2 = 1 << 6

	reg3HeaterMask Register3 = 0x0f

	// MaxHeaterLevel is the highest value accepted by Register3.SetHeater.
	MaxHeaterLevel uint8 = 15
)

// RegisterSet holds the three user registers. It is not synchronized with the
// device; use Dev.ReadRegisters to refresh it and Dev.WriteRegisters to push
// it back.
type RegisterSet struct {
	Reg1 Register1
	Reg2 Register2
	Reg3 Register3
}

func (r Register1) Res0() bool { return r&reg1Res0 != 0 }

func (r *Register1) SetRes0(v bool) { *r = Register1(setBit(byte(*r), byte(reg1Res0), v)) }

func (r Register1) Res1() bool { return r&reg1Res1 != 0 }

func (r *Register1) SetRes1(v bool) { *r = Register1(setBit(byte(*r), byte(reg1Res1), v)) }

// HeaterEnabled returns the HTRE bit.
func (r Register1) HeaterEnabled() bool { return r&reg1HTRE != 0 }

func (r *Register1) SetHeaterEnabled(v bool) { *r = Register1(setBit(byte(*r), byte(reg1HTRE), v)) }

// VDDS is set by the device when the supply voltage is low. Writing it has no
// effect on the device.
func (r Register1) VDDS() bool { return r&reg1VDDS != 0 }

func (r *Register1) SetVDDS(v bool) { *r = Register1(setBit(byte(*r), byte(reg1VDDS), v)) }

// Resolution decodes RES1:RES0.
func (r Register1) Resolution() Resolution {
	var res Resolution
	if r.Res1() {
		res |= 2
	}
	if r.Res0() {
		res |= 1
	}
	return res
}

// SetResolution encodes res into RES1:RES0.
func (r *Register1) SetResolution(res Resolution) {
	r.SetRes1(res&2 != 0)
	r.SetRes0(res&1 != 0)
}

func (r Register1) String() string {
	return fmt.Sprintf("0x%02x{%s}", byte(r), flags(
		bitName{r.Res0(), "RES0"},
		bitName{r.HeaterEnabled(), "HTRE"},
		bitName{r.VDDS(), "VDDS"},
		bitName{r.Res1(), "RES1"}))
}

// VOut connects the thermistor bias output to VDD.
func (r Register2) VOut() bool { return r&reg2VOut != 0 }

func (r *Register2) SetVOut(v bool) { *r = Register2(setBit(byte(*r), byte(reg2VOut), v)) }

// VRefP selects VDD as the analog reference instead of the internal one.
func (r Register2) VRefP() bool { return r&reg2VRefP != 0 }

func (r *Register2) SetVRefP(v bool) { *r = Register2(setBit(byte(*r), byte(reg2VRefP), v)) }

// VInBuf enables the analog input buffer.
func (r Register2) VInBuf() bool { return r&reg2VInBuf != 0 }

func (r *Register2) SetVInBuf(v bool) { *r = Register2(setBit(byte(*r), byte(reg2VInBuf), v)) }

// ConvTime selects the fast conversion time.
func (r Register2) ConvTime() bool { return r&reg2ConvTime != 0 }

func (r *Register2) SetConvTime(v bool) { *r = Register2(setBit(byte(*r), byte(reg2ConvTime), v)) }

// ThermCorr enables the thermistor correction from the coefficient memory.
func (r Register2) ThermCorr() bool { return r&reg2ThermCorr != 0 }

func (r *Register2) SetThermCorr(v bool) { *r = Register2(setBit(byte(*r), byte(reg2ThermCorr), v)) }

// NoHold disables clock stretching on the thermistor measurement.
func (r Register2) NoHold() bool { return r&reg2NoHold != 0 }

func (r *Register2) SetNoHold(v bool) { *r = Register2(setBit(byte(*r), byte(reg2NoHold), v)) }

func (r Register2) String() string {
	return fmt.Sprintf("0x%02x{%s}", byte(r), flags(
		bitName{r.VOut(), "VOUT"},
		bitName{r.VRefP(), "VREFP"},
		bitName{r.VInBuf(), "VIN_BUF"},
		bitName{r.ConvTime(), "CONV_TIME"},
		bitName{r.ThermCorr(), "THERM_CORR"},
		bitName{r.NoHold(), "NO_HOLD"}))
}

// Heater returns the 4 bit heater current level.
func (r Register3) Heater() uint8 { return uint8(r & reg3HeaterMask) }

// SetHeater sets the heater current level. Levels above MaxHeaterLevel
// return ErrInvalidArgument and leave r unchanged.
func (r *Register3) SetHeater(level uint8) error {
	if level > MaxHeaterLevel {
		return fmt.Errorf("%w: heater level %d > %d", ErrInvalidArgument, level, MaxHeaterLevel)
	}
	*r = (*r &^ reg3HeaterMask) | Register3(level)
	return nil
}

func (r Register3) String() string {
	return fmt.Sprintf("0x%02x{HEATER=%d}", byte(r), r.Heater())
}

func (rs *RegisterSet) String() string {
	return fmt.Sprintf("{Reg1: %s, Reg2: %s, Reg3: %s}", rs.Reg1, rs.Reg2, rs.Reg3)
}

func (res Resolution) String() string {
	switch res {
	case ResolutionRH12T14:
		return "RH12/T14"
	case ResolutionRH8T12:
		return "RH8/T12"
	case ResolutionRH10T13:
		return "RH10/T13"
	case ResolutionRH11T11:
		return "RH11/T11"
	}
	return fmt.Sprintf("Resolution(%d)", byte(res))
}

func setBit(b, mask byte, v bool) byte {
	if v {
		return b | mask
	}
	return b &^ mask
}

type bitName struct {
	set  bool
	name string
}

// flags joins the names of the bits that are set.
func flags(bits ...bitName) string {
	var set []string
	for _, b := range bits {
		if b.set {
			set = append(set, b.name)
		}
	}
	return strings.Join(set, "|")
}
