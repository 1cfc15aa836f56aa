// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package si7013

import (
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"github.com/s54mtb/Si7013/common"
)

const (
	// DefaultAddress is the bus address with the AD0 pin low.
	DefaultAddress uint16 = 0x40
	// AlternateAddress is the bus address with the AD0 pin high.
	AlternateAddress uint16 = 0x41
)

const (
	// The low two bits of a measurement are status bits, not data.
	statusBits uint16 = 0x03

	minHumidity int32 = 0
	maxHumidity int32 = 100_000
)

// Opts holds the configuration options for the device.
type Opts struct {
	// RegisterDelay is the wait between sending a register read (or a read
	// of the previous temperature) and reading the result. Default is 5ms.
	RegisterDelay time.Duration
	// ConversionDelay is the wait between starting a measurement and reading
	// the result. It covers the worst case 14 bit temperature or 12 bit
	// humidity conversion. Default is 15ms.
	ConversionDelay time.Duration
	// ResetDelay is the wait after a soft reset. Default is 15ms.
	ResetDelay time.Duration
	// ValidateData enables CRC8 checking of the electronic ID. Default is
	// true.
	ValidateData bool
	// Delay blocks for the given duration. Default is time.Sleep.
	Delay func(time.Duration)
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	RegisterDelay:   5 * time.Millisecond,
	ConversionDelay: 15 * time.Millisecond,
	ResetDelay:      15 * time.Millisecond,
	ValidateData:    true,
	Delay:           time.Sleep,
}

// Dev is a handle to an Si7013 on an I²C bus.
//
// The register state is not cached: RegisterSet values belong to the caller.
type Dev struct {
	d    *i2c.Dev
	opts Opts
	mu   sync.Mutex
}

// NewI2C returns an object that communicates over I²C to an Si7013. addr must
// be DefaultAddress or AlternateAddress. The Opts can be nil. The device is
// not touched.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if addr != DefaultAddress && addr != AlternateAddress {
		return nil, fmt.Errorf("%w: address 0x%02x", ErrInvalidArgument, addr)
	}
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.RegisterDelay <= 0 {
		o.RegisterDelay = DefaultOpts.RegisterDelay
	}
	if o.ConversionDelay <= 0 {
		o.ConversionDelay = DefaultOpts.ConversionDelay
	}
	if o.ResetDelay <= 0 {
		o.ResetDelay = DefaultOpts.ResetDelay
	}
	if o.Delay == nil {
		o.Delay = time.Sleep
	}
	return &Dev{d: &i2c.Dev{Bus: b, Addr: addr}, opts: o}, nil
}

// DeviceID returns the device identification byte, 0x0d for an Si7013.
//
// The identification is the first byte of the second electronic ID access.
// The other five bytes are read and discarded; use SerialNumber for the full
// electronic ID.
func (d *Dev) DeviceID() (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r := make([]byte, responseSizeIDSecond)
	if err := d.txWithDelay(readIDSecondAccess, r, 0); err != nil {
		return 0, err
	}
	return r[0], nil
}

// SerialNumber returns the 64 bit electronic ID set at the factory. The upper
// 32 bits come from the first ID access, the lower 32 bits from the second;
// bits 31 to 24 are the DeviceID.
func (d *Dev) SerialNumber() (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a := make([]byte, responseSizeIDFirst)
	if err := d.txWithDelay(readIDFirstAccess, a, 0); err != nil {
		return 0, err
	}
	// SNA_3, CRC, SNA_2, CRC, SNA_1, CRC, SNA_0, CRC
	sna, err := d.idBytes(a, 1, 3, 5, 7)
	if err != nil {
		return 0, err
	}
	b := make([]byte, responseSizeIDSecond)
	if err := d.txWithDelay(readIDSecondAccess, b, 0); err != nil {
		return 0, err
	}
	// SNB_3, SNB_2, CRC, SNB_1, SNB_0, CRC
	snb, err := d.idBytes(b, 2, 5)
	if err != nil {
		return 0, err
	}
	var sn uint64
	for _, v := range append(sna, snb...) {
		sn = sn<<8 | uint64(v)
	}
	return sn, nil
}

// FirmwareRevision returns the firmware revision byte: 0xff is revision 1.0,
// 0x20 is revision 2.0.
func (d *Dev) FirmwareRevision() (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r := make([]byte, responseSizeRegister)
	if err := d.txWithDelay(readFirmware, r, 0); err != nil {
		return 0, err
	}
	return r[0], nil
}

// MeasureTemperature starts a temperature conversion and returns the result in
// milli-degrees Celsius.
func (d *Dev) MeasureTemperature() (int32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	raw, err := d.measure(CmdMeasureTemperatureHold)
	if err != nil {
		return 0, err
	}
	return countToTemperature(raw), nil
}

// ReadPreviousTemperature returns, in milli-degrees Celsius, the temperature
// the device measured during the last humidity conversion. No new conversion
// is started.
func (d *Dev) ReadPreviousTemperature() (int32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	raw, err := d.measure(CmdReadPreviousTemperature)
	if err != nil {
		return 0, err
	}
	return countToTemperature(raw), nil
}

// MeasureHumidity starts a humidity conversion and returns the relative
// humidity in milli-percent, limited to 0 to 100000.
func (d *Dev) MeasureHumidity() (int32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	raw, err := d.measure(CmdMeasureHumidityHold)
	if err != nil {
		return 0, err
	}
	return countToHumidity(raw), nil
}

// MeasureThermistor starts a conversion of the analog input and returns the
// signed result. Register2 selects how the thermistor is biased and
// referenced.
func (d *Dev) MeasureThermistor() (int16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	raw, err := d.measure(CmdMeasureThermistorHold)
	if err != nil {
		return 0, err
	}
	return countToThermistor(raw), nil
}

// Sense measures humidity, then reads the temperature taken during that
// conversion. The pressure is always 0.
func (d *Dev) Sense(e *physic.Env) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	e.Pressure = 0
	rh, err := d.measure(CmdMeasureHumidityHold)
	if err != nil {
		return err
	}
	t, err := d.measure(CmdReadPreviousTemperature)
	if err != nil {
		return err
	}
	e.Humidity = milliPercentToHumidity(countToHumidity(rh))
	e.Temperature = milliCelsiusToTemperature(countToTemperature(t))
	return nil
}

// Precision returns the step size of a reading at the power on resolution,
// 12 bit humidity and 14 bit temperature.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = 4 * 21965 * physic.MilliKelvin / 8192
	e.Humidity = 16 * 15625 * (physic.PercentRH / 1000) / 8192
	e.Pressure = 0
}

// Reset performs a soft reset. The user registers return to their power on
// values.
func (d *Dev) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.transmit([]byte{byte(CmdReset)}); err != nil {
		return err
	}
	d.opts.Delay(d.opts.ResetDelay)
	return nil
}

// ReadRegister reads one user register. sel must be CmdReadRegister1,
// CmdReadRegister2 or CmdReadRegister3.
func (d *Dev) ReadRegister(sel Command) (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readRegister(sel)
}

// WriteRegister writes the full register byte v. sel must be
// CmdWriteRegister1, CmdWriteRegister2 or CmdWriteRegister3.
//
// Reserved bits are written as given, so v should come from a prior read.
func (d *Dev) WriteRegister(sel Command, v byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeRegister(sel, v)
}

// ReadRegisters reads the three user registers in order. On error the
// returned RegisterSet is zero, even if earlier registers were read.
func (d *Dev) ReadRegisters() (RegisterSet, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var rs RegisterSet
	v, err := d.readRegister(CmdReadRegister1)
	if err != nil {
		return RegisterSet{}, err
	}
	rs.Reg1 = Register1(v)
	if v, err = d.readRegister(CmdReadRegister2); err != nil {
		return RegisterSet{}, err
	}
	rs.Reg2 = Register2(v)
	if v, err = d.readRegister(CmdReadRegister3); err != nil {
		return RegisterSet{}, err
	}
	rs.Reg3 = Register3(v)
	return rs, nil
}

// WriteRegisters writes the three user registers in order and stops at the
// first error. Registers written before the error keep their new value.
func (d *Dev) WriteRegisters(rs *RegisterSet) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.writeRegister(CmdWriteRegister1, byte(rs.Reg1)); err != nil {
		return err
	}
	if err := d.writeRegister(CmdWriteRegister2, byte(rs.Reg2)); err != nil {
		return err
	}
	return d.writeRegister(CmdWriteRegister3, byte(rs.Reg3))
}

// SetResolution changes the measurement resolution with a read-modify-write of
// Register1.
func (d *Dev) SetResolution(res Resolution) error {
	if res > ResolutionRH11T11 {
		return fmt.Errorf("%w: resolution %d", ErrInvalidArgument, res)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.readRegister(CmdReadRegister1)
	if err != nil {
		return err
	}
	r := Register1(v)
	r.SetResolution(res)
	return d.writeRegister(CmdWriteRegister1, byte(r))
}

// SetHeater sets the heater current level in Register3, then turns the heater
// on or off in Register1. Both are read-modify-write. Enabling the heater can
// drive off condensation; it raises the temperature reading.
func (d *Dev) SetHeater(level uint8, enabled bool) error {
	var r3 Register3
	if err := r3.SetHeater(level); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.readRegister(CmdReadRegister3)
	if err != nil {
		return err
	}
	r3 = Register3(v)
	_ = r3.SetHeater(level)
	if err := d.writeRegister(CmdWriteRegister3, byte(r3)); err != nil {
		return err
	}
	if v, err = d.readRegister(CmdReadRegister1); err != nil {
		return err
	}
	r1 := Register1(v)
	r1.SetHeaterEnabled(enabled)
	return d.writeRegister(CmdWriteRegister1, byte(r1))
}

// Halt implements conn.Resource. The device has no running operation to stop.
func (d *Dev) Halt() error {
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("si7013: %s", d.d.String())
}

func (d *Dev) readRegister(sel Command) (byte, error) {
	if sel.readRegister() == 0 {
		return 0, fmt.Errorf("%w: %s is not a register read", ErrInvalidArgument, sel)
	}
	r := make([]byte, responseSizeRegister)
	if err := d.txWithDelay([]byte{byte(sel)}, r, d.opts.RegisterDelay); err != nil {
		return 0, err
	}
	return r[0], nil
}

func (d *Dev) writeRegister(sel Command, v byte) error {
	if sel.writeRegister() == 0 {
		return fmt.Errorf("%w: %s is not a register write", ErrInvalidArgument, sel)
	}
	return d.transmit([]byte{byte(sel), v})
}

// measure sends cmd, waits for the result and returns it with the status bits
// cleared.
func (d *Dev) measure(cmd Command) (uint16, error) {
	delay := d.opts.RegisterDelay
	if cmd.isMeasurement() {
		delay = d.opts.ConversionDelay
	}
	r := make([]byte, responseSizeMeasure)
	if err := d.txWithDelay([]byte{byte(cmd)}, r, delay); err != nil {
		return 0, err
	}
	return (uint16(r[0])<<8 | uint16(r[1])) &^ statusBits, nil
}

// txWithDelay writes w, waits delay and reads into r. The device does not
// answer a read issued right after some commands, so the two are separate
// transactions.
func (d *Dev) txWithDelay(w, r []byte, delay time.Duration) error {
	if err := d.transmit(w); err != nil {
		return err
	}
	if delay > 0 {
		d.opts.Delay(delay)
	}
	if err := d.d.Tx(nil, r); err != nil {
		return &TransportError{Op: "receive", Cmd: w[0], Err: err}
	}
	return nil
}

func (d *Dev) transmit(w []byte) error {
	if err := d.d.Tx(w, nil); err != nil {
		return &TransportError{Op: "transmit", Cmd: w[0], Err: err}
	}
	return nil
}

// idBytes returns the data bytes of an electronic ID access. crcAt are the
// offsets of the CRC bytes; each CRC covers all the data bytes of the access
// before it.
func (d *Dev) idBytes(r []byte, crcAt ...int) ([]byte, error) {
	data := make([]byte, 0, len(r)-len(crcAt))
	pos := 0
	for _, at := range crcAt {
		data = append(data, r[pos:at]...)
		pos = at + 1
		if !d.opts.ValidateData {
			continue
		}
		if want := common.CRC8(0, data); r[at] != want {
			return nil, &DataCorruptionError{Want: want, Got: r[at]}
		}
	}
	return data, nil
}

// countToTemperature converts a temperature code to milli-degrees Celsius.
func countToTemperature(raw uint16) int32 {
	return ((int32(raw) * 21965) >> 13) - 46850
}

// countToHumidity converts a humidity code to milli-percent RH. The formula
// goes slightly outside 0-100% at the ends of the range.
func countToHumidity(raw uint16) int32 {
	rh := ((int32(raw) * 15625) >> 13) - 6000
	if rh < minHumidity {
		return minHumidity
	} else if rh > maxHumidity {
		return maxHumidity
	}
	return rh
}

// countToThermistor reinterprets the analog code as two's complement.
func countToThermistor(raw uint16) int16 {
	return int16(raw)
}

func milliCelsiusToTemperature(mc int32) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(mc)*physic.MilliKelvin
}

func milliPercentToHumidity(mrh int32) physic.RelativeHumidity {
	return physic.RelativeHumidity(mrh) * (physic.PercentRH / 1000)
}

var _ conn.Resource = &Dev{}
