// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package si7013

import (
	"errors"
	"testing"
)

func TestRegister1(t *testing.T) {
	// Reserved bits 1, 3, 4 and 5 set.
	r := Register1(0x3a)
	if r.Res0() || r.HeaterEnabled() || r.VDDS() || r.Res1() {
		t.Fatalf("unexpected bits set in %s", r)
	}
	r.SetHeaterEnabled(true)
	r.SetVDDS(true)
	if r != 0x7e {
		t.Errorf("got 0x%02x, expected 0x7e", byte(r))
	}
	r.SetHeaterEnabled(false)
	r.SetVDDS(false)
	if r != 0x3a {
		t.Errorf("reserved bits not preserved, got 0x%02x", byte(r))
	}
	r.SetRes0(true)
	r.SetRes1(true)
	if r != 0xbb || !r.Res0() || !r.Res1() {
		t.Errorf("got 0x%02x, expected 0xbb", byte(r))
	}
	t.Log(r.String())
}

func TestResolution(t *testing.T) {
	tests := []struct {
		res  Resolution
		want Register1
	}{
		{ResolutionRH12T14, 0x3a},
		{ResolutionRH8T12, 0x3b},
		{ResolutionRH10T13, 0xba},
		{ResolutionRH11T11, 0xbb},
	}
	for _, test := range tests {
		t.Run(test.res.String(), func(t *testing.T) {
			r := Register1(0xbb &^ (reg1Res0 | reg1Res1))
			r.SetResolution(test.res)
			if r != test.want {
				t.Errorf("SetResolution(%s)=0x%02x expected 0x%02x", test.res, byte(r), byte(test.want))
			}
			if got := r.Resolution(); got != test.res {
				t.Errorf("Resolution()=%s expected %s", got, test.res)
			}
		})
	}
	if s := Resolution(9).String(); s != "Resolution(9)" {
		t.Errorf("unexpected String() %q", s)
	}
}

func TestRegister2(t *testing.T) {
	var r Register2 = 0x88 // reserved bits 3 and 7
	setters := []struct {
		name string
		set  func(bool)
		get  func() bool
		mask Register2
	}{
		{"VOUT", func(v bool) { r.SetVOut(v) }, func() bool { return r.VOut() }, reg2VOut},
		{"VREFP", func(v bool) { r.SetVRefP(v) }, func() bool { return r.VRefP() }, reg2VRefP},
		{"VIN_BUF", func(v bool) { r.SetVInBuf(v) }, func() bool { return r.VInBuf() }, reg2VInBuf},
		{"CONV_TIME", func(v bool) { r.SetConvTime(v) }, func() bool { return r.ConvTime() }, reg2ConvTime},
		{"THERM_CORR", func(v bool) { r.SetThermCorr(v) }, func() bool { return r.ThermCorr() }, reg2ThermCorr},
		{"NO_HOLD", func(v bool) { r.SetNoHold(v) }, func() bool { return r.NoHold() }, reg2NoHold},
	}
	for _, s := range setters {
		r = 0x88
		s.set(true)
		if r != 0x88|s.mask || !s.get() {
			t.Errorf("%s: set got 0x%02x", s.name, byte(r))
		}
		s.set(false)
		if r != 0x88 || s.get() {
			t.Errorf("%s: clear got 0x%02x", s.name, byte(r))
		}
	}
	r = 0x03
	if s := r.String(); s != "0x03{VOUT|VREFP}" {
		t.Errorf("unexpected String() %q", s)
	}
}

func TestRegister3(t *testing.T) {
	r := Register3(0xa0)
	for level := uint8(0); level <= MaxHeaterLevel; level++ {
		if err := r.SetHeater(level); err != nil {
			t.Fatal(err)
		}
		if r.Heater() != level || r&0xf0 != 0xa0 {
			t.Errorf("SetHeater(%d) got 0x%02x", level, byte(r))
		}
	}
	before := r
	if err := r.SetHeater(MaxHeaterLevel + 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if r != before {
		t.Errorf("invalid SetHeater changed register to 0x%02x", byte(r))
	}
}

func TestRegisterSetString(t *testing.T) {
	rs := RegisterSet{Reg1: 0x04, Reg2: 0x01, Reg3: 0x05}
	want := "{Reg1: 0x04{HTRE}, Reg2: 0x01{VOUT}, Reg3: 0x05{HEATER=5}}"
	if s := rs.String(); s != want {
		t.Errorf("got %q expected %q", s, want)
	}
}
