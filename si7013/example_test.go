// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package si7013_test

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/s54mtb/Si7013/si7013"
)

// Example reads the sensor, then connects the thermistor to VDD and reads the
// analog input.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	dev, err := si7013.NewI2C(bus, si7013.DefaultAddress, &si7013.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}

	id, err := dev.DeviceID()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Device ID: 0x%02x\n", id)

	temp, err := dev.MeasureTemperature()
	if err != nil {
		log.Fatal(err)
	}
	rh, err := dev.MeasureHumidity()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Temperature: %d m°C Humidity: %d m%%RH\n", temp, rh)

	regs, err := dev.ReadRegisters()
	if err != nil {
		log.Fatal(err)
	}
	regs.Reg2.SetVOut(true)
	regs.Reg2.SetVRefP(true)
	if err := dev.WriteRegisters(&regs); err != nil {
		log.Fatal(err)
	}
	therm, err := dev.MeasureThermistor()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Thermistor: %d\n", therm)
}

// ExampleDev_Sense reads the sensor through the physic.SenseEnv interface.
func ExampleDev_Sense() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	dev, err := si7013.NewI2C(bus, si7013.DefaultAddress, nil)
	if err != nil {
		log.Fatal(err)
	}
	if err := dev.SetResolution(si7013.ResolutionRH12T14); err != nil {
		log.Fatal(err)
	}
	env := physic.Env{}
	if err := dev.Sense(&env); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Temperature: %s Humidity: %s\n", env.Temperature, env.Humidity)
}
