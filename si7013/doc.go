// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package si7013 controls a Silicon Labs Si7013 humidity and temperature
// sensor over I²C.
//
// Besides relative humidity and temperature the Si7013 has an analog input
// meant for an external thermistor. The three user registers select the
// measurement resolution, the heater and how the analog input is biased.
//
// Humidity is returned in milli-percent RH and temperature in milli-degrees
// Celsius. The si7013.Dev type also implements the physic.SenseEnv interface;
// the pressure is never set.
//
// Only hold master mode measurements are used, so a measurement blocks for the
// conversion time.
//
// **Datasheet:** https://www.silabs.com/documents/public/data-sheets/Si7013-A20.pdf
package si7013
