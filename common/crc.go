// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions shared by the drivers in this module.
// For example, a CRC8 calculation.
package common

// CRC8 calculates the 8-bit CRC (polynomial x^8+x^5+x^4+1) of the byte slice
// starting from seed, and returns the calculated value. Silicon Labs Si70xx
// parts seed with 0x00, TI and Sensirion parts with 0xff.
func CRC8(seed byte, bytes []byte) byte {
	crc := seed
	for _, val := range bytes {
		crc ^= val
		for i := 0; i < 8; i++ {
			if (crc & 0x80) == 0 {
				crc <<= 1
			} else {
				crc = (byte)((crc << 1) ^ 0x31)
			}
		}
	}
	return crc
}
