// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package devices is a container for the Si7013 driver and the helpers it
// shares.
//
// The driver is in package si7013; cmd/si7013 exports its readings to
// Prometheus.
package devices
