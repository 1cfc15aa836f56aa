// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// si7013 brings up an Si7013 on an I²C bus and exports its readings to
// Prometheus.
//
// At startup it reads the device identification, a temperature and a humidity
// sample, then connects the thermistor bias and reference to VDD and reads the
// thermistor input. Unless -once is given it then keeps sampling every
// -read-int and serves the values on /metrics.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/version"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/s54mtb/Si7013/si7013"
)

// CLI args
var (
	busName      = flag.String("bus", "", "I²C bus to use, the first one found if empty")
	address      = flag.Uint("addr", uint(si7013.DefaultAddress), "device address, 0x40 or 0x41")
	listenAddr   = flag.String("listen-address", ":8080", "The address to listen on for HTTP requests.")
	readInterval = flag.Duration("read-int", 30*time.Second, "time interval between sensor reads")
	once         = flag.Bool("once", false, "run the startup sequence and exit")
	verbose      = flag.Bool("v", false, "log every reading")
	showVersion  = flag.Bool("version", false, "print the version and exit")
)

// metrics to expose to Prometheus
var (
	gaugeHumidity    = newGauge("air_humidity", "Humidity (units: % of relative Humidity)")
	gaugeTemperature = newGauge("air_temperature", "Air Temperature (units: degrees Celsius)")
	gaugeThermistor  = newGauge("si7013_thermistor", "Thermistor input conversion result (units: counts)")
	counterReadError = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "si7013_read_errors_total",
			Help: "Number of failed sensor reads",
		},
		[]string{"serial_number"},
	)
)

func newGauge(name string, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		[]string{"serial_number"},
	)
}

func init() {
	prometheus.MustRegister(gaugeHumidity)
	prometheus.MustRegister(gaugeTemperature)
	prometheus.MustRegister(gaugeThermistor)
	prometheus.MustRegister(counterReadError)

	// Add Go module build info.
	prometheus.MustRegister(prometheus.NewBuildInfoCollector())

	formatter := &log.TextFormatter{
		FullTimestamp: true,
	}
	log.SetFormatter(formatter)
}

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(version.Print("si7013"))
		return
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if err := mainImpl(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func mainImpl() error {
	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize host")
	}
	bus, err := i2creg.Open(*busName)
	if err != nil {
		return errors.Wrapf(err, "failed to open I²C bus %q", *busName)
	}
	defer bus.Close()

	dev, err := si7013.NewI2C(bus, uint16(*address), nil)
	if err != nil {
		return errors.Wrap(err, "failed to create device")
	}
	serial, err := startup(dev)
	if err != nil {
		return err
	}
	if *once {
		return nil
	}

	go func() {
		// Expose the registered metrics via HTTP.
		http.Handle("/metrics", promhttp.HandlerFor(
			prometheus.DefaultGatherer,
			promhttp.HandlerOpts{
				// Opt into OpenMetrics to support exemplars.
				EnableOpenMetrics: true,
			},
		))
		log.Panic(http.ListenAndServe(*listenAddr, nil))
	}()
	log.Infof("serving metrics on %s/metrics", *listenAddr)

	t := time.NewTicker(*readInterval)
	defer t.Stop()
	for {
		sample(dev, serial)
		<-t.C
	}
}

// startup runs the bring-up sequence and returns the serial number label used
// for the metrics.
func startup(dev *si7013.Dev) (string, error) {
	id, err := dev.DeviceID()
	if err != nil {
		return "", errors.Wrap(err, "failed to read device id")
	}
	if id != 0x0d {
		log.Warnf("%s: device id 0x%02x, not an Si7013", dev, id)
	}
	serial := fmt.Sprintf("%02x", id)
	if sn, err := dev.SerialNumber(); err != nil {
		log.Warnf("failed to read serial number: %s", err)
	} else {
		serial = fmt.Sprintf("%016x", sn)
	}
	fw, err := dev.FirmwareRevision()
	if err != nil {
		log.Warnf("failed to read firmware revision: %s", err)
	}
	log.WithFields(log.Fields{
		"device":   dev.String(),
		"id":       fmt.Sprintf("0x%02x", id),
		"serial":   serial,
		"firmware": fmt.Sprintf("0x%02x", fw),
	}).Info("found sensor")

	temp, err := dev.MeasureTemperature()
	if err != nil {
		return "", errors.Wrap(err, "failed to measure temperature")
	}
	rh, err := dev.MeasureHumidity()
	if err != nil {
		return "", errors.Wrap(err, "failed to measure humidity")
	}
	log.Infof("temperature %d m°C, humidity %d m%%RH", temp, rh)

	regs, err := dev.ReadRegisters()
	if err != nil {
		return "", errors.Wrap(err, "failed to read user registers")
	}
	log.Debugf("user registers %s", &regs)
	// Connect the thermistor bias and the analog reference to VDD.
	regs.Reg2.SetVOut(true)
	regs.Reg2.SetVRefP(true)
	if err := dev.WriteRegisters(&regs); err != nil {
		return "", errors.Wrap(err, "failed to write user registers")
	}
	therm, err := dev.MeasureThermistor()
	if err != nil {
		return "", errors.Wrap(err, "failed to measure thermistor")
	}
	log.Infof("thermistor %d", therm)
	return serial, nil
}

// sample reads the sensor once and updates the gauges.
func sample(dev *si7013.Dev, serial string) {
	var env physic.Env
	if err := dev.Sense(&env); err != nil {
		counterReadError.WithLabelValues(serial).Inc()
		log.Errorf("failed to read from sensor (serialNr %s): %s", serial, err)
		return
	}
	therm, err := dev.MeasureThermistor()
	if err != nil {
		counterReadError.WithLabelValues(serial).Inc()
		log.Errorf("failed to read thermistor (serialNr %s): %s", serial, err)
		return
	}
	log.Debugf("Received: %s %s thermistor %d", env.Temperature, env.Humidity, therm)

	gaugeTemperature.WithLabelValues(serial).Set(float64(env.Temperature-physic.ZeroCelsius) / float64(physic.Celsius))
	gaugeHumidity.WithLabelValues(serial).Set(float64(env.Humidity) / float64(physic.PercentRH))
	gaugeThermistor.WithLabelValues(serial).Set(float64(therm))
}
