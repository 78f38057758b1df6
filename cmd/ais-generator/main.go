// Command ais-generator emulates an AIS transmitter: it loads a track list
// and a client list from JSON documents and periodically emits the AIVDM
// sentences of every track to the configured UDP destinations, and
// optionally to a serial port.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/luk-kop/nmea-ais-generator/ais"
	"github.com/luk-kop/nmea-ais-generator/data"
	"github.com/luk-kop/nmea-ais-generator/emitter"
)

func main() {
	tracksPath := pflag.String("tracks", "data.json", "path to the JSON track list document")
	clientsPath := pflag.String("clients", "clients.json", "path to the JSON client list document")
	interval := pflag.Duration("interval", 10*time.Second, "time between emission ticks")
	serialDevice := pflag.String("serial", "", "serial device to write NMEA sentences to (optional)")
	baudRate := pflag.Int("baud", 38400, "serial device baud rate")
	dumpPath := pflag.String("dump", "", "dump the track list back to this file on shutdown (optional)")
	verbose := pflag.BoolP("verbose", "v", false, "log every emission tick")
	pflag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	now := float64(time.Now().UnixNano()) / float64(time.Second)
	tracks, err := data.LoadTracks(*tracksPath, now)
	if err != nil {
		fatalLoadError(err)
	}
	clients, err := data.LoadClients(*clientsPath)
	if err != nil {
		fatalLoadError(err)
	}

	sinks := []emitter.Sink{emitter.NewUDPStream(clients, logger)}
	if *serialDevice != "" {
		serialSink, err := emitter.NewSerialStream(*serialDevice, *baudRate)
		if err != nil {
			logger.Fatal("serial output unavailable", "err", err)
		}
		sinks = append(sinks, serialSink)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("emitting AIS data",
		"tracks", len(tracks), "clients", len(clients), "interval", *interval)
	for _, track := range tracks {
		logger.Info("track loaded",
			"mmsi", track.MMSI(), "flag", ais.MIDCountry(track.MMSI()), "speed", track.Speed())
	}

	runErr := emitter.New(tracks, sinks, emitter.Config{Interval: *interval, Logger: logger}).Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Fatal("emission stopped", "err", runErr)
	}

	if *dumpPath != "" {
		if err := data.SaveTracks(*dumpPath, tracks); err != nil {
			logger.Fatal("track dump failed", "err", err)
		}
		logger.Info("tracks dumped", "path", *dumpPath)
	}
}

// fatalLoadError prints loader failures in the format users of the original
// generator know and exits.
func fatalLoadError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
