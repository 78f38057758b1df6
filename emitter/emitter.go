// Package emitter drives the periodic emission of AIVDM sentences for a
// track list and fans them out to the configured sinks.
package emitter

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/luk-kop/nmea-ais-generator/ais"
)

// Sink receives the framed sentences of one emission tick. The sentence
// slice is immutable and safe to share between sinks and their workers.
type Sink interface {
	Send(sentences []string) error
	Close() error
}

// Config is configuration for the Emitter.
type Config struct {
	// Interval between emission ticks. Defaults to 10 seconds.
	Interval time.Duration
	// Logger receives per-tick diagnostics. Defaults to the standard logger.
	Logger *log.Logger
}

// Emitter periodically updates track positions and emits their AIVDM
// sentences to every sink.
type Emitter struct {
	tracks   []*ais.Track
	sinks    []Sink
	interval time.Duration
	logger   *log.Logger

	timeNow func() time.Time
}

// New creates an Emitter for the given tracks and sinks.
func New(tracks []*ais.Track, sinks []Sink, config Config) *Emitter {
	emitter := &Emitter{
		tracks:   tracks,
		sinks:    sinks,
		interval: 10 * time.Second,
		logger:   log.Default(),
		timeNow:  time.Now,
	}
	if config.Interval > 0 {
		emitter.interval = config.Interval
	}
	if config.Logger != nil {
		emitter.logger = config.Logger
	}
	return emitter
}

// Run emits immediately and then once per interval until the context is
// cancelled. Sinks are closed before returning.
func (e *Emitter) Run(ctx context.Context) error {
	defer e.closeSinks()

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.emit()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.emit()
		}
	}
}

// emit runs one tick: dead-reckon every moving track forward, generate its
// sentences and hand the combined batch to every sink. A track that fails
// to update keeps its previous position and still gets emitted.
func (e *Emitter) emit() {
	now := float64(e.timeNow().UnixNano()) / float64(time.Second)

	sentences := make([]string, 0, 3*len(e.tracks))
	for _, track := range e.tracks {
		if track.Speed() > 0 {
			if err := track.UpdatePosition(now); err != nil {
				e.logger.Error("position update failed", "mmsi", track.MMSI(), "err", err)
			}
		}
		generated, err := track.GenerateNMEA()
		if err != nil {
			e.logger.Error("sentence generation failed", "mmsi", track.MMSI(), "err", err)
			continue
		}
		sentences = append(sentences, generated...)
	}
	if len(sentences) == 0 {
		return
	}

	for _, sink := range e.sinks {
		if err := sink.Send(sentences); err != nil {
			e.logger.Error("emission failed", "err", err)
		}
	}
	e.logger.Debug("tick emitted", "tracks", len(e.tracks), "sentences", len(sentences))
}

func (e *Emitter) closeSinks() {
	for _, sink := range e.sinks {
		if err := sink.Close(); err != nil {
			e.logger.Error("sink close failed", "err", err)
		}
	}
}
