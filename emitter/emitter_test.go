package emitter

import (
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luk-kop/nmea-ais-generator/ais"
	"github.com/luk-kop/nmea-ais-generator/data"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func testTrack(t *testing.T, speed float64) *ais.Track {
	t.Helper()
	track, err := ais.NewTrack(ais.TrackParams{
		MMSI:        205344990,
		NavStatus:   ais.NavStatusUndefined,
		Lon:         4.407046666667,
		Lat:         51.229636666667,
		Speed:       speed,
		Course:      110.7,
		TrueHeading: ais.TrueHeadingNotAvailable,
		IMO:         9134270,
		CallSign:    "3FOF8",
		ShipName:    "EVER DIADEM",
		ShipType:    ais.ShipTypeCargo,
		Dimension:   ais.ShipDimension{ToBow: 225, ToStern: 70, ToPort: 1, ToStarboard: 31},
		Eta:         ais.ShipEta{Month: 5, Day: 15, Hour: 14, Minute: 0},
		Draught:     12.2,
		Destination: "NEW YORK",
		Timestamp:   40,
		UpdatedAt:   1700000000,
	})
	require.NoError(t, err)
	return track
}

type collectingSink struct {
	batches [][]string
	closed  bool
}

func (s *collectingSink) Send(sentences []string) error {
	s.batches = append(s.batches, sentences)
	return nil
}

func (s *collectingSink) Close() error {
	s.closed = true
	return nil
}

func TestEmitterEmit(t *testing.T) {
	track := testTrack(t, 0)
	sink := &collectingSink{}
	emitter := New([]*ais.Track{track}, []Sink{sink}, Config{Logger: testLogger()})
	emitter.timeNow = func() time.Time { return time.Unix(1700000060, 0) }

	emitter.emit()

	require.Len(t, sink.batches, 1)
	sentences := sink.batches[0]
	require.Len(t, sentences, 3)
	assert.Equal(t, "!AIVDM,1,1,,A,133m@ogP00PD;88MD5MTDww@0D7k,0*44\r\n", sentences[0])
	assert.True(t, strings.HasPrefix(sentences[1], "!AIVDM,2,1,0,A,"))
	assert.True(t, strings.HasPrefix(sentences[2], "!AIVDM,2,2,0,A,"))
	// stationary tracks keep their position
	assert.Equal(t, 4.407046666667, track.Lon())
}

func TestEmitterEmitMovesTrack(t *testing.T) {
	track := testTrack(t, 10)
	sink := &collectingSink{}
	emitter := New([]*ais.Track{track}, []Sink{sink}, Config{Logger: testLogger()})
	emitter.timeNow = func() time.Time { return time.Unix(1700000060, 0) }

	emitter.emit()

	assert.InDelta(t, 4.411180, track.Lon(), 1e-5)
	assert.InDelta(t, 51.228656, track.Lat(), 1e-5)
	assert.Equal(t, 1700000060.0, track.UpdatedAt())
}

func TestEmitterRunStopsOnContextCancel(t *testing.T) {
	track := testTrack(t, 0)
	sink := &collectingSink{}
	emitter := New([]*ais.Track{track}, []Sink{sink}, Config{Interval: 10 * time.Millisecond, Logger: testLogger()})

	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Millisecond)
	defer cancel()
	err := emitter.Run(ctx)

	assert.Error(t, err)
	// the first emission happens immediately, later ones per interval
	assert.GreaterOrEqual(t, len(sink.batches), 2)
	assert.True(t, sink.closed)
}

func TestUDPStreamSend(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()
	addr := conn.LocalAddr().(*net.UDPAddr)

	stream := NewUDPStream([]data.Client{{Host: "127.0.0.1", Port: addr.Port}}, testLogger())
	stream.sendDelay = 0

	sentences := []string{
		"!AIVDM,1,1,,A,133m@ogP00PD;88MD5MTDww@0D7k,0*44\r\n",
		"!AIVDM,2,2,0,A,88888888880,2*24\r\n",
	}
	require.NoError(t, stream.Send(sentences))

	buf := make([]byte, 128)
	for _, expected := range sentences {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		n, _, err := conn.ReadFrom(buf)
		require.NoError(t, err)
		assert.Equal(t, expected, string(buf[:n]))
	}
}
