package emitter

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/luk-kop/nmea-ais-generator/data"
)

// defaultSendDelay paces consecutive datagrams to one destination so slow
// consumers are not flooded within a tick.
const defaultSendDelay = 50 * time.Millisecond

// UDPStream fans emitted sentences out to the configured destinations, one
// datagram per sentence. Each Send spawns one worker per destination; the
// workers share the sentence slice read-only.
type UDPStream struct {
	clients   []data.Client
	sendDelay time.Duration
	logger    *log.Logger

	sleepFunc func(timeout time.Duration)
}

// NewUDPStream creates a stream for the given destinations.
func NewUDPStream(clients []data.Client, logger *log.Logger) *UDPStream {
	return &UDPStream{
		clients:   clients,
		sendDelay: defaultSendDelay,
		logger:    logger,
		sleepFunc: time.Sleep,
	}
}

// Send delivers the sentences to every destination concurrently. Errors are
// collected per destination; delivery to the remaining destinations is not
// interrupted.
func (s *UDPStream) Send(sentences []string) error {
	wg := sync.WaitGroup{}
	errs := make([]error, len(s.clients))
	for i, client := range s.clients {
		wg.Add(1)
		go func(i int, client data.Client) {
			defer wg.Done()
			if err := s.sendTo(client, sentences); err != nil {
				errs[i] = err
				s.logger.Error("send failed", "client", client.Address(), "err", err)
			}
		}(i, client)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *UDPStream) sendTo(client data.Client, sentences []string) error {
	conn, err := net.Dial("udp", client.Address())
	if err != nil {
		return fmt.Errorf("dial %s: %w", client.Address(), err)
	}
	defer conn.Close()

	for _, sentence := range sentences {
		if _, err := conn.Write([]byte(sentence)); err != nil {
			return fmt.Errorf("write to %s: %w", client.Address(), err)
		}
		s.sleepFunc(s.sendDelay)
	}
	return nil
}

// Close implements Sink. UDP sockets are per Send call, so there is nothing
// to release.
func (s *UDPStream) Close() error { return nil }
