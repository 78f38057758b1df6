package emitter

import (
	"fmt"

	"github.com/tarm/serial"
)

// SerialStream writes emitted sentences to a serial port, the transport
// NMEA 0183 listeners traditionally hang off.
type SerialStream struct {
	port *serial.Port
}

// NewSerialStream opens the serial device with the given baud rate.
func NewSerialStream(device string, baudRate int) (*SerialStream, error) {
	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baudRate})
	if err != nil {
		return nil, fmt.Errorf("open serial device %s: %w", device, err)
	}
	return &SerialStream{port: port}, nil
}

// Send writes the sentences to the port in order.
func (s *SerialStream) Send(sentences []string) error {
	for _, sentence := range sentences {
		if _, err := s.port.Write([]byte(sentence)); err != nil {
			return fmt.Errorf("write to serial port: %w", err)
		}
	}
	return nil
}

// Close releases the serial port.
func (s *SerialStream) Close() error {
	return s.port.Close()
}
