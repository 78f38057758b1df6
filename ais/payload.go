package ais

import (
	"math"
	"strings"

	"github.com/luk-kop/nmea-ais-generator/nmea"
)

// Bit widths of the AIS payload fields (ITU-R M.1371).
const (
	bitsMsgType     = 6
	bitsRepeat      = 2
	bitsMMSI        = 30
	bitsNavStatus   = 4
	bitsROT         = 8
	bitsSpeed       = 10
	bitsPosAccuracy = 1
	bitsLon         = 28
	bitsLat         = 27
	bitsCourse      = 12
	bitsTrueHeading = 9
	bitsTimestamp   = 6
	bitsManeuver    = 2
	bitsSpareType1  = 3
	bitsRAIM        = 1
	bitsAISVersion  = 2
	bitsIMO         = 30
	bitsShipType    = 8
	bitsPosFixType  = 4
	bitsDraught     = 8
	bitsDTE         = 1
	bitsSpareType5  = 1
)

// Protocol constants shared by every emitted payload. ROT, maneuver
// indicator and the SOTDMA radio status are fixed placeholder values.
const (
	repeatIndicator = 0
	rotNotAvailable = 128
	posAccuracyHigh = 1
	maneuverDefault = 0
	raimNotInUse    = 0
	// radioStatusSOTDMA is a dummy SOTDMA radio status (19 bits).
	radioStatusSOTDMA = "0010100000111110011"
	aisVersionITU5    = 2
	posFixTypeGPS     = 1
	dteReady          = 0

	// Type1PayloadBits is the fixed length of a type 1 payload bit string.
	Type1PayloadBits = 168
	// Type5PayloadBits is the fixed length of a type 5 payload bit string.
	Type5PayloadBits = 424
)

// Payload is one assembled AIS message payload as a bit string.
type Payload struct {
	bits string
}

// Bits returns the payload bit string.
func (p Payload) Bits() string { return p.bits }

// Armor converts the payload to its armored ASCII form ready for AIVDM
// framing. The fill-bit count is recomputed on every call.
func (p Payload) Armor() (nmea.Message, error) {
	armored, fillBits, err := nmea.Armor(p.bits)
	if err != nil {
		return nmea.Message{}, err
	}
	return nmea.Message{Payload: armored, FillBits: fillBits}, nil
}

// Type1Payload assembles the 168-bit payload of AIS message type 1
// (Position Report Class A) from the current track state. Longitude and
// latitude are scaled to 1/600000 degree and encoded as two's complement.
func (t *Track) Type1Payload() (Payload, error) {
	buf := strings.Builder{}
	buf.Grow(Type1PayloadBits)

	for _, field := range []struct {
		value int64
		bits  int
	}{
		{value: 1, bits: bitsMsgType},
		{value: repeatIndicator, bits: bitsRepeat},
		{value: int64(t.mmsi), bits: bitsMMSI},
		{value: int64(t.navStatus), bits: bitsNavStatus},
		{value: rotNotAvailable, bits: bitsROT},
		{value: scale10(t.speed), bits: bitsSpeed},
	} {
		if err := writeBits(&buf, field.value, field.bits); err != nil {
			return Payload{}, err
		}
	}
	if err := writeBits(&buf, posAccuracyHigh, bitsPosAccuracy); err != nil {
		return Payload{}, err
	}
	if err := writeSignedBits(&buf, scaleCoordinate(t.lon), bitsLon); err != nil {
		return Payload{}, err
	}
	if err := writeSignedBits(&buf, scaleCoordinate(t.lat), bitsLat); err != nil {
		return Payload{}, err
	}
	for _, field := range []struct {
		value int64
		bits  int
	}{
		{value: scale10(t.course), bits: bitsCourse},
		{value: int64(t.trueHeading), bits: bitsTrueHeading},
		{value: int64(t.timestamp), bits: bitsTimestamp},
		{value: maneuverDefault, bits: bitsManeuver},
		{value: 0, bits: bitsSpareType1},
		{value: raimNotInUse, bits: bitsRAIM},
	} {
		if err := writeBits(&buf, field.value, field.bits); err != nil {
			return Payload{}, err
		}
	}
	buf.WriteString(radioStatusSOTDMA)

	return Payload{bits: buf.String()}, nil
}

// Type5Payload assembles the 424-bit payload of AIS message type 5 (Static
// and Voyage Related Data) from the current track state. As 424 is not a
// multiple of six, armoring the payload adds two fill bits.
func (t *Track) Type5Payload() (Payload, error) {
	buf := strings.Builder{}
	buf.Grow(Type5PayloadBits)

	for _, field := range []struct {
		value int64
		bits  int
	}{
		{value: 5, bits: bitsMsgType},
		{value: repeatIndicator, bits: bitsRepeat},
		{value: int64(t.mmsi), bits: bitsMMSI},
		{value: aisVersionITU5, bits: bitsAISVersion},
		{value: int64(t.imo), bits: bitsIMO},
	} {
		if err := writeBits(&buf, field.value, field.bits); err != nil {
			return Payload{}, err
		}
	}
	if err := writeTextBits(&buf, t.callSign); err != nil {
		return Payload{}, err
	}
	if err := writeTextBits(&buf, t.shipName); err != nil {
		return Payload{}, err
	}
	if err := writeBits(&buf, int64(t.shipType), bitsShipType); err != nil {
		return Payload{}, err
	}
	dimensionBits, err := t.dimension.Bits()
	if err != nil {
		return Payload{}, err
	}
	buf.WriteString(dimensionBits)
	if err := writeBits(&buf, posFixTypeGPS, bitsPosFixType); err != nil {
		return Payload{}, err
	}
	etaBits, err := t.eta.Bits()
	if err != nil {
		return Payload{}, err
	}
	buf.WriteString(etaBits)
	if err := writeBits(&buf, scale10(t.draught), bitsDraught); err != nil {
		return Payload{}, err
	}
	if err := writeTextBits(&buf, t.destination); err != nil {
		return Payload{}, err
	}
	if err := writeBits(&buf, dteReady, bitsDTE); err != nil {
		return Payload{}, err
	}
	if err := writeBits(&buf, 0, bitsSpareType5); err != nil {
		return Payload{}, err
	}

	return Payload{bits: buf.String()}, nil
}

// GenerateNMEA builds the AIVDM sentences for one emission of the track: the
// type 1 position report followed by the two-part type 5 static data
// message. Both messages of the emission share a single sequential message
// identifier drawn from the track's issuer. The returned slice is never
// mutated afterwards and is safe to share between senders.
func (t *Track) GenerateNMEA() ([]string, error) {
	type1, err := t.Type1Payload()
	if err != nil {
		return nil, err
	}
	type5, err := t.Type5Payload()
	if err != nil {
		return nil, err
	}

	seqID := t.seqMsgID.Next()
	sentences := make([]string, 0, 3)
	for _, payload := range []Payload{type1, type5} {
		msg, err := payload.Armor()
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, msg.Sentences(seqID)...)
	}
	return sentences, nil
}

func writeBits(buf *strings.Builder, value int64, bitCount int) error {
	bits, err := nmea.IntToBits(value, bitCount)
	if err != nil {
		return err
	}
	buf.WriteString(bits)
	return nil
}

func writeSignedBits(buf *strings.Builder, value int64, bitCount int) error {
	bits, err := nmea.SignedIntToBits(value, bitCount)
	if err != nil {
		return err
	}
	buf.WriteString(bits)
	return nil
}

func writeTextBits(buf *strings.Builder, text string) error {
	for i := 0; i < len(text); i++ {
		code, err := nmea.ASCIIToSixBit(text[i])
		if err != nil {
			return err
		}
		if err := writeBits(buf, int64(code), 6); err != nil {
			return err
		}
	}
	return nil
}

// scale10 encodes a decimal value with one fixed fraction digit.
func scale10(value float64) int64 {
	return int64(math.Round(value * 10))
}

// scaleCoordinate encodes a coordinate in 1/600000 degree units.
func scaleCoordinate(value float64) int64 {
	return int64(math.Round(value * 600000))
}
