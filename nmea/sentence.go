package nmea

import (
	"fmt"
)

const (
	// sentenceType is the NMEA 0183 sentence formatter for AIS messages
	// received from other vessels.
	sentenceType = "AIVDM"
	// aisChannel is the VHF channel marker. Always channel A here.
	aisChannel = "A"
	// MaxPayloadChars is the maximum number of armored payload characters
	// carried by a single AIVDM sentence. Longer payloads are split into a
	// multi-sentence group.
	MaxPayloadChars = 60
)

// Message is one armored AIS payload together with its fill-bit count,
// ready to be framed into AIVDM sentences.
type Message struct {
	Payload  string
	FillBits int
}

// Sentences frames the message into one or more AIVDM sentences. The payload
// is split into chunks of at most MaxPayloadChars characters; the sequential
// message identifier seqID ties the sentences of a multi-sentence group
// together and is left empty for single-sentence messages. Fill bits are
// reported on the last sentence only. Each sentence is CR-LF terminated.
func (m Message) Sentences(seqID int) []string {
	parts := splitPayload(m.Payload)
	groupSize := len(parts)

	sentences := make([]string, 0, groupSize)
	for i, part := range parts {
		fillBits := 0
		if i == groupSize-1 {
			fillBits = m.FillBits
		}
		seqField := ""
		if groupSize > 1 {
			seqField = fmt.Sprintf("%d", seqID)
		}
		body := fmt.Sprintf("%s,%d,%d,%s,%s,%s,%d",
			sentenceType, groupSize, i+1, seqField, aisChannel, part, fillBits)
		sentences = append(sentences, fmt.Sprintf("!%s*%s\r\n", body, Checksum(body)))
	}
	return sentences
}

func splitPayload(payload string) []string {
	parts := make([]string, 0, (len(payload)+MaxPayloadChars-1)/MaxPayloadChars)
	for len(payload) > MaxPayloadChars {
		parts = append(parts, payload[:MaxPayloadChars])
		payload = payload[MaxPayloadChars:]
	}
	return append(parts, payload)
}

// Checksum calculates the NMEA 0183 checksum of a sentence body: the XOR of
// all its bytes, formatted as two uppercase hex digits.
func Checksum(body string) string {
	var sum byte
	for i := 0; i < len(body); i++ {
		sum ^= body[i]
	}
	return fmt.Sprintf("%02X", sum)
}
