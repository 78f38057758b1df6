package ais

import (
	"fmt"
	"strings"

	"github.com/luk-kop/nmea-ais-generator/nmea"
)

const (
	// MaxDimensionToBowStern is the largest encodable bow/stern distance in
	// metres (9-bit field).
	MaxDimensionToBowStern = 511
	// MaxDimensionToPortStarboard is the largest encodable port/starboard
	// distance in metres (6-bit field).
	MaxDimensionToPortStarboard = 63
)

// ShipDimension is the ship reference-point geometry of message type 5.
// All distances are in metres. Values above the encodable maximum are
// clamped by Normalise.
type ShipDimension struct {
	ToBow       int
	ToStern     int
	ToPort      int
	ToStarboard int
}

// Normalise validates the dimension and returns it with over-limit values
// clamped to the field maxima. Negative distances are rejected.
func (d ShipDimension) Normalise() (ShipDimension, error) {
	fields := []struct {
		name  string
		value *int
		max   int
	}{
		{name: "to_bow", value: &d.ToBow, max: MaxDimensionToBowStern},
		{name: "to_stern", value: &d.ToStern, max: MaxDimensionToBowStern},
		{name: "to_port", value: &d.ToPort, max: MaxDimensionToPortStarboard},
		{name: "to_starboard", value: &d.ToStarboard, max: MaxDimensionToPortStarboard},
	}
	for _, f := range fields {
		if *f.value < 0 {
			return ShipDimension{}, &ValidationError{Field: f.name, Value: *f.value, Reason: "should be 0 or greater"}
		}
		if *f.value > f.max {
			*f.value = f.max
		}
	}
	return d, nil
}

// Bits renders the 30-bit dimension field: to_bow and to_stern on 9 bits
// each, to_port and to_starboard on 6 bits each.
func (d ShipDimension) Bits() (string, error) {
	buf := strings.Builder{}
	for _, part := range []struct {
		value int
		bits  int
	}{
		{value: d.ToBow, bits: 9},
		{value: d.ToStern, bits: 9},
		{value: d.ToPort, bits: 6},
		{value: d.ToStarboard, bits: 6},
	} {
		bits, err := nmea.IntToBits(int64(part.value), part.bits)
		if err != nil {
			return "", err
		}
		buf.WriteString(bits)
	}
	return buf.String(), nil
}

const (
	// EtaHourNotAvailable is the "unknown hour" sentinel of the ETA field.
	EtaHourNotAvailable = 24
	// EtaMinuteNotAvailable is the "unknown minute" sentinel of the ETA field.
	EtaMinuteNotAvailable = 60
)

// ShipEta is the estimated time of arrival of message type 5 in UTC. Month 0
// and day 0 mean "not available", as do the hour and minute sentinels.
type ShipEta struct {
	Month  int
	Day    int
	Hour   int
	Minute int
}

// DefaultShipEta returns the "not available" ETA.
func DefaultShipEta() ShipEta {
	return ShipEta{Month: 0, Day: 0, Hour: EtaHourNotAvailable, Minute: EtaMinuteNotAvailable}
}

// Normalise validates the ETA fields against their encodable ranges,
// sentinels included.
func (e ShipEta) Normalise() (ShipEta, error) {
	fields := []struct {
		name  string
		value int
		max   int
	}{
		{name: "month", value: e.Month, max: 12},
		{name: "day", value: e.Day, max: 31},
		{name: "hour", value: e.Hour, max: EtaHourNotAvailable},
		{name: "minute", value: e.Minute, max: EtaMinuteNotAvailable},
	}
	for _, f := range fields {
		if f.value < 0 || f.value > f.max {
			return ShipEta{}, &ValidationError{
				Field:  f.name,
				Value:  f.value,
				Reason: fmt.Sprintf("should be in 0 to %d range", f.max),
			}
		}
	}
	return e, nil
}

// Bits renders the 20-bit ETA field: month(4), day(5), hour(5), minute(6).
func (e ShipEta) Bits() (string, error) {
	buf := strings.Builder{}
	for _, part := range []struct {
		value int
		bits  int
	}{
		{value: e.Month, bits: 4},
		{value: e.Day, bits: 5},
		{value: e.Hour, bits: 5},
		{value: e.Minute, bits: 6},
	} {
		bits, err := nmea.IntToBits(int64(part.value), part.bits)
		if err != nil {
			return "", err
		}
		buf.WriteString(bits)
	}
	return buf.String(), nil
}
