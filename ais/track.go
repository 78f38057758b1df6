package ais

import (
	"fmt"
	"strconv"

	"github.com/luk-kop/nmea-ais-generator/geodesic"
	"github.com/luk-kop/nmea-ais-generator/nmea"
)

const (
	// MMSIDigits is the exact number of decimal digits in an MMSI.
	MMSIDigits = 9
	// IMODigits is the exact number of decimal digits in an IMO number.
	IMODigits = 7
	// CallSignMaxChars is the stored length of the call sign field.
	CallSignMaxChars = 7
	// ShipNameMaxChars is the stored length of the ship name field.
	ShipNameMaxChars = 20
	// DestinationMaxChars is the stored length of the destination field.
	DestinationMaxChars = 20
	// TrueHeadingNotAvailable is the "no heading" sentinel of the 9-bit
	// true heading field.
	TrueHeadingNotAvailable = 511
	// TimestampNotAvailable is the "no UTC second" sentinel of the 6-bit
	// timestamp field.
	TimestampNotAvailable = 60
	// MaxSpeed is the largest encodable speed over ground in knots.
	MaxSpeed = 102.2
	// MaxDraught is the largest encodable draught in metres. Deeper values
	// are clamped.
	MaxDraught = 25.5
)

// Track is the state of one emulated vessel: static identity, voyage data
// and current kinematics. A Track is created with NewTrack and mutated only
// through its setters, so a constructed Track always satisfies every field
// constraint. String fields are stored truncated or space-padded to their
// exact wire lengths.
type Track struct {
	mmsi        int
	navStatus   NavigationStatus
	lon         float64
	lat         float64
	speed       float64
	course      float64
	trueHeading int
	imo         int
	callSign    string
	shipName    string
	shipType    ShipType
	dimension   ShipDimension
	eta         ShipEta
	draught     float64
	destination string
	timestamp   int

	updatedAt float64
	seqMsgID  SequentialMsgID
}

// TrackParams carries the field values for NewTrack. UpdatedAt is the
// wall-clock time of the kinematic state in fractional UTC seconds.
type TrackParams struct {
	MMSI        int
	NavStatus   NavigationStatus
	Lon         float64
	Lat         float64
	Speed       float64
	Course      float64
	TrueHeading int
	IMO         int
	CallSign    string
	ShipName    string
	ShipType    ShipType
	Dimension   ShipDimension
	Eta         ShipEta
	Draught     float64
	Destination string
	Timestamp   int
	UpdatedAt   float64
}

// NewTrack validates every field of params and returns the constructed
// track. The first failing field is reported as *ValidationError.
func NewTrack(params TrackParams) (*Track, error) {
	t := &Track{updatedAt: params.UpdatedAt}
	if err := t.SetMMSI(params.MMSI); err != nil {
		return nil, err
	}
	if err := t.SetNavStatus(params.NavStatus); err != nil {
		return nil, err
	}
	if err := t.SetLon(params.Lon); err != nil {
		return nil, err
	}
	if err := t.SetLat(params.Lat); err != nil {
		return nil, err
	}
	if err := t.SetSpeed(params.Speed); err != nil {
		return nil, err
	}
	if err := t.SetCourse(params.Course); err != nil {
		return nil, err
	}
	if err := t.SetTrueHeading(params.TrueHeading); err != nil {
		return nil, err
	}
	if err := t.SetIMO(params.IMO); err != nil {
		return nil, err
	}
	if _, err := t.SetCallSign(params.CallSign); err != nil {
		return nil, err
	}
	if _, err := t.SetShipName(params.ShipName); err != nil {
		return nil, err
	}
	if err := t.SetShipType(params.ShipType); err != nil {
		return nil, err
	}
	if _, err := t.SetDimension(params.Dimension); err != nil {
		return nil, err
	}
	if _, err := t.SetEta(params.Eta); err != nil {
		return nil, err
	}
	if _, err := t.SetDraught(params.Draught); err != nil {
		return nil, err
	}
	if _, err := t.SetDestination(params.Destination); err != nil {
		return nil, err
	}
	if err := t.SetTimestamp(params.Timestamp); err != nil {
		return nil, err
	}
	return t, nil
}

// SetMMSI validates that the MMSI consists of exactly 9 digits starting
// with an assigned MID country code.
func (t *Track) SetMMSI(value int) error {
	if len(strconv.Itoa(value)) != MMSIDigits {
		return &ValidationError{Field: "mmsi", Value: value, Reason: "should consist of 9 digits"}
	}
	if !CheckMMSIMID(value) {
		return &ValidationError{Field: "mmsi", Value: value, Reason: "wrong MID code"}
	}
	t.mmsi = value
	return nil
}

// SetNavStatus validates the navigational status against the assigned codes.
func (t *Track) SetNavStatus(value NavigationStatus) error {
	if !value.Valid() {
		return &ValidationError{Field: "nav_status", Value: int(value), Reason: "not a valid navigational status"}
	}
	t.navStatus = value
	return nil
}

// SetLon validates the longitude in decimal degrees.
func (t *Track) SetLon(value float64) error {
	if value < -180 || value > 180 {
		return &ValidationError{Field: "lon", Value: value, Reason: "should be in -180 to 180 range"}
	}
	t.lon = value
	return nil
}

// SetLat validates the latitude in decimal degrees.
func (t *Track) SetLat(value float64) error {
	if value < -90 || value > 90 {
		return &ValidationError{Field: "lat", Value: value, Reason: "should be in -90 to 90 range"}
	}
	t.lat = value
	return nil
}

// SetSpeed validates the speed over ground in knots.
func (t *Track) SetSpeed(value float64) error {
	if value < 0 || value > MaxSpeed {
		return &ValidationError{Field: "speed", Value: value, Reason: "should be in 0 to 102.2 range"}
	}
	t.speed = value
	return nil
}

// SetCourse validates the course over ground in degrees.
func (t *Track) SetCourse(value float64) error {
	if value < 0 || value > 360 {
		return &ValidationError{Field: "course", Value: value, Reason: "should be in 0 to 360 range"}
	}
	t.course = value
	return nil
}

// SetTrueHeading validates the true heading in degrees. The sentinel 511
// means "not available".
func (t *Track) SetTrueHeading(value int) error {
	if value != TrueHeadingNotAvailable && (value < 0 || value > 360) {
		return &ValidationError{Field: "true_heading", Value: value, Reason: "should be in 0 to 360 range or 511"}
	}
	t.trueHeading = value
	return nil
}

// SetIMO validates the IMO number: exactly 7 digits with a valid checksum.
// Zero is accepted as "not available".
func (t *Track) SetIMO(value int) error {
	if value == 0 {
		t.imo = 0
		return nil
	}
	if len(strconv.Itoa(value)) != IMODigits {
		return &ValidationError{Field: "imo", Value: value, Reason: "should consist of 7 digits"}
	}
	if !VerifyIMO(value) {
		return &ValidationError{Field: "imo", Value: value, Reason: "wrong IMO checksum"}
	}
	t.imo = value
	return nil
}

// SetCallSign stores the call sign truncated or space-padded to exactly 7
// characters and returns the stored value.
func (t *Track) SetCallSign(value string) (string, error) {
	normalised, err := normaliseSixBitText("call_sign", value, CallSignMaxChars)
	if err != nil {
		return "", err
	}
	t.callSign = normalised
	return normalised, nil
}

// SetShipName stores the ship name truncated or space-padded to exactly 20
// characters and returns the stored value.
func (t *Track) SetShipName(value string) (string, error) {
	normalised, err := normaliseSixBitText("ship_name", value, ShipNameMaxChars)
	if err != nil {
		return "", err
	}
	t.shipName = normalised
	return normalised, nil
}

// SetDestination stores the destination truncated or space-padded to exactly
// 20 characters and returns the stored value.
func (t *Track) SetDestination(value string) (string, error) {
	normalised, err := normaliseSixBitText("destination", value, DestinationMaxChars)
	if err != nil {
		return "", err
	}
	t.destination = normalised
	return normalised, nil
}

// SetShipType validates the ship type against the listed codes.
func (t *Track) SetShipType(value ShipType) error {
	if !value.Valid() {
		return &ValidationError{Field: "ship_type", Value: int(value), Reason: "not a valid ship type"}
	}
	t.shipType = value
	return nil
}

// SetDimension stores the ship dimension with over-limit distances clamped
// and returns the stored value.
func (t *Track) SetDimension(value ShipDimension) (ShipDimension, error) {
	normalised, err := value.Normalise()
	if err != nil {
		return ShipDimension{}, err
	}
	t.dimension = normalised
	return normalised, nil
}

// SetEta validates and stores the estimated time of arrival.
func (t *Track) SetEta(value ShipEta) (ShipEta, error) {
	normalised, err := value.Normalise()
	if err != nil {
		return ShipEta{}, err
	}
	t.eta = normalised
	return normalised, nil
}

// SetDraught stores the draught in metres, clamped to 25.5, and returns the
// stored value. Negative draught is rejected.
func (t *Track) SetDraught(value float64) (float64, error) {
	if value < 0 {
		return 0, &ValidationError{Field: "draught", Value: value, Reason: "should be 0 or greater"}
	}
	if value > MaxDraught {
		value = MaxDraught
	}
	t.draught = value
	return value, nil
}

// SetTimestamp validates the UTC second of the position fix. The sentinel
// 60 means "not available".
func (t *Track) SetTimestamp(value int) error {
	if value < 0 || value > TimestampNotAvailable {
		return &ValidationError{Field: "timestamp", Value: value, Reason: "should be in 0 to 60 range"}
	}
	t.timestamp = value
	return nil
}

func normaliseSixBitText(field, value string, maxChars int) (string, error) {
	text := value
	if len(text) > maxChars {
		text = text[:maxChars]
	}
	if !VerifySixBitASCII(text) {
		return "", &ValidationError{Field: field, Value: value, Reason: "wrong six-bit ASCII chars"}
	}
	return nmea.PadText(text, maxChars)
}

func (t *Track) MMSI() int                   { return t.mmsi }
func (t *Track) NavStatus() NavigationStatus { return t.navStatus }
func (t *Track) Lon() float64                { return t.lon }
func (t *Track) Lat() float64                { return t.lat }
func (t *Track) Speed() float64              { return t.speed }
func (t *Track) Course() float64             { return t.course }
func (t *Track) TrueHeading() int            { return t.trueHeading }
func (t *Track) IMO() int                    { return t.imo }
func (t *Track) CallSign() string            { return t.callSign }
func (t *Track) ShipName() string            { return t.shipName }
func (t *Track) ShipType() ShipType          { return t.shipType }
func (t *Track) Dimension() ShipDimension    { return t.dimension }
func (t *Track) Eta() ShipEta                { return t.eta }
func (t *Track) Draught() float64            { return t.draught }
func (t *Track) Destination() string         { return t.destination }
func (t *Track) Timestamp() int              { return t.timestamp }

// UpdatedAt returns the wall-clock time of the current kinematic state in
// fractional UTC seconds.
func (t *Track) UpdatedAt() float64 { return t.updatedAt }

// UpdatePosition advances the track position by dead reckoning: the distance
// covered at the current speed since the previous update is applied along
// the course on the WGS-84 ellipsoid. now is in fractional UTC seconds and
// must not precede the previous update; on any error the track is left
// untouched.
func (t *Track) UpdatePosition(now float64) error {
	if now < t.updatedAt {
		return fmt.Errorf("current timestamp %f precedes last position update %f", now, t.updatedAt)
	}
	distance := geodesic.Distance(t.updatedAt, now, t.speed)
	lon, lat, _, err := geodesic.Forward(t.lon, t.lat, t.course, distance)
	if err != nil {
		return err
	}
	t.lon = lon
	t.lat = lat
	t.updatedAt = now
	return nil
}
