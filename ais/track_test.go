package ais

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceTrackParams() TrackParams {
	return TrackParams{
		MMSI:        205344990,
		NavStatus:   NavStatusUndefined,
		Lon:         4.407046666667,
		Lat:         51.229636666667,
		Speed:       0,
		Course:      110.7,
		TrueHeading: TrueHeadingNotAvailable,
		IMO:         9134270,
		CallSign:    "3FOF8",
		ShipName:    "EVER DIADEM",
		ShipType:    ShipTypeCargo,
		Dimension:   ShipDimension{ToBow: 225, ToStern: 70, ToPort: 1, ToStarboard: 31},
		Eta:         ShipEta{Month: 5, Day: 15, Hour: 14, Minute: 0},
		Draught:     12.2,
		Destination: "NEW YORK",
		Timestamp:   40,
		UpdatedAt:   1700000000,
	}
}

func TestNewTrack(t *testing.T) {
	track, err := NewTrack(referenceTrackParams())

	require.NoError(t, err)
	assert.Equal(t, 205344990, track.MMSI())
	assert.Equal(t, NavStatusUndefined, track.NavStatus())
	assert.Equal(t, "3FOF8  ", track.CallSign())
	assert.Equal(t, "EVER DIADEM         ", track.ShipName())
	assert.Equal(t, "NEW YORK            ", track.Destination())
	assert.Equal(t, 12.2, track.Draught())
	assert.Equal(t, 40, track.Timestamp())
}

func TestNewTrackValidation(t *testing.T) {
	var testCases = []struct {
		name          string
		givenParams   func(p *TrackParams)
		expectedError string
	}{
		{
			name:          "mmsi with wrong digit count",
			givenParams:   func(p *TrackParams) { p.MMSI = 20534499 },
			expectedError: `field "mmsi" value 20534499 is invalid: should consist of 9 digits`,
		},
		{
			name:          "mmsi with unassigned MID",
			givenParams:   func(p *TrackParams) { p.MMSI = 123344990 },
			expectedError: `field "mmsi" value 123344990 is invalid: wrong MID code`,
		},
		{
			name:          "nav status outside the assigned codes",
			givenParams:   func(p *TrackParams) { p.NavStatus = 9 },
			expectedError: `field "nav_status" value 9 is invalid: not a valid navigational status`,
		},
		{
			name:          "longitude out of range",
			givenParams:   func(p *TrackParams) { p.Lon = 180.5 },
			expectedError: `field "lon" value 180.5 is invalid: should be in -180 to 180 range`,
		},
		{
			name:          "latitude out of range",
			givenParams:   func(p *TrackParams) { p.Lat = -90.1 },
			expectedError: `field "lat" value -90.1 is invalid: should be in -90 to 90 range`,
		},
		{
			name:          "speed above the encodable maximum",
			givenParams:   func(p *TrackParams) { p.Speed = 102.3 },
			expectedError: `field "speed" value 102.3 is invalid: should be in 0 to 102.2 range`,
		},
		{
			name:          "negative course",
			givenParams:   func(p *TrackParams) { p.Course = -0.1 },
			expectedError: `field "course" value -0.1 is invalid: should be in 0 to 360 range`,
		},
		{
			name:          "true heading between the valid range and the sentinel",
			givenParams:   func(p *TrackParams) { p.TrueHeading = 361 },
			expectedError: `field "true_heading" value 361 is invalid: should be in 0 to 360 range or 511`,
		},
		{
			name:          "imo with bad checksum",
			givenParams:   func(p *TrackParams) { p.IMO = 1234271 },
			expectedError: `field "imo" value 1234271 is invalid: wrong IMO checksum`,
		},
		{
			name:          "imo with wrong digit count",
			givenParams:   func(p *TrackParams) { p.IMO = 913427 },
			expectedError: `field "imo" value 913427 is invalid: should consist of 7 digits`,
		},
		{
			name:          "ship name with non six-bit characters",
			givenParams:   func(p *TrackParams) { p.ShipName = "ever diadem" },
			expectedError: `field "ship_name" value ever diadem is invalid: wrong six-bit ASCII chars`,
		},
		{
			name:          "ship type outside the listed codes",
			givenParams:   func(p *TrackParams) { p.ShipType = 38 },
			expectedError: `field "ship_type" value 38 is invalid: not a valid ship type`,
		},
		{
			name:          "negative dimension",
			givenParams:   func(p *TrackParams) { p.Dimension.ToPort = -1 },
			expectedError: `field "to_port" value -1 is invalid: should be 0 or greater`,
		},
		{
			name:          "eta month out of range",
			givenParams:   func(p *TrackParams) { p.Eta.Month = 13 },
			expectedError: `field "month" value 13 is invalid: should be in 0 to 12 range`,
		},
		{
			name:          "negative draught",
			givenParams:   func(p *TrackParams) { p.Draught = -1 },
			expectedError: `field "draught" value -1 is invalid: should be 0 or greater`,
		},
		{
			name:          "timestamp out of range",
			givenParams:   func(p *TrackParams) { p.Timestamp = 61 },
			expectedError: `field "timestamp" value 61 is invalid: should be in 0 to 60 range`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := referenceTrackParams()
			tc.givenParams(&params)

			track, err := NewTrack(params)

			assert.Nil(t, track)
			assert.EqualError(t, err, tc.expectedError)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestTrackTextFieldNormalisation(t *testing.T) {
	params := referenceTrackParams()
	params.ShipName = "THE QUICK BROWN FOX JUMPS OVER"

	track, err := NewTrack(params)

	require.NoError(t, err)
	// overlong input is truncated to the stored field length
	assert.Equal(t, "THE QUICK BROWN FOX ", track.ShipName())
	assert.Len(t, track.ShipName(), ShipNameMaxChars)
	assert.Len(t, track.CallSign(), CallSignMaxChars)
	assert.Len(t, track.Destination(), DestinationMaxChars)
}

func TestTrackSettersRevalidate(t *testing.T) {
	track, err := NewTrack(referenceTrackParams())
	require.NoError(t, err)

	assert.EqualError(t, track.SetSpeed(150),
		`field "speed" value 150 is invalid: should be in 0 to 102.2 range`)
	// failed assignment leaves the previous value in place
	assert.Equal(t, 0.0, track.Speed())

	assert.NoError(t, track.SetSpeed(12.5))
	assert.Equal(t, 12.5, track.Speed())
}

func TestTrackSetDraughtClamps(t *testing.T) {
	track, err := NewTrack(referenceTrackParams())
	require.NoError(t, err)

	stored, err := track.SetDraught(100)
	require.NoError(t, err)
	assert.Equal(t, 25.5, stored)
	assert.Equal(t, 25.5, track.Draught())

	stored, err = track.SetDraught(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stored)
}

func TestTrackSetDimensionClamps(t *testing.T) {
	track, err := NewTrack(referenceTrackParams())
	require.NoError(t, err)

	stored, err := track.SetDimension(ShipDimension{ToBow: 600, ToStern: 600, ToPort: 100, ToStarboard: 100})

	require.NoError(t, err)
	assert.Equal(t, ShipDimension{ToBow: 511, ToStern: 511, ToPort: 63, ToStarboard: 63}, stored)
	assert.Equal(t, stored, track.Dimension())
}

func TestTrackSetTrueHeadingSentinel(t *testing.T) {
	track, err := NewTrack(referenceTrackParams())
	require.NoError(t, err)

	assert.NoError(t, track.SetTrueHeading(TrueHeadingNotAvailable))
	assert.NoError(t, track.SetTrueHeading(0))
	assert.NoError(t, track.SetTrueHeading(360))
	assert.Error(t, track.SetTrueHeading(-1))
	assert.Error(t, track.SetTrueHeading(400))
}

func TestTrackSetIMONotAvailable(t *testing.T) {
	track, err := NewTrack(referenceTrackParams())
	require.NoError(t, err)

	assert.NoError(t, track.SetIMO(0))
	assert.Equal(t, 0, track.IMO())
}

func TestDefaultShipEta(t *testing.T) {
	assert.Equal(t, ShipEta{Month: 0, Day: 0, Hour: 24, Minute: 60}, DefaultShipEta())
}

func TestShipDimensionBits(t *testing.T) {
	dimension := ShipDimension{ToBow: 225, ToStern: 70, ToPort: 1, ToStarboard: 31}

	bits, err := dimension.Bits()

	require.NoError(t, err)
	assert.Len(t, bits, 30)
	assert.Equal(t, "011100001001000110000001011111", bits)
}

func TestTrackUpdatePosition(t *testing.T) {
	params := referenceTrackParams()
	params.Speed = 10
	track, err := NewTrack(params)
	require.NoError(t, err)

	err = track.UpdatePosition(params.UpdatedAt + 60)

	require.NoError(t, err)
	// one minute at 10 knots moves the track 308.667 m along the course
	assert.InDelta(t, 4.411180, track.Lon(), 1e-5)
	assert.InDelta(t, 51.228656, track.Lat(), 1e-5)
	assert.Equal(t, params.UpdatedAt+60, track.UpdatedAt())
}

func TestTrackUpdatePositionRejectsTimeGoingBackwards(t *testing.T) {
	params := referenceTrackParams()
	params.Speed = 10
	track, err := NewTrack(params)
	require.NoError(t, err)

	err = track.UpdatePosition(params.UpdatedAt - 1)

	assert.Error(t, err)
	assert.Equal(t, params.Lon, track.Lon())
	assert.Equal(t, params.Lat, track.Lat())
	assert.Equal(t, params.UpdatedAt, track.UpdatedAt())
}
