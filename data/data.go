// Package data loads and stores the JSON documents the emulator is fed
// with: the track list describing the emulated vessels and the client list
// naming the UDP destinations.
package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/luk-kop/nmea-ais-generator/ais"
	"github.com/luk-kop/nmea-ais-generator/internal/utils"
)

// MaxClients is the largest accepted number of UDP destinations.
const MaxClients = 10

// FileError describes the first invalid item found in an input document.
// Its message matches what the command-line front-end prints to the user.
type FileError struct {
	Path   string
	Item   int
	Field  string
	Reason string
	err    error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("File %q - check item with no %d, %q %s", e.Path, e.Item, e.Field, e.Reason)
}

func (e *FileError) Unwrap() error { return e.err }

// trackRecord mirrors one track entry of the JSON document. Optional fields
// are pointers so absent values can fall back to the protocol defaults.
type trackRecord struct {
	MMSI        int              `json:"mmsi"`
	NavStatus   int              `json:"nav_status"`
	Lon         float64          `json:"lon"`
	Lat         float64          `json:"lat"`
	Speed       float64          `json:"speed"`
	Course      float64          `json:"course"`
	TrueHeading *int             `json:"true_heading"`
	IMO         *int             `json:"imo"`
	CallSign    string           `json:"call_sign"`
	ShipName    string           `json:"ship_name"`
	ShipType    int              `json:"ship_type"`
	Dimension   *dimensionRecord `json:"dimension"`
	Eta         *etaRecord       `json:"eta"`
	Draught     float64          `json:"draught"`
	Destination string           `json:"destination"`
	Timestamp   *int             `json:"timestamp"`
}

// dimensionRecord keeps per-field presence so the all-or-nothing rule of
// the dimension block can be applied: when any of the four distances is
// absent the whole block is zeroed.
type dimensionRecord struct {
	ToBow       *int `json:"to_bow"`
	ToStern     *int `json:"to_stern"`
	ToPort      *int `json:"to_port"`
	ToStarboard *int `json:"to_starboard"`
}

func (r *dimensionRecord) toDimension() ais.ShipDimension {
	if r == nil || r.ToBow == nil || r.ToStern == nil || r.ToPort == nil || r.ToStarboard == nil {
		return ais.ShipDimension{}
	}
	return ais.ShipDimension{
		ToBow:       *r.ToBow,
		ToStern:     *r.ToStern,
		ToPort:      *r.ToPort,
		ToStarboard: *r.ToStarboard,
	}
}

type etaRecord struct {
	Month  *int `json:"month"`
	Day    *int `json:"day"`
	Hour   *int `json:"hour"`
	Minute *int `json:"minute"`
}

func (r *etaRecord) toEta() ais.ShipEta {
	eta := ais.DefaultShipEta()
	if r == nil {
		return eta
	}
	if r.Month != nil {
		eta.Month = *r.Month
	}
	if r.Day != nil {
		eta.Day = *r.Day
	}
	if r.Hour != nil {
		eta.Hour = *r.Hour
	}
	if r.Minute != nil {
		eta.Minute = *r.Minute
	}
	return eta
}

type trackDocument struct {
	Tracks []trackRecord `json:"tracks"`
}

// LoadTracks reads and validates the track-list document. Every track is
// constructed through ais.NewTrack with updatedAt as its kinematic state
// time; the first validation failure is reported as *FileError with the
// 1-based item index.
func LoadTracks(path string, updatedAt float64) ([]*ais.Track, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := trackDocument{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("file %q is not a valid track document: %w", path, err)
	}
	if len(doc.Tracks) == 0 {
		return nil, fmt.Errorf("file %q contains no tracks", path)
	}

	tracks := make([]*ais.Track, 0, len(doc.Tracks))
	for i, record := range doc.Tracks {
		track, err := ais.NewTrack(record.toParams(updatedAt))
		if err != nil {
			return nil, fileError(path, i+1, err)
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

func (r trackRecord) toParams(updatedAt float64) ais.TrackParams {
	params := ais.TrackParams{
		MMSI:        r.MMSI,
		NavStatus:   ais.NavigationStatus(r.NavStatus),
		Lon:         r.Lon,
		Lat:         r.Lat,
		Speed:       r.Speed,
		Course:      r.Course,
		TrueHeading: ais.TrueHeadingNotAvailable,
		CallSign:    r.CallSign,
		ShipName:    r.ShipName,
		ShipType:    ais.ShipType(r.ShipType),
		Dimension:   r.Dimension.toDimension(),
		Eta:         r.Eta.toEta(),
		Draught:     r.Draught,
		Destination: r.Destination,
		Timestamp:   ais.TimestampNotAvailable,
		UpdatedAt:   updatedAt,
	}
	if r.TrueHeading != nil {
		params.TrueHeading = *r.TrueHeading
	}
	if r.IMO != nil {
		params.IMO = *r.IMO
	}
	if r.Timestamp != nil {
		params.Timestamp = *r.Timestamp
	}
	return params
}

func fileError(path string, item int, err error) error {
	var validationErr *ais.ValidationError
	if errors.As(err, &validationErr) {
		return &FileError{
			Path:   path,
			Item:   item,
			Field:  validationErr.Field,
			Reason: validationErr.Reason,
			err:    err,
		}
	}
	return err
}

// Client is one UDP destination of the emitted NMEA stream.
type Client struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// Address renders the destination as host:port.
func (c Client) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type clientDocument struct {
	Clients []Client `json:"clients"`
}

// LoadClients reads and validates the client-list document: 1 to 10 entries
// with an IPv4 host and a port in 1..65535.
func LoadClients(path string) ([]Client, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := clientDocument{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("file %q is not a valid client document: %w", path, err)
	}
	if len(doc.Clients) == 0 || len(doc.Clients) > MaxClients {
		return nil, fmt.Errorf("file %q should contain 1 to %d clients, has %d", path, MaxClients, len(doc.Clients))
	}
	for i, client := range doc.Clients {
		ip := net.ParseIP(client.Host)
		if ip == nil || ip.To4() == nil {
			return nil, &FileError{Path: path, Item: i + 1, Field: "host", Reason: "should be an IPv4 address"}
		}
		if client.Port < 1 || client.Port > 65535 {
			return nil, &FileError{Path: path, Item: i + 1, Field: "port", Reason: "should be in 1 to 65535 range"}
		}
	}
	return doc.Clients, nil
}

// SaveTracks re-serialises the in-memory track list back to a JSON document.
// Trailing field padding is stripped so the dump round-trips through
// LoadTracks.
func SaveTracks(path string, tracks []*ais.Track) error {
	records := make([]map[string]interface{}, 0, len(tracks))
	for _, track := range tracks {
		dimension := track.Dimension()
		eta := track.Eta()
		records = append(records, map[string]interface{}{
			"mmsi":         track.MMSI(),
			"nav_status":   int(track.NavStatus()),
			"lon":          track.Lon(),
			"lat":          track.Lat(),
			"speed":        track.Speed(),
			"course":       track.Course(),
			"true_heading": track.TrueHeading(),
			"imo":          track.IMO(),
			"call_sign":    utils.StripTrailingSpaces(track.CallSign()),
			"ship_name":    utils.StripTrailingSpaces(track.ShipName()),
			"ship_type":    int(track.ShipType()),
			"dimension": map[string]int{
				"to_bow":       dimension.ToBow,
				"to_stern":     dimension.ToStern,
				"to_port":      dimension.ToPort,
				"to_starboard": dimension.ToStarboard,
			},
			"eta": map[string]int{
				"month":  eta.Month,
				"day":    eta.Day,
				"hour":   eta.Hour,
				"minute": eta.Minute,
			},
			"draught":     track.Draught(),
			"destination": utils.StripTrailingSpaces(track.Destination()),
			"timestamp":   track.Timestamp(),
		})
	}

	raw, err := json.MarshalIndent(map[string]interface{}{"tracks": records}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}
