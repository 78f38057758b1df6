// Package ais implements the AIS track model and the payload encoders for
// message types 1 (Position Report Class A) and 5 (Static and Voyage Related
// Data) as specified by ITU-R M.1371.
package ais

// NavigationStatus is the navigational status carried by message type 1.
type NavigationStatus int

const (
	NavStatusUnderWayUsingEngine      NavigationStatus = 0
	NavStatusAtAnchor                 NavigationStatus = 1
	NavStatusNotUnderCommand          NavigationStatus = 2
	NavStatusRestrictedManoeuvrabilty NavigationStatus = 3
	NavStatusConstrainedByDraught     NavigationStatus = 4
	NavStatusMoored                   NavigationStatus = 5
	NavStatusAground                  NavigationStatus = 6
	NavStatusEngagedInFishing         NavigationStatus = 7
	NavStatusUnderWaySailing          NavigationStatus = 8
	NavStatusAISSARTActive            NavigationStatus = 14
	NavStatusUndefined                NavigationStatus = 15
)

// Valid reports whether the value is an assigned navigational status.
func (s NavigationStatus) Valid() bool {
	return (s >= NavStatusUnderWayUsingEngine && s <= NavStatusUnderWaySailing) ||
		s == NavStatusAISSARTActive || s == NavStatusUndefined
}

// ShipType is the vessel type code carried by message type 5. Only selected
// codes are listed, see https://gpsd.gitlab.io/gpsd/AIVDM.html for the full
// table.
type ShipType int

const (
	ShipTypeNotAvailable           ShipType = 0
	ShipTypeWingInGround           ShipType = 20
	ShipTypeFishing                ShipType = 30
	ShipTypeTowing                 ShipType = 31
	ShipTypeTowingLong             ShipType = 32
	ShipTypeDredging               ShipType = 33
	ShipTypeDivingOps              ShipType = 34
	ShipTypeMilitaryOps            ShipType = 35
	ShipTypeSailing                ShipType = 36
	ShipTypePleasureCraft          ShipType = 37
	ShipTypeHighSpeedCraft         ShipType = 40
	ShipTypePilotVessel            ShipType = 50
	ShipTypeSARVessel              ShipType = 51
	ShipTypeTug                    ShipType = 52
	ShipTypePortTender             ShipType = 53
	ShipTypeAntiPollutionEquipment ShipType = 54
	ShipTypeLawEnforcement         ShipType = 55
	ShipTypeMedicalTransport       ShipType = 58
	ShipTypeNonCombatShip          ShipType = 59
	ShipTypePassenger              ShipType = 60
	ShipTypeCargo                  ShipType = 70
	ShipTypeTanker                 ShipType = 80
	ShipTypeOther                  ShipType = 90
)

var shipTypes = map[ShipType]struct{}{
	ShipTypeNotAvailable:           {},
	ShipTypeWingInGround:           {},
	ShipTypeFishing:                {},
	ShipTypeTowing:                 {},
	ShipTypeTowingLong:             {},
	ShipTypeDredging:               {},
	ShipTypeDivingOps:              {},
	ShipTypeMilitaryOps:            {},
	ShipTypeSailing:                {},
	ShipTypePleasureCraft:          {},
	ShipTypeHighSpeedCraft:         {},
	ShipTypePilotVessel:            {},
	ShipTypeSARVessel:              {},
	ShipTypeTug:                    {},
	ShipTypePortTender:             {},
	ShipTypeAntiPollutionEquipment: {},
	ShipTypeLawEnforcement:         {},
	ShipTypeMedicalTransport:       {},
	ShipTypeNonCombatShip:          {},
	ShipTypePassenger:              {},
	ShipTypeCargo:                  {},
	ShipTypeTanker:                 {},
	ShipTypeOther:                  {},
}

// Valid reports whether the value is a listed ship type code.
func (s ShipType) Valid() bool {
	_, ok := shipTypes[s]
	return ok
}

// midCountries maps Maritime Identification Digits to the flag state they
// are assigned to. Only selected countries are listed, for all codes see
// https://www.itu.int/en/ITU-R/terrestrial/fmd/Pages/mid.aspx
var midCountries = map[int]string{
	305: "Antigua and Barbuda",
	308: "Bahamas", 309: "Bahamas", 311: "Bahamas",
	205: "Belgium",
	316: "Canada",
	211: "Germany", 218: "Germany",
	219: "Denmark", 220: "Denmark",
	224: "Spain", 225: "Spain",
	226: "France", 227: "France", 228: "France",
	230: "Finland",
	232: "United Kingdom", 233: "United Kingdom", 234: "United Kingdom", 235: "United Kingdom",
	237: "Greece", 239: "Greece", 240: "Greece", 241: "Greece",
	244: "Netherlands", 245: "Netherlands", 246: "Netherlands",
	247: "Italy",
	250: "Ireland",
	251: "Iceland",
	248: "Malta", 249: "Malta",
	257: "Norway", 258: "Norway", 259: "Norway",
	261: "Poland",
	263: "Portugal",
	264: "Romania",
	265: "Sweden", 266: "Sweden",
	271: "Turkey",
	272: "Ukraine",
	273: "Russian Federation",
	275: "Latvia",
	276: "Estonia",
	277: "Lithuania",
	278: "Slovenia",
	338: "USA", 366: "USA", 367: "USA", 368: "USA", 369: "USA",
}

// ValidMID reports whether the code is an assigned Maritime Identification
// Digits prefix.
func ValidMID(code int) bool {
	_, ok := midCountries[code]
	return ok
}

// MIDCountry returns the flag state assigned to the MID prefix of the given
// MMSI, or an empty string when the prefix is not listed.
func MIDCountry(mmsi int) string {
	return midCountries[firstThreeDigits(mmsi)]
}
