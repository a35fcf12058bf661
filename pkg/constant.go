package pkg

import "math"

// enum of turn_type
type TurnType uint8

const (
	LEFT_TURN TurnType = iota
	SHARP_LEFT_TURN
	RIGHT_TURN
	SHARP_RIGHT_TURN
	STRAIGHT_ON
	U_TURN
	NO_ENTRY
	NONE
)

func (t TurnType) String() string {
	switch t {
	case LEFT_TURN:
		return "left"
	case SHARP_LEFT_TURN:
		return "sharp_left"
	case RIGHT_TURN:
		return "right"
	case SHARP_RIGHT_TURN:
		return "sharp_right"
	case STRAIGHT_ON:
		return "straight"
	case U_TURN:
		return "u_turn"
	case NO_ENTRY:
		return "no_entry"
	default:
		return "none"
	}
}

var (
	INF_WEIGHT = math.Inf(1)
)

const (
	// INF_MILLIS saturated travel time of an impassable edge or a forbidden turn
	INF_MILLIS int64 = math.MaxInt64

	// SPEED_CONV km/h -> m/s
	SPEED_CONV = 3.6

	EARTH_RADIUS_M = 6371000.0

	// TURN_RESTRICTION_SUFFIX appended to a profile name to get its turn restriction encoded value
	TURN_RESTRICTION_SUFFIX = "_turn_restriction"
)

// FetchMode selects which points of an edge geometry are returned.
type FetchMode uint8

const (
	// TOWER_ONLY only the two junction nodes of the edge
	TOWER_ONLY FetchMode = iota
	// ALL junction nodes plus every pillar node in between
	ALL
)

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	UNKNOWN        OsmHighwayType = 17
)

var highwayTypeNames = map[string]OsmHighwayType{
	"motorway":       MOTORWAY,
	"trunk":          TRUNK,
	"primary":        PRIMARY,
	"secondary":      SECONDARY,
	"tertiary":       TERTIARY,
	"unclassified":   UNCLASSIFIED,
	"residential":    RESIDENTIAL,
	"service":        SERVICE,
	"motorway_link":  MOTORWAY_LINK,
	"trunk_link":     TRUNK_LINK,
	"primary_link":   PRIMARY_LINK,
	"secondary_link": SECONDARY_LINK,
	"tertiary_link":  TERTIARY_LINK,
	"living_street":  LIVING_STREET,
	"road":           ROAD,
	"track":          TRACK,
	"motorroad":      MOTORROAD,
}

func GetHighwayType(roadType string) OsmHighwayType {
	if t, ok := highwayTypeNames[roadType]; ok {
		return t
	}
	return UNKNOWN
}

// IsKnownHighwayType reports whether roadType names one of the routable road classes.
func IsKnownHighwayType(roadType string) bool {
	_, ok := highwayTypeNames[roadType]
	return ok
}
