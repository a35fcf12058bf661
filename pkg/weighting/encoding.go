package weighting

import (
	"github.com/lintang-b-s/ecorouting/pkg"
	da "github.com/lintang-b-s/ecorouting/pkg/datastructure"
)

const (
	ORIENTATION_KEY = "orientation"
)

// TurnRestrictionKey name of the encoded turn restriction value of a profile.
func TurnRestrictionKey(profileName string) string {
	return profileName + pkg.TURN_RESTRICTION_SUFFIX
}

type TurnRestrictionLookup interface {
	IsRestricted(inEdge, viaNode, outEdge da.Index) bool
}

// OrientationLookup compass bearings in degrees of an edge where it touches viaNode.
type OrientationLookup interface {
	ArrivalBearing(edge, viaNode da.Index) float64
	DepartureBearing(edge, viaNode da.Index) float64
}

// EncodingManager encoded values the graph was built with.
type EncodingManager interface {
	TurnRestrictionEnc(key string) (TurnRestrictionLookup, bool)
	OrientationEnc() (OrientationLookup, bool)
	// MaxSpeed upper bound of every encoded base speed, km/h
	MaxSpeed() float64
}
