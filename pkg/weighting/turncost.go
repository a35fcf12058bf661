package weighting

import (
	"github.com/lintang-b-s/ecorouting/pkg"
	da "github.com/lintang-b-s/ecorouting/pkg/datastructure"
	"github.com/lintang-b-s/ecorouting/pkg/geo"
	"github.com/lintang-b-s/ecorouting/pkg/util"
)

type TurnCostProvider interface {
	// CalcTurnWeight cost in seconds of turning from inEdge into outEdge at viaNode
	CalcTurnWeight(inEdge, viaNode, outEdge da.Index) float64
	CalcTurnMillis(inEdge, viaNode, outEdge da.Index) int64
}

type noTurnCostProvider struct{}

func (noTurnCostProvider) CalcTurnWeight(inEdge, viaNode, outEdge da.Index) float64 {
	return 0
}

func (noTurnCostProvider) CalcTurnMillis(inEdge, viaNode, outEdge da.Index) int64 {
	return 0
}

// NoTurnCostProvider identity provider, a weighting bound to it reports HasTurnCosts() == false.
var NoTurnCostProvider TurnCostProvider = noTurnCostProvider{}

const (
	INFINITE_U_TURN_COSTS = -1
)

// TurnCostsConfig costs in seconds per turn type.
type TurnCostsConfig struct {
	UTurnCosts          int     `mapstructure:"u_turn_costs" json:"u_turn_costs"`
	LeftTurnCosts       float64 `mapstructure:"left_turn_costs" json:"left_turn_costs" validate:"gte=0"`
	SharpLeftTurnCosts  float64 `mapstructure:"sharp_left_turn_costs" json:"sharp_left_turn_costs" validate:"gte=0"`
	RightTurnCosts      float64 `mapstructure:"right_turn_costs" json:"right_turn_costs" validate:"gte=0"`
	SharpRightTurnCosts float64 `mapstructure:"sharp_right_turn_costs" json:"sharp_right_turn_costs" validate:"gte=0"`
	StraightCosts       float64 `mapstructure:"straight_costs" json:"straight_costs" validate:"gte=0"`
	MinLeftAngle        float64 `mapstructure:"min_left_angle" json:"min_left_angle"`
	MaxLeftAngle        float64 `mapstructure:"max_left_angle" json:"max_left_angle"`
	MinRightAngle       float64 `mapstructure:"min_right_angle" json:"min_right_angle"`
	MaxRightAngle       float64 `mapstructure:"max_right_angle" json:"max_right_angle"`
}

func DefaultTurnCostsConfig() TurnCostsConfig {
	return TurnCostsConfig{
		UTurnCosts:    INFINITE_U_TURN_COSTS,
		MinLeftAngle:  25,
		MaxLeftAngle:  100,
		MinRightAngle: -25,
		MaxRightAngle: -100,
	}
}

// withDefaultAngles fills unset angle thresholds.
func (c TurnCostsConfig) withDefaultAngles() TurnCostsConfig {
	def := DefaultTurnCostsConfig()
	if c.MinLeftAngle == 0 {
		c.MinLeftAngle = def.MinLeftAngle
	}
	if c.MaxLeftAngle == 0 {
		c.MaxLeftAngle = def.MaxLeftAngle
	}
	if c.MinRightAngle == 0 {
		c.MinRightAngle = def.MinRightAngle
	}
	if c.MaxRightAngle == 0 {
		c.MaxRightAngle = def.MaxRightAngle
	}
	return c
}

func (c TurnCostsConfig) HasLeftRightStraightCosts() bool {
	return c.LeftTurnCosts != 0 || c.SharpLeftTurnCosts != 0 || c.RightTurnCosts != 0 ||
		c.SharpRightTurnCosts != 0 || c.StraightCosts != 0
}

// DefaultTurnCostProvider turn restrictions, u-turn costs and, when orientation data is available,
// left/right/straight costs.
type DefaultTurnCostProvider struct {
	restrictions TurnRestrictionLookup
	orientation  OrientationLookup
	config       TurnCostsConfig
}

// NewDefaultTurnCostProvider orientation may be nil, then only restrictions and u-turns cost.
func NewDefaultTurnCostProvider(restrictions TurnRestrictionLookup, orientation OrientationLookup,
	config TurnCostsConfig) *DefaultTurnCostProvider {
	return &DefaultTurnCostProvider{
		restrictions: restrictions,
		orientation:  orientation,
		config:       config.withDefaultAngles(),
	}
}

func (tp *DefaultTurnCostProvider) CalcTurnWeight(inEdge, viaNode, outEdge da.Index) float64 {
	if inEdge == da.INVALID_EDGE_ID || outEdge == da.INVALID_EDGE_ID {
		return 0
	}
	return tp.GetTurnCost(tp.GetTurnType(inEdge, viaNode, outEdge))
}

func (tp *DefaultTurnCostProvider) CalcTurnMillis(inEdge, viaNode, outEdge da.Index) int64 {
	return util.SecondsToMillis(tp.CalcTurnWeight(inEdge, viaNode, outEdge))
}

func (tp *DefaultTurnCostProvider) GetTurnType(inEdge, viaNode, outEdge da.Index) pkg.TurnType {
	if tp.restrictions != nil && tp.restrictions.IsRestricted(inEdge, viaNode, outEdge) {
		return pkg.NO_ENTRY
	}
	if inEdge == outEdge {
		return pkg.U_TURN
	}
	if tp.orientation == nil {
		return pkg.NONE
	}

	delta := geo.TurnAngle(tp.orientation.ArrivalBearing(inEdge, viaNode),
		tp.orientation.DepartureBearing(outEdge, viaNode))
	c := tp.config
	switch {
	case delta < c.MinLeftAngle && delta > c.MinRightAngle:
		return pkg.STRAIGHT_ON
	case delta >= c.MinLeftAngle && delta < c.MaxLeftAngle:
		return pkg.LEFT_TURN
	case delta >= c.MaxLeftAngle:
		return pkg.SHARP_LEFT_TURN
	case delta <= c.MinRightAngle && delta > c.MaxRightAngle:
		return pkg.RIGHT_TURN
	default:
		return pkg.SHARP_RIGHT_TURN
	}
}

func (tp *DefaultTurnCostProvider) GetTurnCost(turnType pkg.TurnType) float64 {
	c := tp.config
	switch turnType {
	case pkg.NO_ENTRY:
		return pkg.INF_WEIGHT
	case pkg.U_TURN:
		if c.UTurnCosts < 0 {
			return pkg.INF_WEIGHT
		}
		return float64(c.UTurnCosts)
	case pkg.LEFT_TURN:
		return c.LeftTurnCosts
	case pkg.SHARP_LEFT_TURN:
		return c.SharpLeftTurnCosts
	case pkg.RIGHT_TURN:
		return c.RightTurnCosts
	case pkg.SHARP_RIGHT_TURN:
		return c.SharpRightTurnCosts
	case pkg.STRAIGHT_ON:
		return c.StraightCosts
	default:
		return 0
	}
}
