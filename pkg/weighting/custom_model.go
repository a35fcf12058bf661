package weighting

import (
	"math"

	"github.com/lintang-b-s/ecorouting/pkg"
	"github.com/lintang-b-s/ecorouting/pkg/util"
)

const (
	DEFAULT_DISTANCE_INFLUENCE = 70.0  // s/km
	DEFAULT_HEADING_PENALTY    = 300.0 // s

	CM_VERSION_1 = 1
	// CM_VERSION_2 allows priority multipliers above 1
	CM_VERSION_2 = 2
)

// CustomModel adjusts the base speed and priority of edges per road class. multipliers of road
// classes that are not listed are 1.
type CustomModel struct {
	DistanceInfluence *float64           `mapstructure:"distance_influence" json:"distance_influence,omitempty"`
	HeadingPenalty    *float64           `mapstructure:"heading_penalty" json:"heading_penalty,omitempty"`
	MaxSpeed          *float64           `mapstructure:"max_speed" json:"max_speed,omitempty"`
	SpeedFactor       map[string]float64 `mapstructure:"speed_factor" json:"speed_factor,omitempty"`
	Priority          map[string]float64 `mapstructure:"priority" json:"priority,omitempty"`
}

func NewCustomModel() *CustomModel {
	return &CustomModel{
		SpeedFactor: make(map[string]float64),
		Priority:    make(map[string]float64),
	}
}

func (cm *CustomModel) SetDistanceInfluence(v float64) *CustomModel {
	cm.DistanceInfluence = &v
	return cm
}

func (cm *CustomModel) SetHeadingPenalty(v float64) *CustomModel {
	cm.HeadingPenalty = &v
	return cm
}

func (cm *CustomModel) SetMaxSpeed(v float64) *CustomModel {
	cm.MaxSpeed = &v
	return cm
}

func (cm *CustomModel) GetDistanceInfluence() float64 {
	if cm.DistanceInfluence == nil {
		return DEFAULT_DISTANCE_INFLUENCE
	}
	return *cm.DistanceInfluence
}

func (cm *CustomModel) GetHeadingPenalty() float64 {
	if cm.HeadingPenalty == nil {
		return DEFAULT_HEADING_PENALTY
	}
	return *cm.HeadingPenalty
}

func (cm *CustomModel) copy() *CustomModel {
	c := NewCustomModel()
	if cm == nil {
		return c
	}
	if cm.DistanceInfluence != nil {
		c.SetDistanceInfluence(*cm.DistanceInfluence)
	}
	if cm.HeadingPenalty != nil {
		c.SetHeadingPenalty(*cm.HeadingPenalty)
	}
	if cm.MaxSpeed != nil {
		c.SetMaxSpeed(*cm.MaxSpeed)
	}
	for k, v := range cm.SpeedFactor {
		c.SpeedFactor[k] = v
	}
	for k, v := range cm.Priority {
		c.Priority[k] = v
	}
	return c
}

// MergeCustomModel returns a new model: profile defaults with the query model on top. scalar values of
// the query win, multipliers of both models are applied one after the other and the lower max speed
// is kept. neither argument is modified.
func MergeCustomModel(profileModel, queryModel *CustomModel) *CustomModel {
	merged := profileModel.copy()
	if queryModel == nil {
		return merged
	}

	if queryModel.DistanceInfluence != nil {
		merged.SetDistanceInfluence(*queryModel.DistanceInfluence)
	}
	if queryModel.HeadingPenalty != nil {
		merged.SetHeadingPenalty(*queryModel.HeadingPenalty)
	}
	if queryModel.MaxSpeed != nil {
		if merged.MaxSpeed == nil || *queryModel.MaxSpeed < *merged.MaxSpeed {
			merged.SetMaxSpeed(*queryModel.MaxSpeed)
		}
	}
	for k, v := range queryModel.SpeedFactor {
		if old, ok := merged.SpeedFactor[k]; ok {
			v *= old
		}
		merged.SpeedFactor[k] = v
	}
	for k, v := range queryModel.Priority {
		if old, ok := merged.Priority[k]; ok {
			v *= old
		}
		merged.Priority[k] = v
	}
	return merged
}

// roadClassTable multiplier per pkg.OsmHighwayType, 1 for classes that are not listed.
func roadClassTable(multipliers map[string]float64, what string) ([pkg.UNKNOWN + 1]float64, error) {
	var table [pkg.UNKNOWN + 1]float64
	for i := range table {
		table[i] = 1
	}
	for roadClass, v := range multipliers {
		if !pkg.IsKnownHighwayType(roadClass) {
			return table, util.ConfigErrorf("%s: unknown road class '%s'", what, roadClass)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return table, util.ConfigErrorf("%s of road class '%s' must be a finite non-negative number, got %v",
				what, roadClass, v)
		}
		table[pkg.GetHighwayType(roadClass)] = v
	}
	return table, nil
}

// CreateWeightingParameters turns a merged custom model into the speed/priority functions of the base
// weighting.
func CreateWeightingParameters(em EncodingManager, cm *CustomModel, version int) (Parameters, error) {
	if cm == nil {
		cm = NewCustomModel()
	}

	speedFactors, err := roadClassTable(cm.SpeedFactor, "speed_factor")
	if err != nil {
		return Parameters{}, err
	}
	priorities, err := roadClassTable(cm.Priority, "priority")
	if err != nil {
		return Parameters{}, err
	}
	if version != CM_VERSION_2 {
		for roadClass, v := range cm.Priority {
			if v > 1 {
				return Parameters{}, util.ConfigErrorf("priority of road class '%s' cannot be greater than 1 (%v), "+
					"use cm_version 2", roadClass, v)
			}
		}
	}
	if cm.MaxSpeed != nil && *cm.MaxSpeed <= 0 {
		return Parameters{}, util.ConfigErrorf("max_speed must be positive, got %v", *cm.MaxSpeed)
	}

	encodedMaxSpeed := em.MaxSpeed()
	if encodedMaxSpeed <= 0 {
		return Parameters{}, util.ConfigErrorf("encoded max speed must be positive, got %v", encodedMaxSpeed)
	}
	maxSpeed := encodedMaxSpeed * util.MaxOf(1.0, speedFactors[:]...)
	if cm.MaxSpeed != nil {
		maxSpeed = math.Min(maxSpeed, *cm.MaxSpeed)
	}
	maxPrio := util.MaxOf(1.0, priorities[:]...)
	if maxSpeed <= 0 || maxPrio <= 0 {
		return Parameters{}, util.ConfigErrorf("custom model makes every road class inaccessible")
	}

	speedCap := math.Inf(1)
	if cm.MaxSpeed != nil {
		speedCap = *cm.MaxSpeed
	}

	return Parameters{
		EdgeToSpeedMapping: func(edge EdgeState, reverse bool) float64 {
			return math.Min(edge.GetBaseSpeed(reverse)*speedFactors[edge.GetRoadClass()], speedCap)
		},
		EdgeToPriorityMapping: func(edge EdgeState, reverse bool) float64 {
			return priorities[edge.GetRoadClass()]
		},
		MaxSpeedCalc: func() float64 {
			return maxSpeed
		},
		MaxPrioCalc: func() float64 {
			return maxPrio
		},
		HeadingPenaltySeconds: cm.GetHeadingPenalty(),
		DistanceInfluence:     cm.GetDistanceInfluence(),
	}, nil
}
