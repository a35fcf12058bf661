package weighting

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/lintang-b-s/ecorouting/pkg/emission"
	"github.com/lintang-b-s/ecorouting/pkg/util"
	"go.uber.org/zap"
)

// WeightingFactory builds the weighting of a profile for one search. every call returns a new,
// independent instance, including a new emission engine for the carbon weighting.
type WeightingFactory struct {
	encodingManager EncodingManager
	vehicle         emission.VehicleProfile
	log             *zap.Logger
	cache           *ExternalityCache
}

type FactoryOption func(f *WeightingFactory)

// WithSharedExternalityCache lets every weighting created by the factory memoize externalities in cache.
func WithSharedExternalityCache(cache *ExternalityCache) FactoryOption {
	return func(f *WeightingFactory) {
		f.cache = cache
	}
}

func NewWeightingFactory(encodingManager EncodingManager, vehicle emission.VehicleProfile, log *zap.Logger,
	opts ...FactoryOption) (*WeightingFactory, error) {
	if err := vehicle.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	f := &WeightingFactory{
		encodingManager: encodingManager,
		vehicle:         vehicle,
		log:             log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *WeightingFactory) CreateWeighting(profile Profile, requestHints PMap, disableTurnCosts bool) (Weighting, error) {
	// request hints take precedence over profile hints
	hints := NewPMap()
	hints.PutAll(profile.Hints)
	hints.PutAll(requestHints)

	turnCostProvider, err := f.createTurnCostProvider(profile, hints, disableTurnCosts)
	if err != nil {
		return nil, err
	}

	weightingStr := strings.ToLower(strings.TrimSpace(profile.Weighting))
	if weightingStr == "" {
		return nil, util.ConfigErrorf("you have to specify a weighting")
	}

	var weighting Weighting
	switch weightingStr {
	case CUSTOM_NAME:
		weighting, err = f.createCustomWeighting(profile, requestHints, hints, turnCostProvider)
		if err != nil {
			return nil, err
		}
	case "shortest":
		return nil, util.ConfigErrorf("instead of weighting=shortest use weighting=custom with a high distance_influence")
	case "fastest":
		return nil, util.ConfigErrorf("instead of weighting=fastest use weighting=custom with a low distance_influence")
	case "curvature":
		return nil, util.ConfigErrorf("the curvature weighting is no longer supported, use weighting=custom " +
			"with a custom model instead")
	case "short_fastest":
		return nil, util.ConfigErrorf("instead of weighting=short_fastest use weighting=custom with a distance_influence")
	default:
		return nil, util.ConfigErrorf("weighting '%s' not supported", weightingStr)
	}

	f.log.Debug("created weighting",
		zap.String("profile", profile.Name),
		zap.String("weighting", weighting.Name()),
		zap.Bool("turn_costs", weighting.HasTurnCosts()))
	return weighting, nil
}

func (f *WeightingFactory) createTurnCostProvider(profile Profile, hints PMap,
	disableTurnCosts bool) (TurnCostProvider, error) {
	if !profile.HasTurnCosts() || disableTurnCosts {
		return NoTurnCostProvider, nil
	}

	restrictions, ok := f.encodingManager.TurnRestrictionEnc(TurnRestrictionKey(profile.Name))
	if !ok {
		return nil, util.ConfigErrorf("cannot find turn restriction encoded value for %s", profile.Name)
	}

	tcConfig := profile.GetTurnCostsConfig()
	orientation, hasOrientation := f.encodingManager.OrientationEnc()
	if !hasOrientation {
		orientation = nil
	}
	if tcConfig.HasLeftRightStraightCosts() && !hasOrientation {
		return nil, util.ConfigErrorf("using left_turn_costs,sharp_left_turn_costs,right_turn_costs," +
			"sharp_right_turn_costs or straight_costs for turn_costs requires 'orientation' in graph.encoded_values")
	}

	tcConfig.UTurnCosts = hints.GetInt(KEY_U_TURN_COSTS, tcConfig.UTurnCosts)
	return NewDefaultTurnCostProvider(restrictions, orientation, tcConfig), nil
}

func (f *WeightingFactory) createCustomWeighting(profile Profile, requestHints, hints PMap,
	turnCostProvider TurnCostProvider) (Weighting, error) {
	queryCustomModel, err := customModelFromHints(requestHints)
	if err != nil {
		return nil, err
	}
	mergedCustomModel := MergeCustomModel(profile.CustomModel, queryCustomModel)
	if requestHints.Has(KEY_HEADING_PENALTY) {
		mergedCustomModel.SetHeadingPenalty(requestHints.GetFloat64(KEY_HEADING_PENALTY, DEFAULT_HEADING_PENALTY))
	}

	if hints.Has(KEY_CM_CUSTOM_BYPASS) {
		parameters, err := CreateWeightingParameters(f.encodingManager, mergedCustomModel, CM_VERSION_1)
		if err != nil {
			return nil, err
		}

		elevation := strings.EqualFold(hints.GetString(KEY_CM_CUSTOM_BYPASS, ""), CM_CUSTOM_BYPASS_ELEVATION)

		// a query custom model can change the assigned speeds, those results are not cached
		var opts []Option
		if f.cache != nil && queryCustomModel == nil {
			scope := profile.Name + "/" + CM_CUSTOM_BYPASS_CARBON
			if elevation {
				scope = profile.Name + "/" + CM_CUSTOM_BYPASS_ELEVATION
			}
			opts = append(opts, WithExternalityCache(f.cache, scope))
		}

		if elevation {
			return NewElevationWeighting(turnCostProvider, parameters, opts...)
		}

		engine, err := emission.NewEngine(f.vehicle, f.log)
		if err != nil {
			return nil, err
		}
		return NewCarbonWeighting(turnCostProvider, parameters, engine, opts...)
	}

	version := CM_VERSION_1
	if hints.Has(KEY_CM_VERSION) {
		if hints.GetString(KEY_CM_VERSION, "") != "2" {
			return nil, util.ConfigErrorf("cm_version: \"2\" is required")
		}
		version = CM_VERSION_2
	}

	parameters, err := CreateWeightingParameters(f.encodingManager, mergedCustomModel, version)
	if err != nil {
		return nil, err
	}
	return NewCustomWeighting(turnCostProvider, parameters)
}

func customModelFromHints(requestHints PMap) (*CustomModel, error) {
	obj, ok := requestHints.GetObject(KEY_CUSTOM_MODEL)
	if !ok || obj == nil {
		return nil, nil
	}
	switch cm := obj.(type) {
	case *CustomModel:
		return cm, nil
	case CustomModel:
		return &cm, nil
	case map[string]interface{}:
		// decoded from yaml or json
		decoded := NewCustomModel()
		if err := mapstructure.Decode(cm, decoded); err != nil {
			return nil, util.WrapErrorf(err, util.ErrConfiguration, "invalid %s hint", KEY_CUSTOM_MODEL)
		}
		return decoded, nil
	default:
		return nil, util.ConfigErrorf("%s hint must be a custom model, got %T", KEY_CUSTOM_MODEL, obj)
	}
}
