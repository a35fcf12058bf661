package weighting

import (
	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/ecorouting/pkg/util"
)

// Profile routing profile as configured in config.yaml.
type Profile struct {
	Name        string                 `mapstructure:"name" json:"name" validate:"required"`
	Weighting   string                 `mapstructure:"weighting" json:"weighting"`
	TurnCosts   *TurnCostsConfig       `mapstructure:"turn_costs" json:"turn_costs,omitempty"`
	CustomModel *CustomModel           `mapstructure:"custom_model" json:"custom_model,omitempty"`
	Hints       map[string]interface{} `mapstructure:"hints" json:"hints,omitempty"`
}

func NewProfile(name string) Profile {
	return Profile{
		Name:      name,
		Weighting: CUSTOM_NAME,
		Hints:     make(map[string]interface{}),
	}
}

func (p Profile) HasTurnCosts() bool {
	return p.TurnCosts != nil
}

func (p Profile) GetTurnCostsConfig() TurnCostsConfig {
	if p.TurnCosts == nil {
		return DefaultTurnCostsConfig()
	}
	return *p.TurnCosts
}

var validate = validator.New()

func (p Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return util.WrapErrorf(err, util.ErrConfiguration, "invalid profile '%s'", p.Name)
	}
	return nil
}
