package emission

import (
	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/ecorouting/pkg/util"
)

// VehicleProfile physical constants of one reference vehicle. it is a plain value, copies are
// independent and nothing in this package mutates it after construction.
//
// units: idle fuel usage in L/h, masses in kg, gravity in m/s^2, torque in Nm, tyre radius in m,
// mileage in km/L, EmissionCO2 in g co2 per g fuel, FuelLToG in g/L, tire pressure in kPa.
type VehicleProfile struct {
	IdleFuelUsageL       float64 `mapstructure:"idle_fuel_usage_l" json:"idle_fuel_usage_l" validate:"gt=0"`
	MassVehicle          float64 `mapstructure:"mass_vehicle" json:"mass_vehicle" validate:"gt=0"`
	MassLoad             float64 `mapstructure:"mass_load" json:"mass_load" validate:"gt=0"`
	AccelGravity         float64 `mapstructure:"accel_gravity" json:"accel_gravity" validate:"gt=0"`
	TorqueEngineMax      float64 `mapstructure:"torque_engine_max" json:"torque_engine_max" validate:"gt=0"`
	AxleRatioHighest     float64 `mapstructure:"axle_ratio_highest" json:"axle_ratio_highest" validate:"gt=0"`
	RadiusTyre           float64 `mapstructure:"radius_tyre" json:"radius_tyre" validate:"gt=0"`
	LoadNominal          float64 `mapstructure:"load_nominal" json:"load_nominal" validate:"gt=0"`
	MileagePerLiter      float64 `mapstructure:"mileage_per_liter" json:"mileage_per_liter" validate:"gt=0"`
	MileageModifier      float64 `mapstructure:"mileage_modifier" json:"mileage_modifier" validate:"gt=0"`
	EmissionCO2          float64 `mapstructure:"emission_co2" json:"emission_co2" validate:"gt=0"`
	FuelLToG             float64 `mapstructure:"fuel_l_to_g" json:"fuel_l_to_g" validate:"gt=0"`
	NumWheels            int     `mapstructure:"num_wheels" json:"num_wheels" validate:"gt=0"`
	TirePressure         float64 `mapstructure:"tire_pressure" json:"tire_pressure" validate:"gt=0"`
	RollingPressureRatio float64 `mapstructure:"rolling_pressure_ratio" json:"rolling_pressure_ratio" validate:"gt=0"`
}

// DefaultVehicleProfile Volvo FMX84 diesel truck with a 10 t payload.
func DefaultVehicleProfile() VehicleProfile {
	return VehicleProfile{
		IdleFuelUsageL:       3.02,
		MassVehicle:          32000,
		MassLoad:             10000,
		AccelGravity:         9.81,
		TorqueEngineMax:      2600,
		AxleRatioHighest:     4.11,
		RadiusTyre:           0.515,
		LoadNominal:          0.5,
		MileagePerLiter:      5.4746,
		MileageModifier:      5,
		EmissionCO2:          3.17,
		FuelLToG:             850.8,
		NumWheels:            6,
		TirePressure:         240,
		RollingPressureRatio: 0.01,
	}
}

var validate = validator.New()

// Validate rejects profiles with a zero or negative constant. a zero max engine force or a zero
// baseline mileage would make the fuel model divide by zero.
func (p VehicleProfile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return util.WrapErrorf(err, util.ErrConfiguration, "invalid vehicle profile")
	}
	return nil
}

func (p VehicleProfile) MassTotal() float64 {
	return p.MassVehicle + p.MassLoad
}

// ForceEngineMax maximum tractive force at the wheels in the highest gear, in newton.
func (p VehicleProfile) ForceEngineMax() float64 {
	return p.TorqueEngineMax * p.AxleRatioHighest / p.RadiusTyre
}
