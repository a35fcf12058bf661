package emission

import (
	"math"

	"github.com/lintang-b-s/ecorouting/pkg/util"
	"go.uber.org/zap"
)

// Emissions fuel & co2 estimate of one segment (or a sum of segments).
type Emissions struct {
	CO2Grams       float64 `json:"co2_consumption_g"`
	CO2GramsRaw    float64 `json:"co2_consumption_raw"` // baseline mileage, load ignored, never clamped
	FuelLiters     float64 `json:"fuel_consumed_l"`
	FuelLitersRaw  float64 `json:"fuel_consumed_raw"`
	DistanceMeters float64 `json:"distance"`
	GradeDegrees   float64 `json:"theta"`
	LoadOffset     float64 `json:"load_off"`
}

// Add sums fuel, co2 and distance of o into e. grade and load offset become distance weighted means.
func (e *Emissions) Add(o Emissions) {
	total := e.DistanceMeters + o.DistanceMeters
	if total > 0 {
		e.GradeDegrees = (e.GradeDegrees*e.DistanceMeters + o.GradeDegrees*o.DistanceMeters) / total
		e.LoadOffset = (e.LoadOffset*e.DistanceMeters + o.LoadOffset*o.DistanceMeters) / total
	}
	e.CO2Grams += o.CO2Grams
	e.CO2GramsRaw += o.CO2GramsRaw
	e.FuelLiters += o.FuelLiters
	e.FuelLitersRaw += o.FuelLitersRaw
	e.DistanceMeters = total
}

// Accumulator trip totals since the last reset.
type Accumulator struct {
	DistanceMeters float64 `json:"distance_accumulated_m"`
	FuelLiters     float64 `json:"fuel_accumulated_l"`
	CO2Grams       float64 `json:"co2_accumulated_g"`
}

/*
Engine longitudinal dynamics fuel model with a single gear. the resistive force on a grade is

	F = m*g*sin(theta) + c_rr*m*g*cos(theta)

and the engine load is F relative to the max tractive force. mileage degrades linearly with how far
the load is from nominal, floored at (mileage - modifier).

an Engine is not safe for concurrent use: the accumulator belongs to one search at a time.
*/
type Engine struct {
	profile VehicleProfile
	acc     Accumulator
	log     *zap.Logger
}

func NewEngine(profile VehicleProfile, log *zap.Logger) (*Engine, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		profile: profile,
		log:     log,
	}, nil
}

func (en *Engine) Profile() VehicleProfile {
	return en.profile
}

// Reset zeroes the accumulated distance, fuel and co2.
func (en *Engine) Reset() {
	en.acc = Accumulator{}
}

func (en *Engine) Totals() Accumulator {
	return en.acc
}

// SegmentEmissions estimates fuel burned and co2 emitted over distanceM meters at a constant
// grade of gradeDeg degrees (uphill positive). pure, does not touch the accumulator.
func (en *Engine) SegmentEmissions(distanceM, gradeDeg float64) Emissions {
	p := en.profile
	massTotal := p.MassTotal()
	theta := util.DegreeToRadians(gradeDeg)

	forceAngular := massTotal*p.AccelGravity*math.Sin(theta) +
		p.RollingPressureRatio*massTotal*p.AccelGravity*math.Cos(theta)

	load := forceAngular / p.ForceEngineMax()
	loadOffset := load - p.LoadNominal

	mileageCompensated := math.Max(p.MileagePerLiter-p.MileageModifier,
		p.MileagePerLiter-loadOffset*p.MileageModifier)

	distanceKm := distanceM * 0.001
	fuelConsumed := distanceKm / mileageCompensated
	co2Consumption := p.EmissionCO2 * (fuelConsumed * p.FuelLToG)

	fuelConsumedRaw := distanceKm / p.MileagePerLiter
	co2ConsumptionRaw := p.EmissionCO2 * (fuelConsumedRaw * p.FuelLToG)

	return Emissions{
		CO2Grams:       util.NonNegative(co2Consumption),
		CO2GramsRaw:    co2ConsumptionRaw,
		FuelLiters:     util.NonNegative(fuelConsumed),
		FuelLitersRaw:  fuelConsumedRaw,
		DistanceMeters: distanceM,
		GradeDegrees:   gradeDeg,
		LoadOffset:     loadOffset,
	}
}

// Accumulate adds one segment to the trip totals and returns the segment estimate.
//
// the total co2 is recomputed from the accumulated fuel plus idle fuel burned over elapsedSeconds,
// so elapsedSeconds must be the cumulative elapsed time since the last Reset, not a per-call delta.
func (en *Engine) Accumulate(distanceM, gradeDeg, elapsedSeconds float64) Emissions {
	en.acc.DistanceMeters += distanceM
	seg := en.SegmentEmissions(distanceM, gradeDeg)
	en.acc.FuelLiters += seg.FuelLiters

	p := en.profile
	en.acc.CO2Grams = p.EmissionCO2 * ((en.acc.FuelLiters + (p.IdleFuelUsageL * elapsedSeconds / 3600)) * p.FuelLToG)

	if ce := en.log.Check(zap.DebugLevel, "accumulated fuel consumption"); ce != nil {
		ce.Write(
			zap.Float64("co2_consumption_g", seg.CO2Grams),
			zap.Float64("fuel_consumed_l", seg.FuelLiters),
			zap.Float64("distance", seg.DistanceMeters),
			zap.Float64("theta", seg.GradeDegrees),
			zap.Float64("load_off", seg.LoadOffset),
			zap.Float64("co2_accumulated_g", en.acc.CO2Grams),
		)
	}
	return seg
}
