// Package signal implements the bounded signal gauge: the pure delta math
// plus the persist-and-notify wrappers used by hack resolution and decay.
package signal

import (
	"context"
	"fmt"
	"math"

	"github.com/vpavlenko/signalwars/internal/logging"
	"github.com/vpavlenko/signalwars/internal/server/config"
	"github.com/vpavlenko/signalwars/internal/server/notify"
	"github.com/vpavlenko/signalwars/internal/server/stations"
)

// Params hold the tuning constants of the gauge. The gauge range is
// [DefaultValue-Threshold, DefaultValue+Threshold].
type Params struct {
	DefaultValue     int
	Threshold        int
	MaxChange        int
	ChangePercentage float64
}

func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		DefaultValue:     cfg.SignalDefaultValue,
		Threshold:        cfg.SignalThreshold,
		MaxChange:        cfg.SignalMaxChange,
		ChangePercentage: cfg.SignalChangePercentage,
	}
}

// ComputeDelta returns the signed signal change for one successful hack.
//
// The magnitude shrinks as the value moves away from the default (a fraction
// of the remaining headroom), except when the change pushes back toward the
// default, where it is overridden with MaxChange.
func (p Params) ComputeDelta(current int, boosting bool) float64 {
	difference := math.Abs(float64(current - p.DefaultValue))
	delta := (float64(p.Threshold) - difference) * p.ChangePercentage

	if (boosting && current < p.DefaultValue) || (!boosting && current > p.DefaultValue) {
		delta = float64(p.MaxChange)
	}

	if boosting {
		return delta
	}
	return -math.Abs(delta)
}

// ApplyAndClamp applies ComputeDelta to the current value, rounding the delta
// magnitude up to a whole unit, and clamps the result to the gauge range.
func (p Params) ApplyAndClamp(current int, boosting bool) int {
	delta := p.ComputeDelta(current, boosting)
	step := int(math.Ceil(math.Abs(delta)))

	value := current - step
	if boosting {
		value = current + step
	}

	if upper := p.DefaultValue + p.Threshold; value > upper {
		value = upper
	}
	if lower := p.DefaultValue - p.Threshold; value < lower {
		value = lower
	}

	return value
}

// DecayTarget moves the value exactly one unit toward the default; at the
// default it is a fixed point.
func (p Params) DecayTarget(current int) int {
	switch {
	case current > p.DefaultValue:
		return current - 1
	case current < p.DefaultValue:
		return current + 1
	default:
		return current
	}
}

// Engine persists computed signal values and reports them to the external
// collaborator. Reports are fire-and-forget: a failed report is logged and
// never surfaced.
type Engine struct {
	params   Params
	stations stations.Repository
	reporter notify.Reporter
	logger   logging.Logger
}

func NewEngine(params Params, stationRepo stations.Repository, reporter notify.Reporter, logger logging.Logger) *Engine {
	return &Engine{
		params:   params,
		stations: stationRepo,
		reporter: reporter,
		logger:   logger.With("module", "signal_engine"),
	}
}

func (e *Engine) Params() Params {
	return e.params
}

// Adjust applies one hack-driven change to the station's signal and returns
// the station with its new value. Persistence failures are surfaced;
// notification failures are not.
func (e *Engine) Adjust(ctx context.Context, stationID int64, boosting bool) (*stations.Station, error) {

	station, err := e.stations.Get(ctx, stationID)
	if err != nil {
		return nil, err
	}

	value := e.params.ApplyAndClamp(station.SignalValue, boosting)

	if err := e.stations.SetSignalValue(ctx, stationID, value); err != nil {
		return nil, fmt.Errorf("persisting signal value: %w", err)
	}

	station.SignalValue = value
	e.reportAsync(stationID, value)

	return station, nil
}

// DecayStep nudges the station one unit toward the default value. At the
// default it is a no-op.
func (e *Engine) DecayStep(ctx context.Context, stationID int64) (int, error) {

	station, err := e.stations.Get(ctx, stationID)
	if err != nil {
		return 0, err
	}

	if station.SignalValue == e.params.DefaultValue {
		return station.SignalValue, nil
	}

	value := e.params.DecayTarget(station.SignalValue)

	if err := e.stations.SetSignalValue(ctx, stationID, value); err != nil {
		return 0, fmt.Errorf("persisting signal value: %w", err)
	}

	e.reportAsync(stationID, value)

	return value, nil
}

// reportAsync delivers the report on a detached goroutine; the result is
// deliberately discarded apart from a log line.
func (e *Engine) reportAsync(stationID int64, value int) {
	go func() {
		ctx := context.Background()
		if err := e.reporter.Report(ctx, stationID, value); err != nil {
			e.logger.Warn(ctx, "signal report failed",
				"station_id", stationID, "signal_value", value, "error", err.Error())
		}
	}()
}
