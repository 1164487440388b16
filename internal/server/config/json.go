package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/vpavlenko/signalwars/internal/flagx"
	"github.com/vpavlenko/signalwars/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "60s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	DatabaseDSN            string         `json:"database_dsn"`
	SecretKey              string         `json:"secret_key"`
	NotifyEndpoint         string         `json:"notify_endpoint"`
	AnonymousLevel         int            `json:"anonymous_level"`
	HackingTriesAmount     int            `json:"hacking_tries_amount"`
	SignalDefaultValue     int            `json:"signal_default_value"`
	SignalThreshold        int            `json:"signal_threshold"`
	SignalMaxChange        int            `json:"signal_max_change"`
	SignalChangePercentage float64        `json:"signal_change_percentage"`
	SignalResetTimeout     timex.Duration `json:"signal_reset_timeout"`
	CalibrationRewardMin   int            `json:"calibration_reward_min"`
	CalibrationRewardMax   int            `json:"calibration_reward_max"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when neither
// is set, no JSON file is loaded. If the file cannot be read or contains
// invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.NotifyEndpoint = c.NotifyEndpoint
	config.AnonymousLevel = c.AnonymousLevel
	config.HackingTriesAmount = c.HackingTriesAmount
	config.SignalDefaultValue = c.SignalDefaultValue
	config.SignalThreshold = c.SignalThreshold
	config.SignalMaxChange = c.SignalMaxChange
	config.SignalChangePercentage = c.SignalChangePercentage
	config.SignalResetTimeout = time.Duration(c.SignalResetTimeout.Duration)
	config.CalibrationRewardMin = c.CalibrationRewardMin
	config.CalibrationRewardMax = c.CalibrationRewardMax
}
