package config

import (
	"flag"
	"os"
	"time"

	"github.com/vpavlenko/signalwars/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-n string   signal-report endpoint URL
//	-t int      hacking tries amount
//	-i int      signal reset (decay) interval, seconds; 0 disables decay
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The interval flag is accepted as an integer in seconds and then
//     converted to a time.Duration value.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-n", "-t", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.NotifyEndpoint, "n", config.NotifyEndpoint, "signal report endpoint")
	fs.IntVar(&config.HackingTriesAmount, "t", config.HackingTriesAmount, "hacking tries amount")

	signalResetTimeout := fs.Int("i", int(config.SignalResetTimeout.Seconds()), "signal reset timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SignalResetTimeout = time.Duration(*signalResetTimeout) * time.Second
}
