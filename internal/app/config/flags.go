package config

import (
	"flag"
	"os"

	"github.com/melodica-app/melodica/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   path to the SQLite database file (default from Config)
//	-l string   minimum log level (default from Config)
//	-p          pretty console log output
//
// os.Args is filtered through flagx.FilterArgs so only the flags handled
// here are parsed, leaving other components free to define their own.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the SQLite database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "minimum log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.LogPretty, "p", cfg.LogPretty, "pretty console log output")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
