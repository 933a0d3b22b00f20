package config

import (
	"flag"
	"os"
	"time"

	"github.com/mkalinins/commportal/internal/client/session"
	"github.com/mkalinins/commportal/internal/flagx"
)

// parseFlags overlays Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the portal backend
//	-t int      request timeout in seconds
//	-d string   path to the local state database
//	-r string   session restore mode: "verify" or "off"
//
// Arguments are filtered to only the flags handled here so other
// components can parse their own.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-r"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the portal backend")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local state database")
	restore := fs.String("r", string(cfg.RestoreMode), "session restore mode: verify|off")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutSec) * time.Second
	cfg.RestoreMode = session.RestoreMode(*restore)
}
