package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/billed/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only the flags handled here are picked out of os.Args (via
// flagx.FilterArgs) so the JSON loader's -c flag does not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-i", "-t", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the store API")
	fs.StringVar(&cfg.HealthEndpointAddr, "g", cfg.HealthEndpointAddr, "address and port of the health endpoint")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "store request timeout (in seconds)")
	fs.StringVar(&cfg.SessionFile, "s", cfg.SessionFile, "session file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only flags that were passed override earlier sources.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
}
