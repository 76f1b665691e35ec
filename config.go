package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind          string
	minPlayers    int
	port          int
	prefix        string
	profile       bool
	roundCooldown time.Duration
	roundGrace    time.Duration
	roundInterval time.Duration
	tlsCert       string
	tlsKey        string
	verbose       bool
	version       bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.minPlayers < 2 {
		return fmt.Errorf("invalid --min-players (a nose-goes round needs at least two players): %d", c.minPlayers)
	}
	if c.roundInterval <= 0 {
		return fmt.Errorf("invalid --round-interval (must be positive): %s", c.roundInterval)
	}
	if c.roundGrace <= 0 {
		return fmt.Errorf("invalid --round-grace (must be positive): %s", c.roundGrace)
	}
	if c.roundCooldown < 0 {
		return fmt.Errorf("invalid --round-cooldown (must not be negative): %s", c.roundCooldown)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("HIPPOBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "hippobox",
		Short:         "A hungry-hippos party game session server, feeding many phones and one big screen.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: HIPPOBOX_BIND)")
	fs.IntVar(&cfg.minPlayers, "min-players", 2, "connected players required before a nose-goes round starts (env: HIPPOBOX_MIN_PLAYERS)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: HIPPOBOX_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: HIPPOBOX_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: HIPPOBOX_PROFILE)")
	fs.DurationVar(&cfg.roundCooldown, "round-cooldown", 15*time.Second, "minimum quiet time after a round resolves (env: HIPPOBOX_ROUND_COOLDOWN)")
	fs.DurationVar(&cfg.roundGrace, "round-grace", 10*time.Second, "time players have to respond before a round resolves (env: HIPPOBOX_ROUND_GRACE)")
	fs.DurationVar(&cfg.roundInterval, "round-interval", time.Minute, "time between nose-goes rounds (env: HIPPOBOX_ROUND_INTERVAL)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: HIPPOBOX_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: HIPPOBOX_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: HIPPOBOX_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: HIPPOBOX_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("hippobox v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
