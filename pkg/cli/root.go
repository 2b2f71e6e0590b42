package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/slkit/slkit/pkg/config"
	"github.com/slkit/slkit/pkg/services"
	"github.com/slkit/slkit/pkg/session"
	"github.com/slkit/slkit/pkg/version"
)

// New builds the root command with all subcommands attached.
func New() *cli.Command {
	return &cli.Command{
		Name:                  "slkit",
		Usage:                 "Manage SoftLayer cloud resources",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: $SLKIT_CONFIG or ~/.slkit/config.yaml)",
				Sources: cli.EnvVars(config.EnvConfigPath),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Value:   "table",
				Usage:   "Output format: json, yaml, table",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Output logs in JSON format",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			setupLogging(cmd.Bool("debug"), cmd.Bool("log-json"))
			return ctx, nil
		},
		CommandNotFound: suggestCommand,
		Commands: []*cli.Command{
			firewallCmd(),
			blockCmd(),
			fileCmd(),
			imageCmd(),
			accountCmd(),
			metadataCmd(),
		},
	}
}

func setupLogging(debug, logJSON bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if logJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// suggestCommand prints close matches for a mistyped command name.
func suggestCommand(_ context.Context, cmd *cli.Command, name string) {
	fmt.Fprintf(cmd.ErrWriter, "unknown command %q\n", name)
	if suggestions := closestCommands(cmd, name); len(suggestions) > 0 {
		fmt.Fprintln(cmd.ErrWriter, "\nDid you mean:")
		for _, s := range suggestions {
			fmt.Fprintf(cmd.ErrWriter, "  %s\n", s)
		}
	}
}

const maxSuggestionDistance = 3

func closestCommands(cmd *cli.Command, name string) []string {
	type scored struct {
		name     string
		distance int
	}
	var candidates []scored
	for _, sub := range cmd.Commands {
		d := levenshtein.ComputeDistance(name, sub.Name)
		if d <= maxSuggestionDistance {
			candidates = append(candidates, scored{sub.Name, d})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].name < candidates[j].name
	})

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.name)
	}
	return names
}

// newRegistry opens an API session from config and wraps it in the service
// registry. Every subcommand that talks to the API goes through here.
func newRegistry(cmd *cli.Command) (*services.Registry, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []session.Option{
		session.WithDebug(cmd.Bool("debug")),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, session.WithTimeout(secondsToDuration(cfg.Timeout)))
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, session.WithRateLimit(rate.Limit(cfg.RateLimit), cfg.Burst))
	}
	if cfg.Token != "" {
		opts = append(opts, session.WithBearerToken(cfg.Token))
	}

	sess := session.New(cfg.Endpoint, cfg.Username, cfg.APIKey, opts...)
	return services.NewRegistry(sess), nil
}
