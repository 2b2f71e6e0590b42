package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/slkit/slkit/pkg/account"
)

func accountCmd() *cli.Command {
	return &cli.Command{
		Name:                  "account",
		EnableShellCompletion: true,
		Usage:                 "Inspect account-level resources",
		Commands: []*cli.Command{
			accountBandwidthPoolsDetailCmd(),
		},
	}
}

func accountBandwidthPoolsDetailCmd() *cli.Command {
	return &cli.Command{
		Name:      "bandwidth-pools-detail",
		Usage:     "Show a bandwidth pool and its member devices",
		ArgsUsage: "<pool-id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			poolID, err := parseID(cmd, 0, "pool id")
			if err != nil {
				return err
			}
			reg, err := newRegistry(cmd)
			if err != nil {
				return err
			}

			pool, err := account.New(reg).BandwidthPoolDetail(ctx, poolID)
			if err != nil {
				return err
			}

			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer closeWriter(w)
			return w.Serialize(ctx, pool)
		},
	}
}
