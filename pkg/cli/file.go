package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/slkit/slkit/pkg/storage"
)

func fileCmd() *cli.Command {
	return &cli.Command{
		Name:                  "file",
		EnableShellCompletion: true,
		Usage:                 "Manage file storage volumes",
		Commands: []*cli.Command{
			fileReplicaFailbackCmd(),
		},
	}
}

func fileReplicaFailbackCmd() *cli.Command {
	return &cli.Command{
		Name:      "replica-failback",
		Usage:     "Fail back a file volume from its replicant",
		ArgsUsage: "<volume-id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			volumeID, err := parseID(cmd, 0, "volume id")
			if err != nil {
				return err
			}
			reg, err := newRegistry(cmd)
			if err != nil {
				return err
			}

			ok, err := storage.New(reg).FailbackFromReplicant(ctx, volumeID)
			if err != nil {
				return err
			}
			slog.Info("failback initiated", "volume", volumeID, "accepted", ok)

			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer closeWriter(w)
			return w.Serialize(ctx, map[string]bool{"failback": ok})
		},
	}
}
