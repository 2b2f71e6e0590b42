package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/slkit/slkit/pkg/datatypes"
	"github.com/slkit/slkit/pkg/storage"
)

func blockCmd() *cli.Command {
	return &cli.Command{
		Name:                  "block",
		EnableShellCompletion: true,
		Usage:                 "Manage block storage volumes",
		Commands: []*cli.Command{
			blockDetailCmd(),
			blockSnapshotCreateCmd(),
			blockSnapshotCancelCmd(),
			blockRefreshCmd(),
		},
	}
}

func blockDetailCmd() *cli.Command {
	return &cli.Command{
		Name:      "detail",
		Usage:     "Show details of a block volume",
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

			volume, err := storage.New(reg).VolumeDetails(ctx, volumeID)
			if err != nil {
				return err
			}

			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer closeWriter(w)
			return w.Serialize(ctx, volume)
		},
	}
}

func blockSnapshotCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "snapshot-create",
		Usage:     "Take a snapshot of a block volume",
		ArgsUsage: "<volume-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "note",
				Aliases: []string{"n"},
				Usage:   "Note attached to the snapshot",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			volumeID, err := parseID(cmd, 0, "volume id")
			if err != nil {
				return err
			}
			reg, err := newRegistry(cmd)
			if err != nil {
				return err
			}

			snapshot, err := storage.New(reg).CreateSnapshot(ctx, volumeID, cmd.String("note"))
			if err != nil {
				return err
			}
			slog.Info("snapshot created",
				"volume", volumeID,
				"snapshot", datatypes.IntValue(snapshot.ID),
			)

			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer closeWriter(w)
			return w.Serialize(ctx, snapshot)
		},
	}
}

func blockSnapshotCancelCmd() *cli.Command {
	return &cli.Command{
		Name:      "snapshot-cancel",
		Usage:     "Cancel the snapshot space of a block volume",
		ArgsUsage: "<volume-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "reason",
				Value: "No longer needed",
				Usage: "Cancellation reason",
			},
			&cli.BoolFlag{
				Name:  "immediate",
				Usage: "Cancel immediately instead of on the anniversary date",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			volumeID, err := parseID(cmd, 0, "volume id")
			if err != nil {
				return err
			}
			reg, err := newRegistry(cmd)
			if err != nil {
				return err
			}

			ok, err := storage.New(reg).CancelSnapshotSpace(ctx, volumeID,
				cmd.String("reason"), cmd.Bool("immediate"))
			if err != nil {
				return err
			}
			slog.Info("snapshot space cancelled", "volume", volumeID, "immediate", cmd.Bool("immediate"))

			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer closeWriter(w)
			return w.Serialize(ctx, map[string]bool{"cancelled": ok})
		},
	}
}

func blockRefreshCmd() *cli.Command {
	return &cli.Command{
		Name:      "refresh",
		Usage:     "Refresh a duplicate volume from a parent snapshot",
		ArgsUsage: "<volume-id> <snapshot-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force-refresh",
				Usage: "Cancel any in-progress refresh before starting this one",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			volumeID, err := parseID(cmd, 0, "volume id")
			if err != nil {
				return err
			}
			snapshotID, err := parseID(cmd, 1, "snapshot id")
			if err != nil {
				return err
			}
			reg, err := newRegistry(cmd)
			if err != nil {
				return err
			}

			if err := storage.New(reg).RefreshDuplicate(ctx, volumeID, snapshotID,
				cmd.Bool("force-refresh")); err != nil {
				return err
			}
			slog.Info("refresh started", "volume", volumeID, "snapshot", snapshotID)
			return nil
		},
	}
}
