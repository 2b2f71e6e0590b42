package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/slkit/slkit/pkg/datatypes"
	"github.com/slkit/slkit/pkg/image"
)

func imageCmd() *cli.Command {
	return &cli.Command{
		Name:                  "image",
		EnableShellCompletion: true,
		Usage:                 "Manage disk image templates",
		Commands: []*cli.Command{
			imageListCmd(),
		},
	}
}

func imageListCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List image templates",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "Filter by name (wildcards allowed, e.g. 'ubuntu*')",
			},
			&cli.BoolFlag{
				Name:  "public",
				Usage: "List only public images",
			},
			&cli.BoolFlag{
				Name:  "private",
				Usage: "List only the account's private images",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			publicOnly := cmd.Bool("public")
			privateOnly := cmd.Bool("private")
			if publicOnly && privateOnly {
				return fmt.Errorf("--public and --private are mutually exclusive")
			}

			reg, err := newRegistry(cmd)
			if err != nil {
				return err
			}
			mgr := image.New(reg)
			name := cmd.String("name")

			var images []datatypes.BlockDeviceTemplateGroup
			if !publicOnly {
				private, err := mgr.ListPrivate(ctx, name)
				if err != nil {
					return err
				}
				images = append(images, topLevelImages(private)...)
			}
			if !privateOnly {
				public, err := mgr.ListPublic(ctx, name)
				if err != nil {
					return err
				}
				images = append(images, topLevelImages(public)...)
			}

			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer closeWriter(w)
			return w.Serialize(ctx, images)
		},
	}
}

// topLevelImages drops child templates; only parent groups are shown.
func topLevelImages(images []datatypes.BlockDeviceTemplateGroup) []datatypes.BlockDeviceTemplateGroup {
	out := make([]datatypes.BlockDeviceTemplateGroup, 0, len(images))
	for _, img := range images {
		if img.ParentID == nil {
			out = append(out, img)
		}
	}
	return out
}
