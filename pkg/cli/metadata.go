package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/slkit/slkit/pkg/metadata"
)

var metadataProperties = []string{
	"backend_ip",
	"backend_mac",
	"datacenter",
	"datacenter_id",
	"fqdn",
	"frontend_mac",
	"id",
	"ip",
	"network",
	"provision_state",
	"tags",
	"user_data",
}

func metadataCmd() *cli.Command {
	return &cli.Command{
		Name:      "metadata",
		Usage:     "Find details about this machine",
		ArgsUsage: "<" + strings.Join(metadataProperties, "|") + ">",
		Description: `Queries the backend metadata service for details about the machine
making the call. Only works from devices on the backend network; newly
provisioned resources can use this for self-discovery.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			prop := cmd.Args().First()
			if prop == "" {
				return fmt.Errorf("missing property argument, one of: %s",
					strings.Join(metadataProperties, ", "))
			}

			mgr := metadata.New()
			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer closeWriter(w)

			if prop == "network" {
				public, err := mgr.PublicNetwork(ctx)
				if err != nil {
					return err
				}
				private, err := mgr.PrivateNetwork(ctx)
				if err != nil {
					return err
				}
				return w.Serialize(ctx, struct {
					Public  *metadata.Network `json:"public"`
					Private *metadata.Network `json:"private"`
				}{public, private})
			}

			value, err := mgr.Property(ctx, prop)
			if err != nil {
				return err
			}
			return w.Serialize(ctx, value)
		},
	}
}
