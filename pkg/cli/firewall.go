package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/slkit/slkit/pkg/datatypes"
	"github.com/slkit/slkit/pkg/firewall"
)

func firewallCmd() *cli.Command {
	return &cli.Command{
		Name:                  "firewall",
		Aliases:               []string{"fw"},
		EnableShellCompletion: true,
		Usage:                 "Manage hardware firewalls",
		Commands: []*cli.Command{
			firewallListCmd(),
			firewallDetailCmd(),
			firewallAddCmd(),
			firewallCancelCmd(),
			firewallEditCmd(),
			firewallMonitorCmd(),
		},
	}
}

// firewallRow is one line of list output. The ID column carries the typed
// identifier the other subcommands accept.
type firewallRow struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Features string `json:"features,omitempty"`
	Vlan     int    `json:"vlan,omitempty"`
}

// gatewallRow is one gateway firewall in list output.
type gatewallRow struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Datacenter string `json:"datacenter,omitempty"`
	PublicIP   string `json:"publicIp,omitempty"`
}

func firewallListCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List firewalls and gateway firewalls on the account",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg, err := newRegistry(cmd)
			if err != nil {
				return err
			}
			mgr := firewall.New(reg)

			var vlans []datatypes.Vlan
			var gateways []datatypes.NetworkGateway

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				vlans, err = mgr.Firewalls(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				gateways, err = mgr.Gatewalls(gctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			result := struct {
				Firewalls []firewallRow `json:"firewalls"`
				Gatewalls []gatewallRow `json:"gatewalls"`
			}{
				Firewalls: firewallRows(vlans),
				Gatewalls: gatewallRows(gateways),
			}

			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer closeWriter(w)
			return w.Serialize(ctx, result)
		},
	}
}

func firewallRows(vlans []datatypes.Vlan) []firewallRow {
	rows := make([]firewallRow, 0, len(vlans))
	for _, vlan := range vlans {
		vlanNumber := datatypes.IntValue(vlan.VlanNumber)

		if datatypes.IntValue(vlan.DedicatedFirewallFlag) != 0 && vlan.NetworkVlanFirewall != nil {
			features := ""
			if datatypes.BoolValue(vlan.HighAvailabilityFirewallFlag) {
				features = "HA"
			}
			rows = append(rows, firewallRow{
				ID:       fmt.Sprintf("vlan:%d", datatypes.IntValue(vlan.NetworkVlanFirewall.ID)),
				Type:     "VLAN - dedicated",
				Features: features,
				Vlan:     vlanNumber,
			})
		}
		for _, component := range vlan.FirewallGuestNetworkComponents {
			rows = append(rows, firewallRow{
				ID:   fmt.Sprintf("vs:%d", datatypes.IntValue(component.ID)),
				Type: "Virtual server - standard",
				Vlan: vlanNumber,
			})
		}
		for _, component := range vlan.FirewallNetworkComponents {
			rows = append(rows, firewallRow{
				ID:   fmt.Sprintf("server:%d", datatypes.IntValue(component.ID)),
				Type: "Hardware server - standard",
				Vlan: vlanNumber,
			})
		}
	}
	return rows
}

func gatewallRows(gateways []datatypes.NetworkGateway) []gatewallRow {
	rows := make([]gatewallRow, 0, len(gateways))
	for _, gw := range gateways {
		row := gatewallRow{
			ID:   datatypes.IntValue(gw.ID),
			Name: datatypes.StringValue(gw.Name),
			Type: "Gateway",
		}
		if gw.NetworkFirewall != nil {
			row.Type = datatypes.StringValue(gw.NetworkFirewall.FirewallType)
			if gw.NetworkFirewall.Datacenter != nil {
				row.Datacenter = datatypes.StringValue(gw.NetworkFirewall.Datacenter.Name)
			}
		}
		if gw.PublicIPAddress != nil {
			row.PublicIP = datatypes.StringValue(gw.PublicIPAddress.IPAddress)
		}
		rows = append(rows, row)
	}
	return rows
}

func firewallDetailCmd() *cli.Command {
	return &cli.Command{
		Name:      "detail",
		Usage:     "Show a firewall and its rules",
		ArgsUsage: "<type>:<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ident, err := parseFirewallIdentifier(cmd.Args().First())
			if err != nil {
				return err
			}
			reg, err := newRegistry(cmd)
			if err != nil {
				return err
			}
			mgr := firewall.New(reg)

			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer closeWriter(w)

			if !ident.dedicated {
				rules, err := mgr.StandardRules(ctx, ident.id)
				if err != nil {
					return err
				}
				return w.Serialize(ctx, rules)
			}

			// Instance and rules are independent reads.
			var instance *datatypes.VlanFirewall
			var rules []datatypes.FirewallRule

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				instance, err = mgr.Instance(gctx, ident.id, "")
				return err
			})
			g.Go(func() error {
				var err error
				rules, err = mgr.DedicatedRules(gctx, ident.id)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			return w.Serialize(ctx, struct {
				Firewall *datatypes.VlanFirewall  `json:"firewall"`
				Rules    []datatypes.FirewallRule `json:"rules"`
			}{instance, rules})
		},
	}
}

func firewallAddCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Order a firewall for a server or VLAN",
		ArgsUsage: "<target-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "firewall-type",
				Required: true,
				Usage:    "Firewall type: vlan (dedicated), vs (virtual server), or server (hardware)",
			},
			&cli.BoolFlag{
				Name:  "ha",
				Usage: "Order the high-availability variant (dedicated firewalls only)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			targetID, err := parseID(cmd, 0, "target id")
			if err != nil {
				return err
			}
			fwType := cmd.String("firewall-type")
			haEnabled := cmd.Bool("ha")
			if haEnabled && fwType != "vlan" {
				return fmt.Errorf("--ha is only valid with --firewall-type vlan")
			}

			reg, err := newRegistry(cmd)
			if err != nil {
				return err
			}
			mgr := firewall.New(reg)

			var receipt *datatypes.OrderReceipt
			switch fwType {
			case "vlan":
				receipt, err = mgr.AddVlanFirewall(ctx, targetID, haEnabled)
			case "vs":
				receipt, err = mgr.AddStandardFirewall(ctx, targetID, true)
			case "server":
				receipt, err = mgr.AddStandardFirewall(ctx, targetID, false)
			default:
				return fmt.Errorf("unknown firewall type %q: expected vlan, vs, or server", fwType)
			}
			if err != nil {
				return err
			}

			slog.Info("firewall ordered",
				"type", fwType,
				"target", targetID,
				"order_id", datatypes.IntValue(receipt.OrderID),
			)

			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer closeWriter(w)
			return w.Serialize(ctx, receipt)
		},
	}
}

func firewallCancelCmd() *cli.Command {
	return &cli.Command{
		Name:      "cancel",
		Usage:     "Cancel a firewall via its billing item",
		ArgsUsage: "<type>:<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ident, err := parseFirewallIdentifier(cmd.Args().First())
			if err != nil {
				return err
			}
			reg, err := newRegistry(cmd)
			if err != nil {
				return err
			}

			ok, err := firewall.New(reg).CancelFirewall(ctx, ident.id, ident.dedicated)
			if err != nil {
				return err
			}

			slog.Info("firewall cancelled", "id", ident.id, "dedicated", ident.dedicated)
			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer closeWriter(w)
			return w.Serialize(ctx, map[string]bool{"cancelled": ok})
		},
	}
}

func firewallEditCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Replace the rule set of a firewall from a file",
		ArgsUsage: "<type>:<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "rules-file",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "Path to a YAML or JSON file holding the full replacement rule list",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ident, err := parseFirewallIdentifier(cmd.Args().First())
			if err != nil {
				return err
			}
			rules, err := loadRules(cmd.String("rules-file"))
			if err != nil {
				return err
			}

			reg, err := newRegistry(cmd)
			if err != nil {
				return err
			}
			mgr := firewall.New(reg)

			var request *datatypes.FirewallUpdateRequest
			if ident.dedicated {
				request, err = mgr.EditDedicatedRules(ctx, ident.id, rules)
			} else {
				request, err = mgr.EditStandardRules(ctx, ident.id, rules)
			}
			if err != nil {
				return err
			}

			slog.Info("rule update submitted",
				"firewall", ident.id,
				"rules", len(rules),
				"request_id", datatypes.IntValue(request.ID),
			)

			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer closeWriter(w)
			return w.Serialize(ctx, request)
		},
	}
}

const monitorDateLayout = "2006-01-02"

func firewallMonitorCmd() *cli.Command {
	return &cli.Command{
		Name:      "monitor",
		Usage:     "Show public bandwidth totals for a dedicated firewall",
		ArgsUsage: "vlan:<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "start",
				Usage: "Start date (YYYY-MM-DD, default: 30 days ago)",
			},
			&cli.StringFlag{
				Name:  "end",
				Usage: "End date (YYYY-MM-DD, default: today)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ident, err := parseFirewallIdentifier(cmd.Args().First())
			if err != nil {
				return err
			}
			if !ident.dedicated {
				return fmt.Errorf("monitoring is only available for dedicated (vlan:) firewalls")
			}

			start, end, err := parseMonitorRange(cmd.String("start"), cmd.String("end"))
			if err != nil {
				return err
			}

			reg, err := newRegistry(cmd)
			if err != nil {
				return err
			}
			mgr := firewall.New(reg)

			instance, err := mgr.Instance(ctx, ident.id, "")
			if err != nil {
				return err
			}
			if instance.MetricTrackingObject == nil {
				return fmt.Errorf("firewall %d has no metric tracking object", ident.id)
			}

			data, err := mgr.Summary(ctx,
				datatypes.IntValue(instance.MetricTrackingObject.ID), start, end)
			if err != nil {
				return err
			}

			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer closeWriter(w)
			return w.Serialize(ctx, data)
		},
	}
}

func parseMonitorRange(startStr, endStr string) (time.Time, time.Time, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	var err error

	if startStr != "" {
		if start, err = time.Parse(monitorDateLayout, startStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start date %q: expected YYYY-MM-DD", startStr)
		}
	}
	if endStr != "" {
		if end, err = time.Parse(monitorDateLayout, endStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end date %q: expected YYYY-MM-DD", endStr)
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--end date is before --start date")
	}
	return start, end, nil
}
