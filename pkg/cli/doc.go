// Package cli implements the slkit command-line interface.
//
// # Commands
//
// firewall - Manage hardware firewalls:
//
//	slkit firewall list
//	slkit firewall detail vlan:1234
//	slkit firewall add 4567 --firewall-type vs
//	slkit firewall cancel server:6327
//	slkit firewall edit vlan:1234 --rules-file rules.yaml
//	slkit firewall monitor vlan:1234 --start 2026-07-01 --end 2026-08-01
//
// Firewalls are addressed by typed identifiers as shown in list output:
// vlan:<id> for dedicated firewalls, vs:<id> and server:<id> for standard
// ones.
//
// block / file - Manage storage volumes:
//
//	slkit block detail 12345
//	slkit block snapshot-create 12345 --note "pre-upgrade"
//	slkit block snapshot-cancel 12345 --immediate
//	slkit block refresh 12345 67890
//	slkit file replica-failback 12345
//
// image / account / metadata:
//
//	slkit image list --name 'ubuntu*' --private
//	slkit account bandwidth-pools-detail 309961
//	slkit metadata ip
//
// # Global Flags
//
//	--config, -c   Config file path (default: $SLKIT_CONFIG or ~/.slkit/config.yaml)
//	--format, -t   Output format: json, yaml, table (default: table)
//	--output, -o   Output file path (default: stdout)
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//
// # Configuration
//
// Credentials come from the config file or the SL_USERNAME / SL_API_KEY /
// SL_ENDPOINT environment variables. Environment variables win.
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/slkit/slkit/pkg/version.Version=1.0.0'"
package cli
