package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/slkit/slkit/pkg/datatypes"
	"github.com/slkit/slkit/pkg/serializer"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: yaml, json, table", outFormat)
	}
	return outFormat, nil
}

// newWriter builds the output writer from the global format/output flags.
// The caller closes it when it implements serializer.Closer.
func newWriter(cmd *cli.Command) (serializer.Writer, error) {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return nil, err
	}
	return serializer.NewFileWriterOrStdout(format, cmd.String("output"))
}

func closeWriter(w serializer.Writer) {
	if closer, ok := w.(serializer.Closer); ok {
		_ = closer.Close()
	}
}

// parseID parses a positional numeric identifier.
func parseID(cmd *cli.Command, position int, what string) (int, error) {
	raw := cmd.Args().Get(position)
	if raw == "" {
		return 0, fmt.Errorf("missing %s argument", what)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: expected a number", what, raw)
	}
	return id, nil
}

// firewallIdentifier is a typed firewall reference as shown in list output,
// e.g. "vlan:1234" for dedicated firewalls and "server:1234" or "vs:1234"
// for standard ones.
type firewallIdentifier struct {
	dedicated bool
	id        int
}

func parseFirewallIdentifier(raw string) (firewallIdentifier, error) {
	kind, idStr, ok := strings.Cut(raw, ":")
	if !ok {
		return firewallIdentifier{}, fmt.Errorf(
			"invalid firewall identifier %q: expected <type>:<id>, e.g. vlan:1234 or server:1234", raw)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return firewallIdentifier{}, fmt.Errorf("invalid firewall id %q: expected a number", idStr)
	}

	switch kind {
	case "vlan":
		return firewallIdentifier{dedicated: true, id: id}, nil
	case "vs", "cci", "server":
		return firewallIdentifier{dedicated: false, id: id}, nil
	default:
		return firewallIdentifier{}, fmt.Errorf(
			"unknown firewall type %q: expected vlan, vs, or server", kind)
	}
}

// loadRules reads a replacement rule set from a YAML or JSON file. The rule
// type carries the API's camelCase JSON tags, so YAML input is decoded
// generically and re-decoded through JSON to honor them.
func loadRules(path string) ([]datatypes.FirewallRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	encoded, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	var rules []datatypes.FirewallRule
	if err := json.Unmarshal(encoded, &rules); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}
	return rules, nil
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
