// Package metadata implements self-discovery against the backend metadata
// service. The service is unauthenticated and only reachable from devices
// on the backend network; off-network calls fail at the transport.
package metadata

import (
	"context"

	"github.com/slkit/slkit/pkg/errors"
	"github.com/slkit/slkit/pkg/session"
)

const serviceName = "SoftLayer_Resource_Metadata"

// Network is the composite view of one network side of the calling device.
type Network struct {
	MACAddresses []string `json:"mac_addresses"`
	Router       string   `json:"router"`
	Vlans        []int    `json:"vlans"`
	VlanIDs      []int    `json:"vlan_ids"`
}

// Manager queries the metadata service.
type Manager struct {
	sess *session.Session
}

// New returns a Manager against the backend metadata endpoint. No
// credentials are needed.
func New(opts ...session.Option) *Manager {
	return &Manager{sess: session.New(session.PrivateEndpoint, "", "", opts...)}
}

// NewWithSession returns a Manager over an explicit session.
func NewWithSession(sess *session.Session) *Manager {
	return &Manager{sess: sess}
}

func (m *Manager) call(ctx context.Context, method string, result any, args ...any) error {
	return m.sess.Do(ctx, session.Request{
		Service: serviceName,
		Method:  method,
		Args:    args,
	}, result)
}

// ID returns the calling device's id.
func (m *Manager) ID(ctx context.Context) (int, error) {
	var id int
	err := m.call(ctx, "getId", &id)
	return id, err
}

// FQDN returns the calling device's fully qualified domain name.
func (m *Manager) FQDN(ctx context.Context) (string, error) {
	var fqdn string
	err := m.call(ctx, "getFullyQualifiedDomainName", &fqdn)
	return fqdn, err
}

// PrimaryIP returns the public IP address.
func (m *Manager) PrimaryIP(ctx context.Context) (string, error) {
	var ip string
	err := m.call(ctx, "getPrimaryIpAddress", &ip)
	return ip, err
}

// PrimaryBackendIP returns the backend (private) IP address.
func (m *Manager) PrimaryBackendIP(ctx context.Context) (string, error) {
	var ip string
	err := m.call(ctx, "getPrimaryBackendIpAddress", &ip)
	return ip, err
}

// Datacenter returns the datacenter short name.
func (m *Manager) Datacenter(ctx context.Context) (string, error) {
	var dc string
	err := m.call(ctx, "getDatacenter", &dc)
	return dc, err
}

// DatacenterID returns the datacenter id.
func (m *Manager) DatacenterID(ctx context.Context) (int, error) {
	var id int
	err := m.call(ctx, "getDatacenterId", &id)
	return id, err
}

// ProvisionState returns the provisioning state of the device.
func (m *Manager) ProvisionState(ctx context.Context) (string, error) {
	var state string
	err := m.call(ctx, "getProvisionState", &state)
	return state, err
}

// UserData returns the user-supplied metadata blob.
func (m *Manager) UserData(ctx context.Context) (string, error) {
	var data string
	err := m.call(ctx, "getUserMetadata", &data)
	return data, err
}

// Tags returns the device's tags.
func (m *Manager) Tags(ctx context.Context) ([]string, error) {
	var tags []string
	err := m.call(ctx, "getTags", &tags)
	return tags, err
}

// FrontendMACs returns the public-side MAC addresses.
func (m *Manager) FrontendMACs(ctx context.Context) ([]string, error) {
	var macs []string
	err := m.call(ctx, "getFrontendMacAddresses", &macs)
	return macs, err
}

// BackendMACs returns the private-side MAC addresses.
func (m *Manager) BackendMACs(ctx context.Context) ([]string, error) {
	var macs []string
	err := m.call(ctx, "getBackendMacAddresses", &macs)
	return macs, err
}

// Router returns the hostname of the router in front of the given MAC.
func (m *Manager) Router(ctx context.Context, mac string) (string, error) {
	var router string
	err := m.call(ctx, "getRouter", &router, mac)
	return router, err
}

// Vlans returns the VLAN numbers attached to the given MAC.
func (m *Manager) Vlans(ctx context.Context, mac string) ([]int, error) {
	var vlans []int
	err := m.call(ctx, "getVlans", &vlans, mac)
	return vlans, err
}

// VlanIDs returns the VLAN ids attached to the given MAC.
func (m *Manager) VlanIDs(ctx context.Context, mac string) ([]int, error) {
	var ids []int
	err := m.call(ctx, "getVlanIds", &ids, mac)
	return ids, err
}

// PublicNetwork builds the composite view of the public side.
func (m *Manager) PublicNetwork(ctx context.Context) (*Network, error) {
	return m.network(ctx, m.FrontendMACs)
}

// PrivateNetwork builds the composite view of the backend side.
func (m *Manager) PrivateNetwork(ctx context.Context) (*Network, error) {
	return m.network(ctx, m.BackendMACs)
}

func (m *Manager) network(ctx context.Context, macs func(context.Context) ([]string, error)) (*Network, error) {
	addrs, err := macs(ctx)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no mac addresses reported for this device")
	}

	// Router and VLAN details hang off the first MAC; additional MACs on
	// the same side share them.
	net := &Network{MACAddresses: addrs}
	if net.Router, err = m.Router(ctx, addrs[0]); err != nil {
		return nil, err
	}
	if net.Vlans, err = m.Vlans(ctx, addrs[0]); err != nil {
		return nil, err
	}
	if net.VlanIDs, err = m.VlanIDs(ctx, addrs[0]); err != nil {
		return nil, err
	}
	return net, nil
}

// Property resolves a CLI property name to its value. "ip" and
// "backend_ip" are aliases kept for muscle memory.
func (m *Manager) Property(ctx context.Context, name string) (any, error) {
	switch name {
	case "id":
		return m.ID(ctx)
	case "fqdn":
		return m.FQDN(ctx)
	case "ip", "primary_ip":
		return m.PrimaryIP(ctx)
	case "backend_ip", "primary_backend_ip":
		return m.PrimaryBackendIP(ctx)
	case "datacenter":
		return m.Datacenter(ctx)
	case "datacenter_id":
		return m.DatacenterID(ctx)
	case "provision_state":
		return m.ProvisionState(ctx)
	case "user_data":
		return m.UserData(ctx)
	case "tags":
		return m.Tags(ctx)
	case "frontend_mac":
		return m.FrontendMACs(ctx)
	case "backend_mac":
		return m.BackendMACs(ctx)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidInput, "unknown metadata property %q", name)
	}
}
