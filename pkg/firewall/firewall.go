// Package firewall manages hardware firewalls: package selection, port-speed
// sizing, ordering, cancellation, and rule maintenance for both standard
// (per-server) and dedicated (per-VLAN) firewalls.
//
// Every method is a single round trip (or a short fixed sequence) against
// the remote API; nothing is cached locally. Reads are idempotent; order,
// cancel, and rule-update calls are not and must not be blindly retried.
package firewall

import (
	"context"
	"fmt"
	"time"

	"github.com/slkit/slkit/pkg/datatypes"
	"github.com/slkit/slkit/pkg/errors"
	"github.com/slkit/slkit/pkg/filter"
	"github.com/slkit/slkit/pkg/services"
	"github.com/slkit/slkit/pkg/session"
)

// RuleMask selects the rule fields shown and edited by the CLI.
const RuleMask = "mask[orderValue,action,destinationIpAddress," +
	"destinationIpSubnetMask,protocol,destinationPortRangeStart," +
	"destinationPortRangeEnd,sourceIpAddress,sourceIpSubnetMask," +
	"version,notes]"

const (
	billingMask = "mask[id,billingItem[id]]"

	vlanListMask = "firewallNetworkComponents," +
		"networkVlanFirewall," +
		"dedicatedFirewallFlag," +
		"firewallGuestNetworkComponents," +
		"firewallInterfaces," +
		"firewallRules," +
		"highAvailabilityFirewallFlag"

	aclContextMask = "mask[networkVlan[firewallInterfaces" +
		"[firewallContextAccessControlLists]]]"

	instanceDefaultMask = "mask[firewallType,datacenter,managementCredentials,networkVlan," +
		"metricTrackingObject[data,type],networkGateway[insideVlans,members,privateIpAddress," +
		"publicIpAddress,publicIpv6Address,privateVlan,publicVlan,status]]"

	gatewallMask = "mask[id,networkSpace,name," +
		"networkFirewall[id,firewallType,datacenter[name]]," +
		"status[keyName]," +
		"insideVlans[id]," +
		"privateIpAddress[ipAddress]," +
		"publicVlan[id,primaryRouter[hostname]]," +
		"publicIpAddress[ipAddress],members[id,hardware[hostname]]]"
)

// Firewall items always live in package 0 of the catalog.
const firewallPackageID = 0

// summaryPeriod is the metric granularity in seconds: daily buckets,
// regardless of the requested date span.
const summaryPeriod = 86400

// HasFirewall reports whether the VLAN has an active firewall of any kind.
// Any of the five indicator fields being truthy or non-empty is sufficient.
func HasFirewall(vlan datatypes.Vlan) bool {
	return datatypes.IntValue(vlan.DedicatedFirewallFlag) != 0 ||
		datatypes.BoolValue(vlan.HighAvailabilityFirewallFlag) ||
		len(vlan.FirewallInterfaces) > 0 ||
		len(vlan.FirewallNetworkComponents) > 0 ||
		len(vlan.FirewallGuestNetworkComponents) > 0
}

// AccountService lists account-scoped network resources.
type AccountService interface {
	GetNetworkVlans(ctx context.Context, mask string) ([]datatypes.Vlan, error)
	GetNetworkGateways(ctx context.Context, mask string, f filter.Filter) ([]datatypes.NetworkGateway, error)
}

// PackageService queries the product catalog.
type PackageService interface {
	GetItems(ctx context.Context, packageID int, f filter.Filter) ([]datatypes.ProductItem, error)
}

// OrderService places product orders.
type OrderService interface {
	PlaceOrder(ctx context.Context, order any) (*datatypes.OrderReceipt, error)
}

// BillingService cancels billing items.
type BillingService interface {
	CancelService(ctx context.Context, id int) (bool, error)
}

// GuestService fetches virtual servers.
type GuestService interface {
	GetObject(ctx context.Context, id int, mask string) (*datatypes.VirtualGuest, error)
}

// HardwareService fetches bare-metal server NICs.
type HardwareService interface {
	GetFrontendNetworkComponents(ctx context.Context, id int, mask string) ([]datatypes.NetworkComponent, error)
}

// VlanFirewallService fetches dedicated firewalls.
type VlanFirewallService interface {
	GetObject(ctx context.Context, id int, mask string) (*datatypes.VlanFirewall, error)
	GetRules(ctx context.Context, id int, mask string) ([]datatypes.FirewallRule, error)
}

// ComponentFirewallService fetches standard firewalls.
type ComponentFirewallService interface {
	GetObject(ctx context.Context, id int, mask string) (*datatypes.ComponentFirewall, error)
	GetRules(ctx context.Context, id int, mask string) ([]datatypes.FirewallRule, error)
}

// UpdateRequestService submits rule-update templates.
type UpdateRequestService interface {
	CreateObject(ctx context.Context, template datatypes.FirewallUpdateRequest) (*datatypes.FirewallUpdateRequest, error)
}

// MetricService fetches summarized bandwidth metrics.
type MetricService interface {
	GetSummaryData(ctx context.Context, id int, start, end string, types []datatypes.MetricSummaryType, period int) ([]datatypes.MetricData, error)
}

// Dependencies are the per-service handles a Manager consumes. Each is
// resolved once at construction.
type Dependencies struct {
	Account            AccountService
	Packages           PackageService
	Orders             OrderService
	Billing            BillingService
	Guests             GuestService
	Hardware           HardwareService
	VlanFirewalls      VlanFirewallService
	ComponentFirewalls ComponentFirewallService
	UpdateRequests     UpdateRequestService
	Metrics            MetricService
}

// Manager computes firewall package selection, port-speed sizing, and rule
// CRUD against the remote services.
type Manager struct {
	deps Dependencies
}

// New returns a Manager wired to the registry's service handles.
func New(reg *services.Registry) *Manager {
	return NewWithDependencies(Dependencies{
		Account:            reg.Account,
		Packages:           reg.ProductPackages,
		Orders:             reg.ProductOrders,
		Billing:            reg.BillingItems,
		Guests:             reg.VirtualGuests,
		Hardware:           reg.HardwareServers,
		VlanFirewalls:      reg.VlanFirewalls,
		ComponentFirewalls: reg.ComponentFirewalls,
		UpdateRequests:     reg.FirewallUpdateRequests,
		Metrics:            reg.MetricTracking,
	})
}

// NewWithDependencies returns a Manager over explicit service handles.
func NewWithDependencies(deps Dependencies) *Manager {
	return &Manager{deps: deps}
}

// StandardPackage finds the catalog item for a standard firewall sized to
// the server's port speed. The description match is exact; a catalog text
// change breaks it, so the returned slice may be empty and callers must
// check.
func (m *Manager) StandardPackage(ctx context.Context, serverID int, isVirtual bool) ([]datatypes.ProductItem, error) {
	speed, err := m.portSpeed(ctx, serverID, isVirtual)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("%dMbps Hardware Firewall", speed)
	f := filter.New().Set("items.description", filter.Query(description))
	return m.deps.Packages.GetItems(ctx, firewallPackageID, f)
}

// DedicatedPackage finds the catalog item for a dedicated (VLAN) firewall,
// in its high-availability variant when haEnabled is set.
func (m *Manager) DedicatedPackage(ctx context.Context, haEnabled bool) ([]datatypes.ProductItem, error) {
	description := "Hardware Firewall (Dedicated)"
	if haEnabled {
		description = "Hardware Firewall (High Availability)"
	}
	f := filter.New().Set("items.description", filter.Query(description))
	return m.deps.Packages.GetItems(ctx, firewallPackageID, f)
}

// portSpeed determines the firewall capacity in Mbps for the server.
//
// Virtual servers use the primary NIC's maxSpeed directly. Physical servers
// take the larger of: the biggest summed speed of any bonded NIC group, and
// the fastest ungrouped NIC. Capacity is bounded by the busiest interface or
// team, not the sum of everything, to avoid over-provisioning.
func (m *Manager) portSpeed(ctx context.Context, serverID int, isVirtual bool) (int, error) {
	if isVirtual {
		guest, err := m.deps.Guests.GetObject(ctx, serverID, "primaryNetworkComponent[maxSpeed]")
		if err != nil {
			return 0, err
		}
		if guest == nil || guest.PrimaryNetworkComponent == nil {
			return 0, errors.Newf(errors.ErrCodeNotFound,
				"unable to find primary network component for guest %d", serverID)
		}
		return datatypes.IntValue(guest.PrimaryNetworkComponent.MaxSpeed), nil
	}

	components, err := m.deps.Hardware.GetFrontendNetworkComponents(ctx, serverID,
		"id,maxSpeed,networkComponentGroup.networkComponents")
	if err != nil {
		return 0, err
	}

	maxGrouped := 0
	maxUngrouped := 0
	for _, component := range components {
		if component.NetworkComponentGroup == nil {
			if speed := datatypes.IntValue(component.MaxSpeed); speed > maxUngrouped {
				maxUngrouped = speed
			}
			continue
		}
		groupSpeed := 0
		for _, member := range component.NetworkComponentGroup.NetworkComponents {
			groupSpeed += datatypes.IntValue(member.MaxSpeed)
		}
		if groupSpeed > maxGrouped {
			maxGrouped = groupSpeed
		}
	}

	if maxGrouped > maxUngrouped {
		return maxGrouped, nil
	}
	return maxUngrouped, nil
}

// AddStandardFirewall orders a standard firewall for the given server.
func (m *Manager) AddStandardFirewall(ctx context.Context, serverID int, isVirtual bool) (*datatypes.OrderReceipt, error) {
	items, err := m.StandardPackage(ctx, serverID, isVirtual)
	if err != nil {
		return nil, err
	}
	priceID, err := firstPriceID(items)
	if err != nil {
		return nil, err
	}

	order := datatypes.FirewallOrder{
		ComplexType: datatypes.OrderTypeFirewall,
		Quantity:    1,
		PackageID:   firewallPackageID,
		Prices:      []datatypes.Reference{{ID: priceID}},
	}
	if isVirtual {
		order.VirtualGuests = []datatypes.Reference{{ID: serverID}}
	} else {
		order.Hardware = []datatypes.Reference{{ID: serverID}}
	}
	return m.deps.Orders.PlaceOrder(ctx, order)
}

// AddVlanFirewall orders a dedicated firewall for the given VLAN.
func (m *Manager) AddVlanFirewall(ctx context.Context, vlanID int, haEnabled bool) (*datatypes.OrderReceipt, error) {
	items, err := m.DedicatedPackage(ctx, haEnabled)
	if err != nil {
		return nil, err
	}
	priceID, err := firstPriceID(items)
	if err != nil {
		return nil, err
	}

	order := datatypes.FirewallOrder{
		ComplexType: datatypes.OrderTypeFirewallDedicated,
		Quantity:    1,
		PackageID:   firewallPackageID,
		VlanID:      datatypes.Int(vlanID),
		Prices:      []datatypes.Reference{{ID: priceID}},
	}
	return m.deps.Orders.PlaceOrder(ctx, order)
}

// firstPriceID applies the catalog's first-match-wins policy: the first
// price of the first matching item is the order line item.
func firstPriceID(items []datatypes.ProductItem) (int, error) {
	if len(items) == 0 {
		return 0, errors.New(errors.ErrCodeEmptySelection, "no firewall package matched the catalog query")
	}
	if len(items[0].Prices) == 0 {
		return 0, errors.New(errors.ErrCodeEmptySelection, "matched firewall package has no prices")
	}
	return datatypes.IntValue(items[0].Prices[0].ID), nil
}

// CancelFirewall cancels the firewall's backing service via its billing
// item. dedicated selects which service resolves the firewall object; the
// cancellation call itself is uniform.
func (m *Manager) CancelFirewall(ctx context.Context, firewallID int, dedicated bool) (bool, error) {
	billing, err := m.billingItem(ctx, firewallID, dedicated)
	if err != nil {
		return false, err
	}
	return m.deps.Billing.CancelService(ctx, datatypes.IntValue(billing.ID))
}

// billingItem resolves the billing item backing a firewall. The two failure
// kinds stay distinct: a missing firewall and an unbilled firewall are
// different problems.
func (m *Manager) billingItem(ctx context.Context, firewallID int, dedicated bool) (*datatypes.BillingItem, error) {
	var billing *datatypes.BillingItem

	if dedicated {
		fw, err := m.deps.VlanFirewalls.GetObject(ctx, firewallID, billingMask)
		if err != nil {
			if session.IsNotFound(err) {
				return nil, notFoundError(firewallID)
			}
			return nil, err
		}
		if fw == nil {
			return nil, notFoundError(firewallID)
		}
		billing = fw.BillingItem
	} else {
		fw, err := m.deps.ComponentFirewalls.GetObject(ctx, firewallID, billingMask)
		if err != nil {
			if session.IsNotFound(err) {
				return nil, notFoundError(firewallID)
			}
			return nil, err
		}
		if fw == nil {
			return nil, notFoundError(firewallID)
		}
		billing = fw.BillingItem
	}

	if billing == nil {
		return nil, errors.Newf(errors.ErrCodeBillingMissing,
			"unable to find billing item for firewall %d", firewallID)
	}
	return billing, nil
}

func notFoundError(firewallID int) error {
	return errors.Newf(errors.ErrCodeNotFound, "unable to find firewall %d", firewallID)
}

// Firewalls lists all firewalled VLANs on the account, preserving the
// remote response order.
func (m *Manager) Firewalls(ctx context.Context) ([]datatypes.Vlan, error) {
	vlans, err := m.deps.Account.GetNetworkVlans(ctx, vlanListMask)
	if err != nil {
		return nil, err
	}

	firewalled := make([]datatypes.Vlan, 0, len(vlans))
	for _, vlan := range vlans {
		if HasFirewall(vlan) {
			firewalled = append(firewalled, vlan)
		}
	}
	return firewalled, nil
}

// StandardRules lists the rules of a standard firewall.
func (m *Manager) StandardRules(ctx context.Context, firewallID int) ([]datatypes.FirewallRule, error) {
	return m.deps.ComponentFirewalls.GetRules(ctx, firewallID, RuleMask)
}

// DedicatedRules lists the rules of a dedicated firewall.
func (m *Manager) DedicatedRules(ctx context.Context, firewallID int) ([]datatypes.FirewallRule, error) {
	return m.deps.VlanFirewalls.GetRules(ctx, firewallID, RuleMask)
}

// EditDedicatedRules replaces the rule set of a dedicated firewall. The
// update attaches to an inbound ACL on one of the firewall's non-"inside"
// interfaces.
func (m *Manager) EditDedicatedRules(ctx context.Context, firewallID int, rules []datatypes.FirewallRule) (*datatypes.FirewallUpdateRequest, error) {
	fw, err := m.deps.VlanFirewalls.GetObject(ctx, firewallID, aclContextMask)
	if err != nil {
		return nil, err
	}
	if fw == nil || fw.NetworkVlan == nil {
		return nil, notFoundError(firewallID)
	}

	// The scan deliberately keeps going after a hit, so when several
	// inbound ACLs qualify the last one iterated wins. Whether the intended
	// business rule is last-match, first-match, or must-be-unique is an
	// open product question; the portal has always behaved this way.
	var aclID *int
	for _, iface := range fw.NetworkVlan.FirewallInterfaces {
		if datatypes.StringValue(iface.Name) == "inside" {
			continue
		}
		for _, acl := range iface.FirewallContextAccessControlLists {
			if datatypes.StringValue(acl.Direction) == "out" {
				continue
			}
			aclID = acl.ID
		}
	}
	if aclID == nil {
		return nil, errors.Newf(errors.ErrCodeNotFound,
			"unable to find an inbound access control list for firewall %d", firewallID)
	}

	return m.deps.UpdateRequests.CreateObject(ctx, datatypes.FirewallUpdateRequest{
		FirewallContextAccessControlListID: aclID,
		Rules:                              rules,
	})
}

// EditStandardRules replaces the rule set of a standard firewall. The
// template is keyed directly by the firewall component id; no context
// resolution is needed.
func (m *Manager) EditStandardRules(ctx context.Context, firewallID int, rules []datatypes.FirewallRule) (*datatypes.FirewallUpdateRequest, error) {
	return m.deps.UpdateRequests.CreateObject(ctx, datatypes.FirewallUpdateRequest{
		NetworkComponentFirewallID: datatypes.Int(firewallID),
		Rules:                      rules,
	})
}

// Instance fetches a dedicated firewall. An empty mask selects the default
// deep mask; a caller-supplied mask is used verbatim, not merged.
func (m *Manager) Instance(ctx context.Context, firewallID int, mask string) (*datatypes.VlanFirewall, error) {
	if mask == "" {
		mask = instanceDefaultMask
	}
	fw, err := m.deps.VlanFirewalls.GetObject(ctx, firewallID, mask)
	if err != nil {
		return nil, err
	}
	if fw == nil {
		return nil, notFoundError(firewallID)
	}
	return fw, nil
}

// Gatewalls lists the account's gateway firewalls: network gateways that
// have a firewall attached, filtered server-side.
func (m *Manager) Gatewalls(ctx context.Context) ([]datatypes.NetworkGateway, error) {
	f := filter.New().Set("networkGateways.networkFirewall", filter.NotNull())
	return m.deps.Account.GetNetworkGateways(ctx, gatewallMask, f)
}

// Summary fetches summed public in/out bandwidth for the firewall's metric
// tracking object over [start, end], always at daily granularity.
func (m *Manager) Summary(ctx context.Context, trackingID int, start, end time.Time) ([]datatypes.MetricData, error) {
	types := []datatypes.MetricSummaryType{
		{KeyName: "PUBLICIN", SummaryType: "sum"},
		{KeyName: "PUBLICOUT", SummaryType: "sum"},
	}
	const layout = "2006-01-02 15:04:05"
	return m.deps.Metrics.GetSummaryData(ctx, trackingID,
		start.Format(layout), end.Format(layout), types, summaryPeriod)
}
