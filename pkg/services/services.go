// Package services provides one thin typed handle per remote API service.
// All handles share a single session; managers depend on the narrow
// interfaces they declare and receive these handles at construction, so no
// service lookup happens per call.
package services

import (
	"context"

	"github.com/slkit/slkit/pkg/datatypes"
	"github.com/slkit/slkit/pkg/filter"
	"github.com/slkit/slkit/pkg/session"
)

// Remote service names. The SoftLayer_ prefix is part of the REST path.
const (
	AccountServiceName               = "SoftLayer_Account"
	ProductPackageServiceName        = "SoftLayer_Product_Package"
	ProductOrderServiceName          = "SoftLayer_Product_Order"
	BillingItemServiceName           = "SoftLayer_Billing_Item"
	VirtualGuestServiceName          = "SoftLayer_Virtual_Guest"
	HardwareServerServiceName        = "SoftLayer_Hardware_Server"
	VlanFirewallServiceName          = "SoftLayer_Network_Vlan_Firewall"
	ComponentFirewallServiceName     = "SoftLayer_Network_Component_Firewall"
	FirewallUpdateRequestServiceName = "SoftLayer_Network_Firewall_Update_Request"
	MetricTrackingServiceName        = "SoftLayer_Metric_Tracking_Object"
	NetworkStorageServiceName        = "SoftLayer_Network_Storage"
	BandwidthAllotmentServiceName    = "SoftLayer_Network_Bandwidth_Version1_Allotment"
	ImageTemplateServiceName         = "SoftLayer_Virtual_Guest_Block_Device_Template_Group"
	MetadataServiceName              = "SoftLayer_Resource_Metadata"
)

// Registry bundles all service handles over one session.
type Registry struct {
	Account                *Account
	ProductPackages        *ProductPackage
	ProductOrders          *ProductOrder
	BillingItems           *BillingItem
	VirtualGuests          *VirtualGuest
	HardwareServers        *HardwareServer
	VlanFirewalls          *VlanFirewall
	ComponentFirewalls     *ComponentFirewall
	FirewallUpdateRequests *FirewallUpdateRequest
	MetricTracking         *MetricTracking
	NetworkStorage         *NetworkStorage
	BandwidthAllotments    *BandwidthAllotment
	ImageTemplates         *ImageTemplate
}

// NewRegistry resolves every service handle against sess once.
func NewRegistry(sess *session.Session) *Registry {
	return &Registry{
		Account:                &Account{sess: sess},
		ProductPackages:        &ProductPackage{sess: sess},
		ProductOrders:          &ProductOrder{sess: sess},
		BillingItems:           &BillingItem{sess: sess},
		VirtualGuests:          &VirtualGuest{sess: sess},
		HardwareServers:        &HardwareServer{sess: sess},
		VlanFirewalls:          &VlanFirewall{sess: sess},
		ComponentFirewalls:     &ComponentFirewall{sess: sess},
		FirewallUpdateRequests: &FirewallUpdateRequest{sess: sess},
		MetricTracking:         &MetricTracking{sess: sess},
		NetworkStorage:         &NetworkStorage{sess: sess},
		BandwidthAllotments:    &BandwidthAllotment{sess: sess},
		ImageTemplates:         &ImageTemplate{sess: sess},
	}
}

// Account wraps SoftLayer_Account.
type Account struct {
	sess *session.Session
}

// GetNetworkVlans lists the account's VLANs with the given mask.
func (a *Account) GetNetworkVlans(ctx context.Context, mask string) ([]datatypes.Vlan, error) {
	var vlans []datatypes.Vlan
	err := a.sess.Do(ctx, session.Request{
		Service: AccountServiceName,
		Method:  "getNetworkVlans",
		Mask:    mask,
	}, &vlans)
	return vlans, err
}

// GetNetworkGateways lists the account's gateways, optionally filtered
// server-side.
func (a *Account) GetNetworkGateways(ctx context.Context, mask string, f filter.Filter) ([]datatypes.NetworkGateway, error) {
	var gateways []datatypes.NetworkGateway
	err := a.sess.Do(ctx, session.Request{
		Service: AccountServiceName,
		Method:  "getNetworkGateways",
		Mask:    mask,
		Filter:  f,
	}, &gateways)
	return gateways, err
}

// GetPrivateBlockDeviceTemplateGroups lists the account's private images.
func (a *Account) GetPrivateBlockDeviceTemplateGroups(ctx context.Context, mask string, f filter.Filter) ([]datatypes.BlockDeviceTemplateGroup, error) {
	var images []datatypes.BlockDeviceTemplateGroup
	err := a.sess.Do(ctx, session.Request{
		Service: AccountServiceName,
		Method:  "getPrivateBlockDeviceTemplateGroups",
		Mask:    mask,
		Filter:  f,
	}, &images)
	return images, err
}

// ProductPackage wraps SoftLayer_Product_Package.
type ProductPackage struct {
	sess *session.Session
}

// GetItems queries catalog items of the given package.
func (p *ProductPackage) GetItems(ctx context.Context, packageID int, f filter.Filter) ([]datatypes.ProductItem, error) {
	var items []datatypes.ProductItem
	err := p.sess.Do(ctx, session.Request{
		Service: ProductPackageServiceName,
		Method:  "getItems",
		ID:      &packageID,
		Filter:  f,
	}, &items)
	return items, err
}

// ProductOrder wraps SoftLayer_Product_Order.
type ProductOrder struct {
	sess *session.Session
}

// PlaceOrder submits an order container.
func (p *ProductOrder) PlaceOrder(ctx context.Context, order any) (*datatypes.OrderReceipt, error) {
	var receipt datatypes.OrderReceipt
	err := p.sess.Do(ctx, session.Request{
		Service: ProductOrderServiceName,
		Method:  "placeOrder",
		Args:    []any{order},
	}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// BillingItem wraps SoftLayer_Billing_Item.
type BillingItem struct {
	sess *session.Session
}

// CancelService cancels the billing item, ending the backing service.
func (b *BillingItem) CancelService(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := b.sess.Do(ctx, session.Request{
		Service: BillingItemServiceName,
		Method:  "cancelService",
		ID:      &id,
	}, &ok)
	return ok, err
}

// CancelItem cancels a billing item, optionally immediately, with a reason
// and customer note.
func (b *BillingItem) CancelItem(ctx context.Context, id int, immediate bool, reason, note string) (bool, error) {
	var ok bool
	err := b.sess.Do(ctx, session.Request{
		Service: BillingItemServiceName,
		Method:  "cancelItem",
		ID:      &id,
		Args:    []any{immediate, true, reason, note},
	}, &ok)
	return ok, err
}

// VirtualGuest wraps SoftLayer_Virtual_Guest.
type VirtualGuest struct {
	sess *session.Session
}

// GetObject fetches a virtual server with the given mask.
func (v *VirtualGuest) GetObject(ctx context.Context, id int, mask string) (*datatypes.VirtualGuest, error) {
	var guest *datatypes.VirtualGuest
	err := v.sess.Do(ctx, session.Request{
		Service: VirtualGuestServiceName,
		Method:  "getObject",
		ID:      &id,
		Mask:    mask,
	}, &guest)
	return guest, err
}

// HardwareServer wraps SoftLayer_Hardware_Server.
type HardwareServer struct {
	sess *session.Session
}

// GetFrontendNetworkComponents lists a server's public-facing NICs.
func (h *HardwareServer) GetFrontendNetworkComponents(ctx context.Context, id int, mask string) ([]datatypes.NetworkComponent, error) {
	var components []datatypes.NetworkComponent
	err := h.sess.Do(ctx, session.Request{
		Service: HardwareServerServiceName,
		Method:  "getFrontendNetworkComponents",
		ID:      &id,
		Mask:    mask,
	}, &components)
	return components, err
}

// VlanFirewall wraps SoftLayer_Network_Vlan_Firewall.
type VlanFirewall struct {
	sess *session.Session
}

// GetObject fetches a dedicated firewall; nil result means the object is
// absent.
func (v *VlanFirewall) GetObject(ctx context.Context, id int, mask string) (*datatypes.VlanFirewall, error) {
	var fw *datatypes.VlanFirewall
	err := v.sess.Do(ctx, session.Request{
		Service: VlanFirewallServiceName,
		Method:  "getObject",
		ID:      &id,
		Mask:    mask,
	}, &fw)
	return fw, err
}

// GetRules lists the firewall's rules in remote order.
func (v *VlanFirewall) GetRules(ctx context.Context, id int, mask string) ([]datatypes.FirewallRule, error) {
	var rules []datatypes.FirewallRule
	err := v.sess.Do(ctx, session.Request{
		Service: VlanFirewallServiceName,
		Method:  "getRules",
		ID:      &id,
		Mask:    mask,
	}, &rules)
	return rules, err
}

// ComponentFirewall wraps SoftLayer_Network_Component_Firewall.
type ComponentFirewall struct {
	sess *session.Session
}

// GetObject fetches a standard firewall; nil result means absent.
func (c *ComponentFirewall) GetObject(ctx context.Context, id int, mask string) (*datatypes.ComponentFirewall, error) {
	var fw *datatypes.ComponentFirewall
	err := c.sess.Do(ctx, session.Request{
		Service: ComponentFirewallServiceName,
		Method:  "getObject",
		ID:      &id,
		Mask:    mask,
	}, &fw)
	return fw, err
}

// GetRules lists the firewall's rules in remote order.
func (c *ComponentFirewall) GetRules(ctx context.Context, id int, mask string) ([]datatypes.FirewallRule, error) {
	var rules []datatypes.FirewallRule
	err := c.sess.Do(ctx, session.Request{
		Service: ComponentFirewallServiceName,
		Method:  "getRules",
		ID:      &id,
		Mask:    mask,
	}, &rules)
	return rules, err
}

// FirewallUpdateRequest wraps SoftLayer_Network_Firewall_Update_Request.
type FirewallUpdateRequest struct {
	sess *session.Session
}

// CreateObject submits a rule-update template.
func (f *FirewallUpdateRequest) CreateObject(ctx context.Context, template datatypes.FirewallUpdateRequest) (*datatypes.FirewallUpdateRequest, error) {
	var created datatypes.FirewallUpdateRequest
	err := f.sess.Do(ctx, session.Request{
		Service: FirewallUpdateRequestServiceName,
		Method:  "createObject",
		Args:    []any{template},
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// MetricTracking wraps SoftLayer_Metric_Tracking_Object.
type MetricTracking struct {
	sess *session.Session
}

// GetSummaryData fetches summarized metric data for the tracking object over
// [start, end] at the given period in seconds.
func (m *MetricTracking) GetSummaryData(ctx context.Context, id int, start, end string, types []datatypes.MetricSummaryType, period int) ([]datatypes.MetricData, error) {
	var data []datatypes.MetricData
	err := m.sess.Do(ctx, session.Request{
		Service: MetricTrackingServiceName,
		Method:  "getSummaryData",
		ID:      &id,
		Args:    []any{start, end, types, period},
	}, &data)
	return data, err
}

// NetworkStorage wraps SoftLayer_Network_Storage.
type NetworkStorage struct {
	sess *session.Session
}

// GetObject fetches a volume; nil result means absent.
func (n *NetworkStorage) GetObject(ctx context.Context, id int, mask string) (*datatypes.NetworkStorage, error) {
	var volume *datatypes.NetworkStorage
	err := n.sess.Do(ctx, session.Request{
		Service: NetworkStorageServiceName,
		Method:  "getObject",
		ID:      &id,
		Mask:    mask,
	}, &volume)
	return volume, err
}

// CreateSnapshot takes a snapshot of the volume.
func (n *NetworkStorage) CreateSnapshot(ctx context.Context, id int, notes string) (*datatypes.NetworkStorage, error) {
	var snapshot datatypes.NetworkStorage
	err := n.sess.Do(ctx, session.Request{
		Service: NetworkStorageServiceName,
		Method:  "createSnapshot",
		ID:      &id,
		Args:    []any{notes},
	}, &snapshot)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// RefreshDuplicate refreshes a duplicate volume from a parent snapshot.
func (n *NetworkStorage) RefreshDuplicate(ctx context.Context, id, snapshotID int, force bool) error {
	return n.sess.Do(ctx, session.Request{
		Service: NetworkStorageServiceName,
		Method:  "refreshDuplicate",
		ID:      &id,
		Args:    []any{snapshotID, force},
	}, nil)
}

// FailbackFromReplicant fails a volume back from its replicant.
func (n *NetworkStorage) FailbackFromReplicant(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := n.sess.Do(ctx, session.Request{
		Service: NetworkStorageServiceName,
		Method:  "failbackFromReplicant",
		ID:      &id,
	}, &ok)
	return ok, err
}

// BandwidthAllotment wraps SoftLayer_Network_Bandwidth_Version1_Allotment.
type BandwidthAllotment struct {
	sess *session.Session
}

// GetObject fetches a bandwidth pool; nil result means absent.
func (b *BandwidthAllotment) GetObject(ctx context.Context, id int, mask string) (*datatypes.BandwidthAllotment, error) {
	var pool *datatypes.BandwidthAllotment
	err := b.sess.Do(ctx, session.Request{
		Service: BandwidthAllotmentServiceName,
		Method:  "getObject",
		ID:      &id,
		Mask:    mask,
	}, &pool)
	return pool, err
}

// ImageTemplate wraps SoftLayer_Virtual_Guest_Block_Device_Template_Group.
type ImageTemplate struct {
	sess *session.Session
}

// GetPublicImages lists publicly visible image templates.
func (i *ImageTemplate) GetPublicImages(ctx context.Context, mask string, f filter.Filter) ([]datatypes.BlockDeviceTemplateGroup, error) {
	var images []datatypes.BlockDeviceTemplateGroup
	err := i.sess.Do(ctx, session.Request{
		Service: ImageTemplateServiceName,
		Method:  "getPublicImages",
		Mask:    mask,
		Filter:  f,
	}, &images)
	return images, err
}
