// Package datatypes holds typed records for the SoftLayer JSON shapes slkit
// reads and writes. Field names mirror the API's camelCase properties; only
// the properties the managers actually touch are modeled.
package datatypes

// Vlan is a network VLAN as returned by SoftLayer_Account::getNetworkVlans.
// The firewall indicator collections are populated only when requested via
// object mask; their mere presence marks the VLAN as firewalled.
type Vlan struct {
	ID           *int    `json:"id,omitempty"`
	Name         *string `json:"name,omitempty"`
	VlanNumber   *int    `json:"vlanNumber,omitempty"`
	NetworkSpace *string `json:"networkSpace,omitempty"`

	DedicatedFirewallFlag          *int                `json:"dedicatedFirewallFlag,omitempty"`
	HighAvailabilityFirewallFlag   *bool               `json:"highAvailabilityFirewallFlag,omitempty"`
	FirewallInterfaces             []FirewallInterface `json:"firewallInterfaces,omitempty"`
	FirewallNetworkComponents      []NetworkComponent  `json:"firewallNetworkComponents,omitempty"`
	FirewallGuestNetworkComponents []NetworkComponent  `json:"firewallGuestNetworkComponents,omitempty"`
	FirewallRules                  []FirewallRule      `json:"firewallRules,omitempty"`
	NetworkVlanFirewall            *VlanFirewall       `json:"networkVlanFirewall,omitempty"`

	PrimaryRouter *Router `json:"primaryRouter,omitempty"`
}

// Router is the hardware router a VLAN hangs off of.
type Router struct {
	ID       *int    `json:"id,omitempty"`
	Hostname *string `json:"hostname,omitempty"`
}

// FirewallInterface is a firewall-facing interface on a VLAN. Rule update
// requests attach to one of its access control lists.
type FirewallInterface struct {
	ID   *int    `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`

	FirewallContextAccessControlLists []AccessControlList `json:"firewallContextAccessControlLists,omitempty"`
}

// AccessControlList is a firewall-interface-scoped rule context.
type AccessControlList struct {
	ID        *int    `json:"id,omitempty"`
	Direction *string `json:"direction,omitempty"`
}

// VlanFirewall is a dedicated (VLAN-level) hardware firewall,
// SoftLayer_Network_Vlan_Firewall.
type VlanFirewall struct {
	ID                       *int                  `json:"id,omitempty"`
	FullyQualifiedDomainName *string               `json:"fullyQualifiedDomainName,omitempty"`
	PrimaryIPAddress         *string               `json:"primaryIpAddress,omitempty"`
	FirewallType             *string               `json:"firewallType,omitempty"`
	Datacenter               *Location             `json:"datacenter,omitempty"`
	ManagementCredentials    *Password             `json:"managementCredentials,omitempty"`
	BillingItem              *BillingItem          `json:"billingItem,omitempty"`
	NetworkVlan              *Vlan                 `json:"networkVlan,omitempty"`
	MetricTrackingObject     *MetricTrackingObject `json:"metricTrackingObject,omitempty"`
	NetworkGateway           *NetworkGateway       `json:"networkGateway,omitempty"`
}

// ComponentFirewall is a standard (per-server) firewall,
// SoftLayer_Network_Component_Firewall.
type ComponentFirewall struct {
	ID          *int         `json:"id,omitempty"`
	Status      *string      `json:"status,omitempty"`
	BillingItem *BillingItem `json:"billingItem,omitempty"`
}

// FirewallRule is one ordered rule on a firewall. Ordering is significant;
// first-match evaluation happens remote-side.
type FirewallRule struct {
	ID                        *int    `json:"id,omitempty"`
	OrderValue                *int    `json:"orderValue,omitempty"`
	Action                    *string `json:"action,omitempty"`
	DestinationIPAddress      *string `json:"destinationIpAddress,omitempty"`
	DestinationIPSubnetMask   *string `json:"destinationIpSubnetMask,omitempty"`
	Protocol                  *string `json:"protocol,omitempty"`
	DestinationPortRangeStart *int    `json:"destinationPortRangeStart,omitempty"`
	DestinationPortRangeEnd   *int    `json:"destinationPortRangeEnd,omitempty"`
	SourceIPAddress           *string `json:"sourceIpAddress,omitempty"`
	SourceIPSubnetMask        *string `json:"sourceIpSubnetMask,omitempty"`
	Version                   *int    `json:"version,omitempty"`
	Notes                     *string `json:"notes,omitempty"`
}

// FirewallUpdateRequest is the template posted to
// SoftLayer_Network_Firewall_Update_Request::createObject. Exactly one of
// the two context ids is set, depending on firewall type.
type FirewallUpdateRequest struct {
	ID *int `json:"id,omitempty"`

	FirewallContextAccessControlListID *int `json:"firewallContextAccessControlListId,omitempty"`
	NetworkComponentFirewallID         *int `json:"networkComponentFirewallId,omitempty"`

	Rules []FirewallRule `json:"rules,omitempty"`
}

// NetworkComponent is a NIC with a port speed; components may be bonded into
// a group.
type NetworkComponent struct {
	ID       *int `json:"id,omitempty"`
	MaxSpeed *int `json:"maxSpeed,omitempty"`

	NetworkComponentGroup *NetworkComponentGroup `json:"networkComponentGroup,omitempty"`
}

// NetworkComponentGroup is a bonded team of NICs. Throughput of the team is
// the sum of its members, not the speed of one.
type NetworkComponentGroup struct {
	NetworkComponents []NetworkComponent `json:"networkComponents,omitempty"`
}

// VirtualGuest is the subset of SoftLayer_Virtual_Guest used for firewall
// sizing.
type VirtualGuest struct {
	ID                      *int              `json:"id,omitempty"`
	PrimaryNetworkComponent *NetworkComponent `json:"primaryNetworkComponent,omitempty"`
}

// NetworkGateway is a gateway appliance; one with an attached
// networkFirewall is a "gatewall".
type NetworkGateway struct {
	ID           *int    `json:"id,omitempty"`
	Name         *string `json:"name,omitempty"`
	NetworkSpace *string `json:"networkSpace,omitempty"`

	NetworkFirewall   *VlanFirewall   `json:"networkFirewall,omitempty"`
	Status            *Status         `json:"status,omitempty"`
	InsideVlans       []Vlan          `json:"insideVlans,omitempty"`
	PrivateIPAddress  *IPAddress      `json:"privateIpAddress,omitempty"`
	PublicIPAddress   *IPAddress      `json:"publicIpAddress,omitempty"`
	PublicIPv6Address *IPAddress      `json:"publicIpv6Address,omitempty"`
	PublicVlan        *Vlan           `json:"publicVlan,omitempty"`
	PrivateVlan       *Vlan           `json:"privateVlan,omitempty"`
	Members           []GatewayMember `json:"members,omitempty"`
}

// GatewayMember is one hardware member of a gateway pair.
type GatewayMember struct {
	ID       *int      `json:"id,omitempty"`
	Hardware *Hardware `json:"hardware,omitempty"`
}

// Hardware is the subset of SoftLayer_Hardware used here.
type Hardware struct {
	ID       *int    `json:"id,omitempty"`
	Hostname *string `json:"hostname,omitempty"`
}

// Status is a keyName-bearing status record.
type Status struct {
	KeyName *string `json:"keyName,omitempty"`
	Name    *string `json:"name,omitempty"`
}

// IPAddress wraps a single ipAddress property.
type IPAddress struct {
	ID        *int    `json:"id,omitempty"`
	IPAddress *string `json:"ipAddress,omitempty"`
}

// Location is a datacenter reference.
type Location struct {
	ID       *int    `json:"id,omitempty"`
	Name     *string `json:"name,omitempty"`
	LongName *string `json:"longName,omitempty"`
}

// Password holds device management credentials.
type Password struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

// MetricTrackingObject identifies the bandwidth-metric series for a device.
type MetricTrackingObject struct {
	ID   *int    `json:"id,omitempty"`
	Type *Status `json:"type,omitempty"`

	Data []MetricData `json:"data,omitempty"`
}

// MetricData is one point of summarized metric data.
type MetricData struct {
	Counter  *float64 `json:"counter,omitempty"`
	DateTime *string  `json:"dateTime,omitempty"`
	Type     *string  `json:"type,omitempty"`
}

// MetricSummaryType selects a metric series and aggregation for
// getSummaryData.
type MetricSummaryType struct {
	KeyName     string `json:"keyName"`
	SummaryType string `json:"summaryType"`
}
