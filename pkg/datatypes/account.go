package datatypes

// BandwidthAllotment is a bandwidth pool,
// SoftLayer_Network_Bandwidth_Version1_Allotment.
type BandwidthAllotment struct {
	ID         *int    `json:"id,omitempty"`
	Name       *string `json:"name,omitempty"`
	CreateDate *string `json:"createDate,omitempty"`

	BillingCyclePublicBandwidthUsage *BandwidthUsage `json:"billingCyclePublicBandwidthUsage,omitempty"`
	ProjectedPublicBandwidthUsage    *float64        `json:"projectedPublicBandwidthUsage,omitempty"`
	InboundPublicBandwidthUsage      *float64        `json:"inboundPublicBandwidthUsage,omitempty"`

	Hardware           []BandwidthDevice `json:"hardware,omitempty"`
	VirtualGuests      []BandwidthDevice `json:"virtualGuests,omitempty"`
	BareMetalInstances []BandwidthDevice `json:"bareMetalInstances,omitempty"`
}

// BandwidthUsage is a usage or allocation record in GB.
type BandwidthUsage struct {
	Amount    *string `json:"amount,omitempty"`
	AmountOut *string `json:"amountOut,omitempty"`
	AmountIn  *string `json:"amountIn,omitempty"`
}

// BandwidthDevice is one pooled device with its allocation and usage.
type BandwidthDevice struct {
	ID                       *int    `json:"id,omitempty"`
	FullyQualifiedDomainName *string `json:"fullyQualifiedDomainName,omitempty"`
	PrimaryIPAddress         *string `json:"primaryIpAddress,omitempty"`
	OutboundBandwidthUsage   *string `json:"outboundBandwidthUsage,omitempty"`

	BandwidthAllotmentDetail *struct {
		Allocation *BandwidthUsage `json:"allocation,omitempty"`
	} `json:"bandwidthAllotmentDetail,omitempty"`
}

// BlockDeviceTemplateGroup is a disk image template,
// SoftLayer_Virtual_Guest_Block_Device_Template_Group.
type BlockDeviceTemplateGroup struct {
	ID         *int    `json:"id,omitempty"`
	ParentID   *int    `json:"parentId,omitempty"`
	Name       *string `json:"name,omitempty"`
	AccountID  *int    `json:"accountId,omitempty"`
	PublicFlag *int    `json:"publicFlag,omitempty"`

	ImageType *Status `json:"imageType,omitempty"`
}
