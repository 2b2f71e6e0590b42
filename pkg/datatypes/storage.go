package datatypes

import (
	"bytes"
	"encoding/json"
)

// NetworkStorage is a block or file storage volume,
// SoftLayer_Network_Storage.
type NetworkStorage struct {
	ID         *int    `json:"id,omitempty"`
	Username   *string `json:"username,omitempty"`
	CapacityGb *int    `json:"capacityGb,omitempty"`
	LunID      *string `json:"lunId,omitempty"`
	Notes      *string `json:"notes,omitempty"`

	StorageType      *Status `json:"storageType,omitempty"`
	ProvisionedIops  *string `json:"provisionedIops,omitempty"`
	StorageTierLevel *string `json:"storageTierLevel,omitempty"`

	ServiceResource                 *ServiceResource `json:"serviceResource,omitempty"`
	ServiceResourceBackendIPAddress *string          `json:"serviceResourceBackendIpAddress,omitempty"`

	SnapshotCapacityGb *string         `json:"snapshotCapacityGb,omitempty"`
	ParentVolume       *NetworkStorage `json:"parentVolume,omitempty"`
	SnapshotSizeBytes  *string         `json:"snapshotSizeBytes,omitempty"`

	ActiveTransactionCount *int                   `json:"activeTransactionCount,omitempty"`
	ActiveTransactions     []ProvisionTransaction `json:"activeTransactions,omitempty"`

	ReplicationPartnerCount *int               `json:"replicationPartnerCount,omitempty"`
	ReplicationStatus       *ReplicationStatus `json:"replicationStatus,omitempty"`
	ReplicationPartners     []NetworkStorage   `json:"replicationPartners,omitempty"`
	ReplicationSchedule     *Schedule          `json:"replicationSchedule,omitempty"`

	OriginalVolumeSize   *string `json:"originalVolumeSize,omitempty"`
	OriginalVolumeName   *string `json:"originalVolumeName,omitempty"`
	OriginalSnapshotName *string `json:"originalSnapshotName,omitempty"`

	BillingItem *BillingItem `json:"billingItem,omitempty"`
}

// ServiceResource locates the cluster backing a volume.
type ServiceResource struct {
	Datacenter *Location `json:"datacenter,omitempty"`
}

// ProvisionTransaction is an in-flight transaction on a volume.
type ProvisionTransaction struct {
	ID                *int    `json:"id,omitempty"`
	TransactionStatus *struct {
		FriendlyName *string `json:"friendlyName,omitempty"`
	} `json:"transactionStatus,omitempty"`
}

// Schedule is a replication schedule reference.
type Schedule struct {
	Type *struct {
		KeyName *string `json:"keyname,omitempty"`
	} `json:"type,omitempty"`
}

// ReplicationStatus is a tagged variant: the API returns either a plain
// string (file volumes) or a status object (block volumes) for the same
// property. The variant is resolved here at the JSON boundary instead of by
// key-presence checks downstream.
type ReplicationStatus struct {
	// Message is set when the API returned a bare string.
	Message string
	// Status is set when the API returned a status object.
	Status *ReplicationStatusObject
}

// ReplicationStatusObject is the object form of replicationStatus.
type ReplicationStatusObject struct {
	KeyName *string `json:"keyName,omitempty"`
	Message *string `json:"message,omitempty"`
}

// UnmarshalJSON decodes either variant.
func (r *ReplicationStatus) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &r.Message)
	}
	r.Status = &ReplicationStatusObject{}
	return json.Unmarshal(trimmed, r.Status)
}

// MarshalJSON re-encodes whichever variant is held.
func (r ReplicationStatus) MarshalJSON() ([]byte, error) {
	if r.Status != nil {
		return json.Marshal(r.Status)
	}
	return json.Marshal(r.Message)
}

// String renders the human-readable status regardless of variant.
func (r ReplicationStatus) String() string {
	if r.Status != nil {
		if r.Status.Message != nil {
			return *r.Status.Message
		}
		return StringValue(r.Status.KeyName)
	}
	return r.Message
}
