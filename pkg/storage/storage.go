// Package storage manages block and file storage volumes: detail lookup,
// snapshots, duplicate refresh, and replication failback.
package storage

import (
	"context"

	"github.com/slkit/slkit/pkg/datatypes"
	"github.com/slkit/slkit/pkg/errors"
	"github.com/slkit/slkit/pkg/services"
	"github.com/slkit/slkit/pkg/session"
)

// detailMask pulls everything the detail view renders in one round trip,
// including the replication and original-volume properties.
const detailMask = "mask[id,username,capacityGb,lunId,notes," +
	"storageType[keyName],provisionedIops,storageTierLevel," +
	"serviceResource[datacenter[name]],serviceResourceBackendIpAddress," +
	"snapshotCapacityGb,parentVolume[snapshotSizeBytes]," +
	"activeTransactionCount,activeTransactions[transactionStatus[friendlyName]]," +
	"replicationPartnerCount,replicationStatus," +
	"replicationPartners[id,username,serviceResourceBackendIpAddress," +
	"serviceResource[datacenter[name]],replicationSchedule[type[keyname]]]," +
	"originalVolumeSize,originalVolumeName,originalSnapshotName]"

const snapshotBillingMask = "mask[id,billingItem[id,activeChildren[id,categoryCode]]]"

// snapshotSpaceCategory is the billing category of purchased snapshot space.
const snapshotSpaceCategory = "storage_snapshot_space"

// VolumeService is the network-storage surface the manager consumes.
type VolumeService interface {
	GetObject(ctx context.Context, id int, mask string) (*datatypes.NetworkStorage, error)
	CreateSnapshot(ctx context.Context, id int, notes string) (*datatypes.NetworkStorage, error)
	RefreshDuplicate(ctx context.Context, id, snapshotID int, force bool) error
	FailbackFromReplicant(ctx context.Context, id int) (bool, error)
}

// BillingService cancels billing items.
type BillingService interface {
	CancelItem(ctx context.Context, id int, immediate bool, reason, note string) (bool, error)
}

// Manager operates on storage volumes through the volume and billing
// services.
type Manager struct {
	volumes VolumeService
	billing BillingService
}

// New returns a Manager wired to the registry's service handles.
func New(reg *services.Registry) *Manager {
	return &Manager{volumes: reg.NetworkStorage, billing: reg.BillingItems}
}

// NewWithServices returns a Manager over explicit service handles.
func NewWithServices(volumes VolumeService, billing BillingService) *Manager {
	return &Manager{volumes: volumes, billing: billing}
}

// VolumeDetails fetches a volume with the full detail mask.
func (m *Manager) VolumeDetails(ctx context.Context, volumeID int) (*datatypes.NetworkStorage, error) {
	volume, err := m.volumes.GetObject(ctx, volumeID, detailMask)
	if err != nil {
		if session.IsNotFound(err) {
			return nil, notFoundError(volumeID)
		}
		return nil, err
	}
	if volume == nil {
		return nil, notFoundError(volumeID)
	}
	return volume, nil
}

// CreateSnapshot takes a snapshot of the volume. Volumes without purchased
// snapshot space are rejected locally; the remote call would fail with a
// less useful message.
func (m *Manager) CreateSnapshot(ctx context.Context, volumeID int, notes string) (*datatypes.NetworkStorage, error) {
	volume, err := m.volumes.GetObject(ctx, volumeID, "mask[id,snapshotCapacityGb]")
	if err != nil {
		if session.IsNotFound(err) {
			return nil, notFoundError(volumeID)
		}
		return nil, err
	}
	if volume == nil {
		return nil, notFoundError(volumeID)
	}
	if volume.SnapshotCapacityGb == nil {
		return nil, errors.Newf(errors.ErrCodeInvalidInput,
			"volume %d has no snapshot space; order snapshot space before taking snapshots", volumeID)
	}
	return m.volumes.CreateSnapshot(ctx, volumeID, notes)
}

// CancelSnapshotSpace cancels the snapshot-space billing child of the
// volume. A volume that exists but has no snapshot-space billing gets its
// own error, distinct from a missing volume.
func (m *Manager) CancelSnapshotSpace(ctx context.Context, volumeID int, reason string, immediate bool) (bool, error) {
	volume, err := m.volumes.GetObject(ctx, volumeID, snapshotBillingMask)
	if err != nil {
		if session.IsNotFound(err) {
			return false, notFoundError(volumeID)
		}
		return false, err
	}
	if volume == nil {
		return false, notFoundError(volumeID)
	}

	var childID *int
	if volume.BillingItem != nil {
		for _, child := range volume.BillingItem.ActiveChildren {
			if datatypes.StringValue(child.CategoryCode) == snapshotSpaceCategory {
				childID = child.ID
				break
			}
		}
	}
	if childID == nil {
		return false, errors.Newf(errors.ErrCodeBillingMissing,
			"no snapshot space billing item found for volume %d", volumeID)
	}

	return m.billing.CancelItem(ctx, datatypes.IntValue(childID), immediate, reason, "")
}

// RefreshDuplicate refreshes a duplicate volume from a snapshot of its
// parent.
func (m *Manager) RefreshDuplicate(ctx context.Context, volumeID, snapshotID int, force bool) error {
	return m.volumes.RefreshDuplicate(ctx, volumeID, snapshotID, force)
}

// FailbackFromReplicant fails the volume back from its replicant after a
// failover.
func (m *Manager) FailbackFromReplicant(ctx context.Context, volumeID int) (bool, error) {
	return m.volumes.FailbackFromReplicant(ctx, volumeID)
}

func notFoundError(volumeID int) error {
	return errors.Newf(errors.ErrCodeNotFound, "unable to find volume %d", volumeID)
}
