package storage

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slkit/slkit/pkg/datatypes"
	slerrors "github.com/slkit/slkit/pkg/errors"
	"github.com/slkit/slkit/pkg/session"
)

type fakeVolumes struct {
	object *datatypes.NetworkStorage
	objErr error
	mask   string

	snapshotNotes string
	refreshArgs   struct {
		snapshotID int
		force      bool
	}
	failbackCalled bool
}

func (f *fakeVolumes) GetObject(_ context.Context, _ int, mask string) (*datatypes.NetworkStorage, error) {
	f.mask = mask
	return f.object, f.objErr
}

func (f *fakeVolumes) CreateSnapshot(_ context.Context, id int, notes string) (*datatypes.NetworkStorage, error) {
	f.snapshotNotes = notes
	return &datatypes.NetworkStorage{ID: datatypes.Int(id)}, nil
}

func (f *fakeVolumes) RefreshDuplicate(_ context.Context, _, snapshotID int, force bool) error {
	f.refreshArgs.snapshotID = snapshotID
	f.refreshArgs.force = force
	return nil
}

func (f *fakeVolumes) FailbackFromReplicant(_ context.Context, _ int) (bool, error) {
	f.failbackCalled = true
	return true, nil
}

type fakeBilling struct {
	cancelledID int
	immediate   bool
	reason      string
}

func (f *fakeBilling) CancelItem(_ context.Context, id int, immediate bool, reason, _ string) (bool, error) {
	f.cancelledID = id
	f.immediate = immediate
	f.reason = reason
	return true, nil
}

func TestVolumeDetails(t *testing.T) {
	volumes := &fakeVolumes{object: &datatypes.NetworkStorage{ID: datatypes.Int(12345)}}
	m := NewWithServices(volumes, &fakeBilling{})

	got, err := m.VolumeDetails(context.Background(), 12345)
	require.NoError(t, err)
	assert.Equal(t, 12345, datatypes.IntValue(got.ID))
	assert.Contains(t, volumes.mask, "replicationStatus")
	assert.Contains(t, volumes.mask, "originalSnapshotName")
	assert.Contains(t, volumes.mask, "activeTransactions[transactionStatus[friendlyName]]")
}

func TestVolumeDetailsNotFound(t *testing.T) {
	t.Run("api 404", func(t *testing.T) {
		volumes := &fakeVolumes{objErr: &session.Error{StatusCode: 404}}
		m := NewWithServices(volumes, &fakeBilling{})

		_, err := m.VolumeDetails(context.Background(), 1)
		assert.True(t, slerrors.IsCode(err, slerrors.ErrCodeNotFound))
	})

	t.Run("null object", func(t *testing.T) {
		m := NewWithServices(&fakeVolumes{}, &fakeBilling{})

		_, err := m.VolumeDetails(context.Background(), 1)
		assert.True(t, slerrors.IsCode(err, slerrors.ErrCodeNotFound))
	})
}

func TestCreateSnapshotRequiresSnapshotSpace(t *testing.T) {
	volumes := &fakeVolumes{object: &datatypes.NetworkStorage{ID: datatypes.Int(7)}}
	m := NewWithServices(volumes, &fakeBilling{})

	_, err := m.CreateSnapshot(context.Background(), 7, "pre-upgrade")
	require.Error(t, err)
	assert.True(t, slerrors.IsCode(err, slerrors.ErrCodeInvalidInput))
	assert.Empty(t, volumes.snapshotNotes)
}

func TestCreateSnapshot(t *testing.T) {
	volumes := &fakeVolumes{object: &datatypes.NetworkStorage{
		ID:                 datatypes.Int(7),
		SnapshotCapacityGb: datatypes.String("20"),
	}}
	m := NewWithServices(volumes, &fakeBilling{})

	snap, err := m.CreateSnapshot(context.Background(), 7, "pre-upgrade")
	require.NoError(t, err)
	assert.Equal(t, 7, datatypes.IntValue(snap.ID))
	assert.Equal(t, "pre-upgrade", volumes.snapshotNotes)
}

func TestCancelSnapshotSpace(t *testing.T) {
	volumes := &fakeVolumes{object: &datatypes.NetworkStorage{
		ID: datatypes.Int(7),
		BillingItem: &datatypes.BillingItem{
			ID: datatypes.Int(100),
			ActiveChildren: []datatypes.BillingItem{
				{ID: datatypes.Int(101), CategoryCode: datatypes.String("storage_as_a_service")},
				{ID: datatypes.Int(102), CategoryCode: datatypes.String("storage_snapshot_space")},
			},
		},
	}}
	billing := &fakeBilling{}
	m := NewWithServices(volumes, billing)

	ok, err := m.CancelSnapshotSpace(context.Background(), 7, "no longer needed", true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 102, billing.cancelledID)
	assert.True(t, billing.immediate)
	assert.Equal(t, "no longer needed", billing.reason)
	assert.Equal(t, "mask[id,billingItem[id,activeChildren[id,categoryCode]]]", volumes.mask)
}

func TestCancelSnapshotSpaceErrorsStayDistinct(t *testing.T) {
	t.Run("missing volume", func(t *testing.T) {
		volumes := &fakeVolumes{objErr: &session.Error{
			StatusCode: 500, Exception: "SoftLayer_Exception_ObjectNotFound",
		}}
		m := NewWithServices(volumes, &fakeBilling{})

		_, err := m.CancelSnapshotSpace(context.Background(), 8, "", false)
		assert.True(t, slerrors.IsCode(err, slerrors.ErrCodeNotFound))
	})

	t.Run("no snapshot billing child", func(t *testing.T) {
		volumes := &fakeVolumes{object: &datatypes.NetworkStorage{
			ID:          datatypes.Int(8),
			BillingItem: &datatypes.BillingItem{ID: datatypes.Int(100)},
		}}
		billing := &fakeBilling{}
		m := NewWithServices(volumes, billing)

		_, err := m.CancelSnapshotSpace(context.Background(), 8, "", false)
		assert.True(t, slerrors.IsCode(err, slerrors.ErrCodeBillingMissing))
		assert.Zero(t, billing.cancelledID)
	})
}

func TestRefreshDuplicate(t *testing.T) {
	volumes := &fakeVolumes{}
	m := NewWithServices(volumes, &fakeBilling{})

	require.NoError(t, m.RefreshDuplicate(context.Background(), 10, 55, true))
	assert.Equal(t, 55, volumes.refreshArgs.snapshotID)
	assert.True(t, volumes.refreshArgs.force)
}

func TestFailbackFromReplicant(t *testing.T) {
	volumes := &fakeVolumes{}
	m := NewWithServices(volumes, &fakeBilling{})

	ok, err := m.FailbackFromReplicant(context.Background(), 10)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, volumes.failbackCalled)
}

func TestReplicationStatusVariants(t *testing.T) {
	t.Run("string form", func(t *testing.T) {
		var vol datatypes.NetworkStorage
		require.NoError(t, json.Unmarshal(
			[]byte(`{"id": 1, "replicationStatus": "FAILBACK_COMPLETED"}`), &vol))
		require.NotNil(t, vol.ReplicationStatus)
		assert.Equal(t, "FAILBACK_COMPLETED", vol.ReplicationStatus.String())
		assert.Nil(t, vol.ReplicationStatus.Status)
	})

	t.Run("object form", func(t *testing.T) {
		var vol datatypes.NetworkStorage
		require.NoError(t, json.Unmarshal(
			[]byte(`{"id": 1, "replicationStatus": {"keyName": "ACTIVE", "message": "Replication is active"}}`), &vol))
		require.NotNil(t, vol.ReplicationStatus)
		require.NotNil(t, vol.ReplicationStatus.Status)
		assert.Equal(t, "Replication is active", vol.ReplicationStatus.String())
	})
}
