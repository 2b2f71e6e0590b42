package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slkit/slkit/pkg/datatypes"
	slerrors "github.com/slkit/slkit/pkg/errors"
	"github.com/slkit/slkit/pkg/session"
)

type fakeAllotments struct {
	pool *datatypes.BandwidthAllotment
	err  error
	mask string
}

func (f *fakeAllotments) GetObject(_ context.Context, _ int, mask string) (*datatypes.BandwidthAllotment, error) {
	f.mask = mask
	return f.pool, f.err
}

func TestBandwidthPoolDetail(t *testing.T) {
	allotments := &fakeAllotments{pool: &datatypes.BandwidthAllotment{
		ID:   datatypes.Int(309961),
		Name: datatypes.String("production"),
	}}
	m := NewWithServices(allotments)

	pool, err := m.BandwidthPoolDetail(context.Background(), 309961)
	require.NoError(t, err)
	assert.Equal(t, "production", datatypes.StringValue(pool.Name))
	assert.Contains(t, allotments.mask, "billingCyclePublicBandwidthUsage")
	assert.Contains(t, allotments.mask, "bareMetalInstances")
}

func TestBandwidthPoolDetailNotFound(t *testing.T) {
	allotments := &fakeAllotments{err: &session.Error{StatusCode: 404}}
	m := NewWithServices(allotments)

	_, err := m.BandwidthPoolDetail(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, slerrors.IsCode(err, slerrors.ErrCodeNotFound))
}
