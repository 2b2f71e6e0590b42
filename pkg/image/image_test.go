package image

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slkit/slkit/pkg/datatypes"
	"github.com/slkit/slkit/pkg/filter"
)

type fakeImages struct {
	privateFilter filter.Filter
	publicFilter  filter.Filter
	mask          string
}

func (f *fakeImages) GetPrivateBlockDeviceTemplateGroups(_ context.Context, mask string, flt filter.Filter) ([]datatypes.BlockDeviceTemplateGroup, error) {
	f.mask = mask
	f.privateFilter = flt
	return []datatypes.BlockDeviceTemplateGroup{{ID: datatypes.Int(1)}}, nil
}

func (f *fakeImages) GetPublicImages(_ context.Context, mask string, flt filter.Filter) ([]datatypes.BlockDeviceTemplateGroup, error) {
	f.mask = mask
	f.publicFilter = flt
	return []datatypes.BlockDeviceTemplateGroup{{ID: datatypes.Int(2)}}, nil
}

func TestListPrivate(t *testing.T) {
	fake := &fakeImages{}
	m := NewWithServices(fake, fake)

	got, err := m.ListPrivate(context.Background(), "ubuntu*")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, Mask, fake.mask)
	assert.Equal(t,
		filter.Filter{"privateBlockDeviceTemplateGroups": map[string]any{
			"name": map[string]any{"operation": "^= ubuntu"},
		}},
		fake.privateFilter)
}

func TestListPrivateNoNameSkipsFilter(t *testing.T) {
	fake := &fakeImages{}
	m := NewWithServices(fake, fake)

	_, err := m.ListPrivate(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, fake.privateFilter)
}

func TestListPublic(t *testing.T) {
	fake := &fakeImages{}
	m := NewWithServices(fake, fake)

	got, err := m.ListPublic(context.Background(), "*centos*")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t,
		filter.Filter{"blockDeviceTemplateGroups": map[string]any{
			"name": map[string]any{"operation": "~ centos"},
		}},
		fake.publicFilter)
}
