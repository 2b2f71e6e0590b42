// Package image lists disk image templates, private and public.
package image

import (
	"context"

	"github.com/slkit/slkit/pkg/datatypes"
	"github.com/slkit/slkit/pkg/filter"
	"github.com/slkit/slkit/pkg/services"
)

// Mask selects the image-template fields the list view renders.
const Mask = "mask[id,parentId,name,accountId,publicFlag,imageType]"

// PrivateService lists the account's own image templates.
type PrivateService interface {
	GetPrivateBlockDeviceTemplateGroups(ctx context.Context, mask string, f filter.Filter) ([]datatypes.BlockDeviceTemplateGroup, error)
}

// PublicService lists publicly visible image templates.
type PublicService interface {
	GetPublicImages(ctx context.Context, mask string, f filter.Filter) ([]datatypes.BlockDeviceTemplateGroup, error)
}

// Manager lists image templates.
type Manager struct {
	private PrivateService
	public  PublicService
}

// New returns a Manager wired to the registry's service handles.
func New(reg *services.Registry) *Manager {
	return &Manager{private: reg.Account, public: reg.ImageTemplates}
}

// NewWithServices returns a Manager over explicit service handles.
func NewWithServices(private PrivateService, public PublicService) *Manager {
	return &Manager{private: private, public: public}
}

// ListPrivate lists the account's private images, optionally name-filtered
// with query syntax (wildcards included).
func (m *Manager) ListPrivate(ctx context.Context, name string) ([]datatypes.BlockDeviceTemplateGroup, error) {
	var f filter.Filter
	if name != "" {
		f = filter.New().Set("privateBlockDeviceTemplateGroups.name", filter.Query(name))
	}
	return m.private.GetPrivateBlockDeviceTemplateGroups(ctx, Mask, f)
}

// ListPublic lists public images, optionally name-filtered.
func (m *Manager) ListPublic(ctx context.Context, name string) ([]datatypes.BlockDeviceTemplateGroup, error) {
	var f filter.Filter
	if name != "" {
		f = filter.New().Set("blockDeviceTemplateGroups.name", filter.Query(name))
	}
	return m.public.GetPublicImages(ctx, Mask, f)
}
