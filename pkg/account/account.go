// Package account exposes account-level resources, currently bandwidth
// pool detail.
package account

import (
	"context"

	"github.com/slkit/slkit/pkg/datatypes"
	"github.com/slkit/slkit/pkg/errors"
	"github.com/slkit/slkit/pkg/services"
	"github.com/slkit/slkit/pkg/session"
)

const poolDetailMask = "mask[id,name,createDate," +
	"billingCyclePublicBandwidthUsage[amountOut,amountIn]," +
	"projectedPublicBandwidthUsage,inboundPublicBandwidthUsage," +
	"hardware[id,fullyQualifiedDomainName,primaryIpAddress," +
	"outboundBandwidthUsage,bandwidthAllotmentDetail[allocation[amount]]]," +
	"virtualGuests[id,fullyQualifiedDomainName,primaryIpAddress," +
	"outboundBandwidthUsage,bandwidthAllotmentDetail[allocation[amount]]]," +
	"bareMetalInstances[id,fullyQualifiedDomainName,primaryIpAddress," +
	"outboundBandwidthUsage,bandwidthAllotmentDetail[allocation[amount]]]]"

// AllotmentService fetches bandwidth pools.
type AllotmentService interface {
	GetObject(ctx context.Context, id int, mask string) (*datatypes.BandwidthAllotment, error)
}

// Manager reads account-scoped resources.
type Manager struct {
	allotments AllotmentService
}

// New returns a Manager wired to the registry's service handles.
func New(reg *services.Registry) *Manager {
	return &Manager{allotments: reg.BandwidthAllotments}
}

// NewWithServices returns a Manager over explicit service handles.
func NewWithServices(allotments AllotmentService) *Manager {
	return &Manager{allotments: allotments}
}

// BandwidthPoolDetail fetches a bandwidth pool with its member devices and
// their usage.
func (m *Manager) BandwidthPoolDetail(ctx context.Context, poolID int) (*datatypes.BandwidthAllotment, error) {
	pool, err := m.allotments.GetObject(ctx, poolID, poolDetailMask)
	if err != nil {
		if session.IsNotFound(err) {
			return nil, errors.Newf(errors.ErrCodeNotFound, "unable to find bandwidth pool %d", poolID)
		}
		return nil, err
	}
	if pool == nil {
		return nil, errors.Newf(errors.ErrCodeNotFound, "unable to find bandwidth pool %d", poolID)
	}
	return pool, nil
}
