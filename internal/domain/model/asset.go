package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/event"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
)

// Asset is a collateral item pledged against investments. Its only
// mutation is being released once an investment it backs is settled.
type Asset struct {
	id             string
	customerID     string
	brokerID       string
	name           string
	description    string
	estimatedValue decimal.Decimal
	released       bool
	releasedAt     time.Time
	releaseNote    string
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	domainEvents   []event.DomainEvent
}

// NewAsset registers collateral. customerID and brokerID are optional links.
func NewAsset(customerID, brokerID, name, description string, estimatedValue decimal.Decimal, now time.Time) (Asset, error) {
	if strings.TrimSpace(name) == "" {
		return Asset{}, fmt.Errorf("%w: asset name is required", valueobject.ErrValidation)
	}
	if estimatedValue.IsNegative() {
		return Asset{}, fmt.Errorf("%w: estimated value must not be negative", valueobject.ErrValidation)
	}
	return Asset{
		id:             uuid.New().String(),
		customerID:     customerID,
		brokerID:       brokerID,
		name:           strings.TrimSpace(name),
		description:    description,
		estimatedValue: estimatedValue,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructAsset rebuilds an Asset from persistence.
func ReconstructAsset(
	id, customerID, brokerID, name, description string,
	estimatedValue decimal.Decimal,
	released bool, releasedAt time.Time, releaseNote string,
	version int, createdAt, updatedAt time.Time,
) Asset {
	return Asset{
		id:             id,
		customerID:     customerID,
		brokerID:       brokerID,
		name:           name,
		description:    description,
		estimatedValue: estimatedValue,
		released:       released,
		releasedAt:     releasedAt,
		releaseNote:    releaseNote,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Release hands the asset back after investmentID settled. Releasing an
// asset that is already released returns it unchanged.
func (a Asset) Release(investmentID, note string, now time.Time) Asset {
	if a.released {
		return a
	}
	next := a
	next.released = true
	next.releasedAt = now
	next.releaseNote = note
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewAssetReleased(a.id, investmentID, note, now))
	return next
}

// OwnedBy reports whether the asset is linked to customerID.
func (a Asset) OwnedBy(customerID string) bool { return a.customerID == customerID }

func (a Asset) ID() string                        { return a.id }
func (a Asset) CustomerID() string                { return a.customerID }
func (a Asset) BrokerID() string                  { return a.brokerID }
func (a Asset) Name() string                      { return a.name }
func (a Asset) Description() string               { return a.description }
func (a Asset) EstimatedValue() decimal.Decimal   { return a.estimatedValue }
func (a Asset) IsReleased() bool                  { return a.released }
func (a Asset) ReleasedAt() time.Time             { return a.releasedAt }
func (a Asset) ReleaseNote() string               { return a.releaseNote }
func (a Asset) Version() int                      { return a.version }
func (a Asset) CreatedAt() time.Time              { return a.createdAt }
func (a Asset) UpdatedAt() time.Time              { return a.updatedAt }
func (a Asset) DomainEvents() []event.DomainEvent { return a.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (a Asset) ClearEvents() Asset {
	next := a
	next.domainEvents = nil
	return next
}
