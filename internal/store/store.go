// Package store persists the activation record of one installation.
package store

import (
	"context"

	"github.com/LerianStudio/lib-device-license-go/model"
)

// RecordStore is the local persisted key/value bag holding the activation record.
// Load returns (nil, nil) when nothing has been saved yet.
type RecordStore interface {
	Load(ctx context.Context) (*model.ActivationRecord, error)
	Save(ctx context.Context, record *model.ActivationRecord) error
}
