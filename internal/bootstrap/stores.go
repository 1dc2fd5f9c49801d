package bootstrap

import (
	"context"
	"fmt"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/internal/config"
	"github.com/LerianStudio/lib-device-license-go/internal/memstore"
	"github.com/LerianStudio/lib-device-license-go/postgres"
	"github.com/LerianStudio/lib-device-license-go/service"
)

// Stores is the License Store selected by the server configuration.
type Stores struct {
	Licenses service.LicenseRepository
	Devices  service.DeviceRepository
	Audits   service.AuditRepository

	close func()
}

// OpenStores connects the configured store driver. The postgres driver is
// migrated before it is returned.
func OpenStores(ctx context.Context, cfg config.ServerConfig, logger log.Logger) (*Stores, error) {
	switch cfg.StoreDriver {
	case constant.StoreDriverMemory:
		st := memstore.New()

		return &Stores{Licenses: st.Licenses(), Devices: st.Devices(), Audits: st.Audits(), close: func() {}}, nil
	case constant.StoreDriverPostgres:
		db, err := postgres.New(ctx, postgres.DefaultConfig(cfg.DatabaseURL), logger)
		if err != nil {
			return nil, err
		}

		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate license store: %w", err)
		}

		return &Stores{Licenses: db.Licenses(), Devices: db.Devices(), Audits: db.Audits(), close: db.Close}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Close releases the store.
func (s *Stores) Close() {
	s.close()
}

// NewService builds the License Service on top of the stores.
func NewService(st *Stores, cfg config.ServerConfig, logger log.Logger) *service.Service {
	var opts []service.Option
	if cfg.DefaultMaxDevices > 0 {
		opts = append(opts, service.WithDefaultMaxDevices(cfg.DefaultMaxDevices))
	}

	return service.New(st.Licenses, st.Devices, st.Audits, logger, opts...)
}
