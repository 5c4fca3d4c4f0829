package migration

import (
	carrierdomain "github.com/carrierdesk/carrierdesk/internal/carrier/domain"
	"github.com/carrierdesk/carrierdesk/internal/config"
	fieldmappingdomain "github.com/carrierdesk/carrierdesk/internal/fieldmapping/domain"
	membershipdomain "github.com/carrierdesk/carrierdesk/internal/membership/domain"
	subscriptiondomain "github.com/carrierdesk/carrierdesk/internal/subscription/domain"
	historydomain "github.com/carrierdesk/carrierdesk/internal/synchistory/domain"
	syncdomain "github.com/carrierdesk/carrierdesk/internal/syncstatus/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// SQL migrations target postgres; dev sqlite databases are built
		// from the models directly.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&carrierdomain.CarrierRecord{},
				&syncdomain.CrmSyncStatus{},
				&historydomain.CrmSyncHistory{},
				&fieldmappingdomain.FieldMapping{},
				&membershipdomain.AppUser{},
				&membershipdomain.AppOrg{},
				&membershipdomain.UserOrgMembership{},
				&subscriptiondomain.SubscriptionMapping{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
