package billing

import (
	"github.com/carrierdesk/carrierdesk/internal/config"
	subscriptiondomain "github.com/carrierdesk/carrierdesk/internal/subscription/domain"
)

func Provide(cfg config.Config) subscriptiondomain.BillingProcessor {
	return NewClient(cfg)
}
