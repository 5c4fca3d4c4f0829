package crm

import (
	"github.com/carrierdesk/carrierdesk/internal/config"
	crmpushdomain "github.com/carrierdesk/carrierdesk/internal/crmpush/domain"
)

func Provide(cfg config.Config) crmpushdomain.CRMClient {
	return NewClient(cfg)
}
