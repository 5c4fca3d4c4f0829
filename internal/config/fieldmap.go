package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// DefaultFieldMapping is one seed entry for a newly configured org.
type DefaultFieldMapping struct {
	CarrierField  string `mapstructure:"carrierField"`
	ExternalField string `mapstructure:"externalField"`
	FieldType     string `mapstructure:"fieldType"`
}

// DefaultFieldMappings returns the built-in seed set used when no
// fieldmap.yml override is present.
func DefaultFieldMappings() []DefaultFieldMapping {
	return []DefaultFieldMapping{
		{CarrierField: "legal_name", ExternalField: "Name", FieldType: "text"},
		{CarrierField: "phone", ExternalField: "Phone", FieldType: "text"},
		{CarrierField: "physical_address", ExternalField: "BillingStreet", FieldType: "text"},
		{CarrierField: "mailing_address", ExternalField: "ShippingStreet", FieldType: "text"},
		{CarrierField: "usdot", ExternalField: "AccountNumber", FieldType: "text"},
		{CarrierField: "entity_type", ExternalField: "Type", FieldType: "text"},
		{CarrierField: "usdot_status", ExternalField: "Description", FieldType: "text"},
		{CarrierField: "url", ExternalField: "Website", FieldType: "text"},
	}
}

// FieldMappingDefaultsHolder serves the current default mapping set and
// hot-reloads it when the backing config file changes.
type FieldMappingDefaultsHolder struct {
	current atomic.Value // holds []DefaultFieldMapping
}

func NewFieldMappingDefaultsHolder() (*FieldMappingDefaultsHolder, error) {
	v := viper.New()

	v.SetConfigName("fieldmap")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/carrierdesk/config")
	v.AddConfigPath("/etc/carrierdesk")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CARRIERDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		v.SetDefault("fieldmap.defaults", DefaultFieldMappings())
	}

	var defaults []DefaultFieldMapping
	if err := v.UnmarshalKey("fieldmap.defaults", &defaults); err != nil {
		return nil, err
	}
	if err := validateFieldMappingDefaults(defaults); err != nil {
		return nil, err
	}

	holder := &FieldMappingDefaultsHolder{}
	holder.current.Store(defaults)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated []DefaultFieldMapping
		if err := v.UnmarshalKey("fieldmap.defaults", &updated); err != nil {
			log.Printf("[fieldmap-config] reload failed: %v", err)
			return
		}
		if err := validateFieldMappingDefaults(updated); err != nil {
			log.Printf("[fieldmap-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[fieldmap-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *FieldMappingDefaultsHolder) Get() []DefaultFieldMapping {
	return h.current.Load().([]DefaultFieldMapping)
}

func validateFieldMappingDefaults(defaults []DefaultFieldMapping) error {
	if len(defaults) == 0 {
		return errors.New("fieldmap.defaults cannot be empty")
	}
	seen := make(map[string]struct{}, len(defaults))
	for _, d := range defaults {
		if strings.TrimSpace(d.CarrierField) == "" || strings.TrimSpace(d.ExternalField) == "" {
			return errors.New("fieldmap.defaults entries require carrierField and externalField")
		}
		if _, dup := seen[d.CarrierField]; dup {
			return errors.New("fieldmap.defaults contains duplicate carrierField " + d.CarrierField)
		}
		seen[d.CarrierField] = struct{}{}
	}
	return nil
}
