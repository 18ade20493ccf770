package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/kelasi/kelasi/internal/billing"
	"github.com/spf13/viper"
)

// CatalogHolder serves the current plan catalog. billing.yml edits are
// picked up without a restart; an invalid file keeps the previous catalog.
type CatalogHolder struct {
	current atomic.Value // holds billing.Catalog
}

func NewCatalogHolder() (*CatalogHolder, error) {
	v := viper.New()

	v.SetConfigName("billing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/kelasi/config") // Volume-mounted config
	v.AddConfigPath("/etc/kelasi")            // System config
	v.AddConfigPath(".")                      // Current directory (dev mode)

	v.SetEnvPrefix("KELASI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	catalog := billing.DefaultCatalog()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No billing.yml: ship with the default catalog.
	} else {
		if err := v.UnmarshalKey("billing", &catalog); err != nil {
			return nil, err
		}
	}
	if err := validateCatalog(catalog); err != nil {
		return nil, err
	}

	holder := &CatalogHolder{}
	holder.current.Store(catalog)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated := billing.DefaultCatalog()
		if err := v.UnmarshalKey("billing", &updated); err != nil {
			log.Printf("[billing-config] reload failed: %v", err)
			return
		}
		if err := validateCatalog(updated); err != nil {
			log.Printf("[billing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[billing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *CatalogHolder) Get() billing.Catalog {
	return h.current.Load().(billing.Catalog)
}

func validateCatalog(catalog billing.Catalog) error {
	if len(catalog.Plans) == 0 {
		return errors.New("billing catalog has no plans")
	}
	for name, spec := range catalog.Plans {
		if spec.BaseMinor < 0 {
			return errors.New("plan " + name + " has a negative base price")
		}
		if spec.UnitPrices.PerCycleMinor < 0 || spec.UnitPrices.PerStudentMinor < 0 || spec.UnitPrices.PerStorageGBMinor < 0 {
			return errors.New("plan " + name + " has a negative unit price")
		}
	}
	for name, price := range catalog.ModulesMinor {
		if price < 0 {
			return errors.New("module " + name + " has a negative price")
		}
	}
	return nil
}
