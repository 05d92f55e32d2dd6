package roi

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Holder serves the current ROI configuration, hot-reloading it when the
// backing file changes. Estimates always read one immutable snapshot.
type Holder struct {
	current atomic.Value // holds Config
}

func NewHolder() (*Holder, error) {
	v := viper.New()

	v.SetConfigName("roi")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/usagemetrics")
	v.AddConfigPath(".")

	v.SetEnvPrefix("USAGEMETRICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}

	var overrides Config
	if err := v.UnmarshalKey("roi", &overrides); err != nil {
		return nil, err
	}
	cfg := MergeWithDefaults(overrides)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	holder := &Holder{}
	holder.current.Store(cfg)

	if fileFound {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			var updated Config
			if err := v.UnmarshalKey("roi", &updated); err != nil {
				log.Printf("[roi-config] reload failed: %v", err)
				return
			}
			merged := MergeWithDefaults(updated)
			if err := validateConfig(merged); err != nil {
				log.Printf("[roi-config] invalid config ignored: %v", err)
				return
			}
			holder.current.Store(merged)
			log.Printf("[roi-config] reloaded from %s", e.Name)
		})
	}

	return holder, nil
}

func (h *Holder) Get() Config {
	return h.current.Load().(Config)
}

func validateConfig(cfg Config) error {
	if len(cfg.MinutesPerFeature) == 0 {
		return errors.New("roi.minutesPerFeature cannot be empty")
	}
	if cfg.DefaultHourlyRate <= 0 {
		return errors.New("roi.defaultHourlyRate must be positive")
	}
	for feature, minutes := range cfg.MinutesPerFeature {
		if minutes <= 0 {
			return errors.New("roi.minutesPerFeature." + feature + " must be positive")
		}
	}
	return nil
}
