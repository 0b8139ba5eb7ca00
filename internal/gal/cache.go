package gal

import (
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

const configCacheSize = 32

// ConfigCache resolves chip references to layouts and remembers them. It is
// safe for concurrent use.
type ConfigCache struct {
	arc *lru.ARCCache
}

func NewConfigCache() *ConfigCache {
	arc, _ := lru.NewARC(configCacheSize)
	return &ConfigCache{arc: arc}
}

// Load returns the layout for ref, which is either a path to a JSON chip
// description or a device name accepted by ParseChip.
func (c *ConfigCache) Load(ref string) (Config, error) {
	if v, ok := c.arc.Get(ref); ok {
		return v.(Config).clone(), nil
	}
	var (
		cfg Config
		err error
	)
	if strings.HasSuffix(strings.ToLower(ref), ".json") {
		cfg, err = LoadConfigFile(ref)
	} else {
		cfg, err = ParseChip(ref)
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "load chip %q", ref)
	}
	c.arc.Add(ref, cfg)
	return cfg.clone(), nil
}

func (c *ConfigCache) Len() int { return c.arc.Len() }
