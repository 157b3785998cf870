// Package presets holds named configs of known networks.
package presets

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/aamultisig/go-aamultisig/config"
)

var presets = map[string]config.Config{}

func register(name string, conf config.Config) {
	if _, exists := presets[name]; exists {
		panic(fmt.Sprintf("preset with name %s already exists", name))
	}
	conf.Preset = name
	presets[name] = conf
}

// Options returns names of the registered presets.
func Options() []string {
	var rst []string
	for name := range presets {
		rst = append(rst, name)
	}
	sort.Strings(rst)
	return rst
}

// Get a copy of the preset by name.
func Get(name string) (config.Config, error) {
	conf, exists := presets[name]
	if !exists {
		return config.Config{}, fmt.Errorf("preset %s doesn't exist, available %v", name, Options())
	}
	conf.NextOwners = append([]common.Address(nil), conf.NextOwners...)
	conf.OwnerKeyFiles = append([]string(nil), conf.OwnerKeyFiles...)
	if conf.PrefundAmount != nil {
		conf.PrefundAmount = new(big.Int).Set(conf.PrefundAmount)
	}
	return conf, nil
}
