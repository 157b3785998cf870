package deploy

import (
	"math/big"
)

// DefaultPrefundAmount is 0.0002 ETH in wei.
var DefaultPrefundAmount = big.NewInt(200_000_000_000_000)

// Config of the deployment flow.
type Config struct {
	// Owners is the number of owners of the deployed account.
	Owners int `mapstructure:"owners"`
	// Prefund the account from the deployer after it is deployed.
	Prefund       bool     `mapstructure:"prefund"`
	PrefundAmount *big.Int `mapstructure:"prefund-amount"`
}

// DefaultConfig returns a config that deploys a single owner account
// and prefunds it with DefaultPrefundAmount.
func DefaultConfig() Config {
	return Config{
		Owners:        1,
		Prefund:       true,
		PrefundAmount: new(big.Int).Set(DefaultPrefundAmount),
	}
}
