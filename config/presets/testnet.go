package presets

import (
	"time"

	"github.com/aamultisig/go-aamultisig/config"
)

func init() {
	register("testnet", testnet())
}

func testnet() config.Config {
	conf := config.DefaultConfig()
	conf.Network.URL = "https://zksync2-testnet.zksync.dev"
	conf.Network.ChainID = 280

	conf.RPC.RequestsPerSecond = 5
	conf.RPC.RetryDelay = 2 * time.Second

	conf.Receipt.PollInterval = 2 * time.Second
	conf.Receipt.Timeout = 10 * time.Minute
	return conf
}
