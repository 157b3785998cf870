package presets

import (
	"time"

	"github.com/aamultisig/go-aamultisig/config"
)

func init() {
	register("local", local())
}

func local() config.Config {
	conf := config.DefaultConfig()
	conf.Network.URL = "http://localhost:3050"
	conf.Network.ChainID = 270

	conf.RPC.RequestsPerSecond = 0
	conf.Receipt.PollInterval = 200 * time.Millisecond
	conf.Receipt.Timeout = time.Minute
	return conf
}
