package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config rwalend config
type Config struct {
	App    App       `json:"app"`
	DB     db.Config `json:"db"`
	Oracle Oracle    `json:"oracle"`
	Admins []string  `json:"admins"`
}

// App app config
type App struct {
	Location string `json:"location"`
	// PoolAccount is the custody address holding all deposited liquidity
	PoolAccount string `json:"pool_account" valid:"required"`
	// VaultAccount is the custody address holding locked collateral items
	VaultAccount string `json:"vault_account" valid:"required"`
	// EngineAccount is the escrow address holding the leading bid of each auction
	EngineAccount string `json:"engine_account" valid:"required"`
}

// Oracle price feed config
type Oracle struct {
	EndPoint string `json:"end_point"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(address string) bool {
	if len(c.Admins) <= 0 {
		return false
	}

	for _, a := range c.Admins {
		if a == address {
			return true
		}
	}

	return false
}
