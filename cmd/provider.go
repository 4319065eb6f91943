package cmd

import (
	"time"

	"rwalend/core"
	ledgerservice "rwalend/service/ledger"
	liquidationservice "rwalend/service/liquidation"
	oracleservice "rwalend/service/oracle"
	poolservice "rwalend/service/pool"
	registryservice "rwalend/service/registry"
	vaultservice "rwalend/service/vault"
	"rwalend/store/account"
	"rwalend/store/auction"
	"rwalend/store/collateral"
	"rwalend/store/ledger"
	"rwalend/store/position"
	"rwalend/store/price"
	"rwalend/store/transfer"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

// inMemoryMode trades persistence for a zero-setup playground; every
// store lives in process memory
var inMemoryMode bool

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

type storeSet struct {
	property   property.Store
	position   core.IPositionStore
	account    core.IPoolAccountStore
	auction    core.IAuctionStore
	price      core.IPriceStore
	collateral core.ICollateralStore
	ledger     core.ILedgerStore
	transfer   core.ITransferStore
}

func provideStores() *storeSet {
	if inMemoryMode {
		return &storeSet{
			position:   position.Memory(),
			account:    account.Memory(),
			auction:    auction.Memory(),
			price:      price.Memory(),
			collateral: collateral.Memory(),
			ledger:     ledger.Memory(),
			transfer:   transfer.Memory(),
		}
	}

	database := provideDatabase()
	return &storeSet{
		property:   propertystore.New(database),
		position:   position.New(database),
		account:    account.New(database),
		auction:    auction.New(database),
		price:      price.New(database),
		collateral: collateral.Cache(collateral.New(database), time.Minute),
		ledger:     ledger.New(database),
		transfer:   transfer.New(database),
	}
}

// ------------------service------------------------------------

type serviceSet struct {
	stableLedger core.IStableLedgerService
	registry     core.ICollateralRegistry
	oracle       core.IPriceOracleService
	pool         core.IPoolService
	vault        core.IVaultService
	liquidation  core.ILiquidationService
}

func provideServices(stores *storeSet) *serviceSet {
	stableLedger := ledgerservice.New(provideConfig(), stores.ledger)
	registry := registryservice.New(provideConfig(), stores.collateral)
	oracle := oracleservice.New(provideConfig(), stores.price)
	pool := poolservice.New(provideConfig(), stores.account, stores.transfer, stableLedger)
	vault := vaultservice.New(provideConfig(), stores.position, registry, oracle, pool)
	liquidation := liquidationservice.New(provideConfig(), stores.auction, stores.position, stores.transfer, vault, oracle, pool, stableLedger, registry)

	return &serviceSet{
		stableLedger: stableLedger,
		registry:     registry,
		oracle:       oracle,
		pool:         pool,
		vault:        vault,
		liquidation:  liquidation,
	}
}
