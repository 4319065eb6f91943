package pricefeed

import (
	"context"
	"encoding/json"
	"time"

	"rwalend/core"
	"rwalend/pkg/number"
	"rwalend/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/jmoiron/sqlx/types"
	"github.com/robfig/cron/v3"
)

// Worker price feed worker, pulls a fresh appraisal for every active
// position so health checks always see a current valuation
type Worker struct {
	worker.BaseJob
	Config        *core.Config
	PositionStore core.IPositionStore
	PriceStore    core.IPriceStore
	OracleService core.IPriceOracleService
}

// New new price feed worker
func New(cfg *core.Config, positionStore core.IPositionStore, priceStore core.IPriceStore, oracleSrv core.IPriceOracleService) *Worker {
	job := Worker{
		Config:        cfg,
		PositionStore: positionStore,
		PriceStore:    priceStore,
		OracleService: oracleSrv,
	}

	l, _ := time.LoadLocation(job.Config.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 5m"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "pricefeed")

	if w.Config.Oracle.EndPoint == "" {
		return nil
	}

	positions, err := w.PositionStore.ListActive(ctx)
	if err != nil {
		log.WithError(err).Errorln("positions.ListActive")
		return err
	}

	for _, position := range positions {
		ticker, err := w.OracleService.PullPriceTicker(ctx, position.ItemID, time.Now())
		if err != nil {
			log.WithError(err).Errorln("pull price ticker:", position.ItemID)
			continue
		}

		if !ticker.Price.IsPositive() {
			log.Errorln("invalid ticker price:", ticker.ItemID, ":", ticker.Price)
			continue
		}

		content, _ := json.Marshal(ticker)
		price := &core.Price{
			ItemID:  position.ItemID,
			Price:   number.Truncate(ticker.Price),
			Content: types.JSONText(content),
		}
		if err := w.PriceStore.Save(ctx, price); err != nil {
			log.WithError(err).Errorln("prices.Save", position.ItemID)
			continue
		}
	}

	return nil
}
