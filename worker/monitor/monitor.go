package monitor

import (
	"context"
	"time"

	"rwalend/core"
	"rwalend/worker"

	"github.com/fatih/structs"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/robfig/cron/v3"
)

const checkpointKey = "monitor_checkpoint"

// Worker health monitor worker. It scans active positions and reports
// the ones eligible for liquidation; it never starts an auction itself.
type Worker struct {
	worker.BaseJob
	Config             *core.Config
	Property           property.Store
	PositionStore      core.IPositionStore
	LiquidationService core.ILiquidationService
}

// New new monitor worker
func New(cfg *core.Config, propertyStore property.Store, positionStore core.IPositionStore, liquidationSrv core.ILiquidationService) *Worker {
	job := Worker{
		Config:             cfg,
		Property:           propertyStore,
		PositionStore:      positionStore,
		LiquidationService: liquidationSrv,
	}

	l, _ := time.LoadLocation(job.Config.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 1m"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "monitor")

	positions, err := w.PositionStore.ListActive(ctx)
	if err != nil {
		log.WithError(err).Errorln("positions.ListActive")
		return err
	}

	for _, position := range positions {
		if position.Debt.IsZero() {
			continue
		}

		healthy, err := w.LiquidationService.CheckHealth(ctx, position.ItemID)
		if err != nil {
			log.WithError(err).Errorln("checkHealth", position.ItemID)
			continue
		}

		if !healthy {
			log.WithFields(structs.Map(position)).Warningln("position under water")
		}
	}

	if err := w.Property.Save(ctx, checkpointKey, time.Now()); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}
