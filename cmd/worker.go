package cmd

import (
	"context"

	"rwalend/worker"
	"rwalend/worker/monitor"
	"rwalend/worker/pricefeed"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "rwalend background jobs",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		stores := provideStores()
		services := provideServices(stores)

		jobs := []worker.IJob{
			monitor.New(provideConfig(), stores.property, stores.position, services.liquidation),
			pricefeed.New(provideConfig(), stores.position, stores.price, services.oracle),
		}

		for _, job := range jobs {
			if err := job.Start(); err != nil {
				log.WithError(err).Fatalln("start job failed")
			}
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()
			close(done)
		})

		<-done

		for _, job := range jobs {
			if err := job.Stop(); err != nil {
				log.WithError(err).Errorln("stop job failed")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
