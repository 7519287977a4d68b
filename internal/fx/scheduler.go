package fx

import (
	"context"
	"time"

	"Finora/config"
	"Finora/internal/domain/report"
	"Finora/internal/logger"

	"go.uber.org/fx"
)

// SchedulerModule dispara o ciclo de relatórios em intervalos fixos. A
// seleção por next_report_date torna execuções repetidas baratas.
var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(startReportScheduler),
)

func startReportScheduler(lc fx.Lifecycle, cfg *config.Config, jobSvc *report.JobService) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			interval := cfg.Report.JobInterval
			logger.Info().
				Dur("interval", interval).
				Msg("Agendador de relatórios iniciado")

			go run(ctx, interval, jobSvc)
			return nil
		},
		OnStop: func(context.Context) error {
			logger.Info().Msg("Agendador de relatórios parando...")
			cancel()
			return nil
		},
	})
}

func run(ctx context.Context, interval time.Duration, jobSvc *report.JobService) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			jobSvc.RunReportJob(ctx)
		}
	}
}
