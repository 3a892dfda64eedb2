package main

import (
	"context"
	"time"

	"tally/internal/amqp"
	"tally/internal/cli"
	applog "tally/internal/log"
	"tally/internal/services"
)

func main() {
	cli.LoadEnvFile()
	slogger := cli.SetupLogger()

	logger := applog.New(applog.ComponentWorker)
	logger.Info("Starting alert-worker", applog.FieldOperation, applog.OpStartup)

	cfg := cli.LoadAndValidateConfig(slogger)

	result := cli.InitBackend(slogger, cfg)
	defer result.Cleanup()

	// AMQP client for publishing budget alerts. Without it the worker
	// still evaluates, alerts just stay in the logs.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without alerts",
				applog.NewFields().WithError(err).ToSlice()...)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled - budget alerts will not be published")
	}

	budgets := services.NewBudgetService(result.Store, amqpClient)

	// Cleanup stays with the defers above; the shutdown hook only has to
	// unblock the loop.
	ctx, done := cli.GracefulShutdown(slogger, 30*time.Second, nil)

	logger.Info("Budget checker configured",
		"interval", cfg.AlertInterval.String(),
		applog.FieldUserID, cfg.UserID,
		applog.FieldCycleStart, cfg.CycleStartDay)

	ticker := time.NewTicker(cfg.AlertInterval)
	defer ticker.Stop()

	// Run an initial check on startup.
	runCheck(ctx, logger, budgets, cfg.UserID, cfg.CycleStartDay, time.Now())

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				runCheck(ctx, logger, budgets, cfg.UserID, cfg.CycleStartDay, now)
			}
		}
	}()

	cli.WaitForShutdown(ctx, done)
	logger.Info("Alert-worker stopped", applog.FieldOperation, applog.OpShutdown)
}

func runCheck(ctx context.Context, logger *applog.Logger, budgets *services.BudgetService, userID string, startDay int, now time.Time) {
	reports, notifications, err := budgets.CheckBudgets(ctx, userID, now, startDay)
	if err != nil {
		logger.Error("Budget check failed",
			applog.NewFields().WithOperation(applog.OpCheck).WithError(err).ToSlice()...)
		return
	}

	logger.Info("Budget check complete",
		"goals_evaluated", len(reports),
		"alerts_raised", len(notifications))

	for _, n := range notifications {
		fields := applog.NewFields().
			WithOperation(applog.OpCheck).
			WithBudget(n.GoalID, n.Category, string(n.Status))
		logger.Warn(n.Title, fields.ToSlice()...)
	}
}
