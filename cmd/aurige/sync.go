package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/candilib/DTE-BookingService/internal/config"
	candidatRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/candidat"
	placeRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/place"
	"github.com/candilib/DTE-BookingService/internal/integrations/mailer"
	"github.com/candilib/DTE-BookingService/internal/service/eligibility"
	"github.com/candilib/DTE-BookingService/internal/usecase/sync_aurige"
	"github.com/candilib/DTE-BookingService/pkg/logger"
	"github.com/candilib/DTE-BookingService/pkg/simpletxmanager"
)

func newSyncCmd() *cobra.Command {
	var (
		configPath string
		filePath   string
	)

	c := &cobra.Command{
		Use:   "sync",
		Short: "Обработать файл выгрузки Aurige",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
			if err != nil {
				return err
			}
			defer log.Close()

			// Читаем выгрузку до открытия соединений
			f, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("failed to open batch file: %w", err)
			}
			defer f.Close()

			records, err := sync_aurige.ParseBatch(f)
			if err != nil {
				return err
			}

			db, err := sql.Open("postgres", cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
			db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

			if err := db.Ping(); err != nil {
				return fmt.Errorf("failed to ping database: %w", err)
			}

			var notifier sync_aurige.Notifier
			if cfg.Notifier.Enabled {
				client, err := mailer.NewClient(cfg.Notifier.URL, cfg.Notifier.Exchange, log)
				if err != nil {
					return fmt.Errorf("failed to connect to notification broker: %w", err)
				}
				defer client.Close()
				notifier = client
			}

			rules := eligibility.Rules{
				DelayToBook:      cfg.Booking.DelayToBook,
				TimeoutToRetry:   cfg.Booking.TimeoutToRetry,
				DaysForbidCancel: cfg.Booking.DaysForbidCancel,
			}

			uc := sync_aurige.NewUseCase(
				candidatRepo.NewRepository(db),
				placeRepo.NewRepository(db),
				rules,
				simpletxmanager.NewTransactionManager(db),
				notifier,
				log,
			)

			report, err := uc.Execute(context.Background(), records)
			if err != nil {
				return err
			}

			// Отчет в stdout, подробности в логе
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	c.Flags().StringVar(&configPath, "config", "config.toml", "путь к файлу конфигурации")
	c.Flags().StringVar(&filePath, "file", "", "путь к файлу выгрузки Aurige (JSON)")
	_ = c.MarkFlagRequired("file")

	return c
}
