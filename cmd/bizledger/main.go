package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/enjaz/bizledger/internal/application/analytics"
	"github.com/enjaz/bizledger/internal/application/dto"
	"github.com/enjaz/bizledger/internal/application/report"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/repository"
	"github.com/enjaz/bizledger/internal/infrastructure/filestore"
	"github.com/enjaz/bizledger/internal/infrastructure/memory"
	"github.com/enjaz/bizledger/internal/infrastructure/postgres"
	"github.com/enjaz/bizledger/pkg/config"
	"github.com/enjaz/bizledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer closeStore()

	app := build(store, cfg, log)

	if err := app.settings.LoadPermissions(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar matriz de permisos")
	}
	if err := app.auth.EnsureOwner(ctx, cfg.Payroll.OwnerUsername, cfg.Payroll.OwnerPassword); err != nil {
		log.Fatal().Err(err).Msg("sembrar super administrador")
	}

	if err := logSummary(ctx, app.dashboard, log); err != nil {
		log.Fatal().Err(err).Msg("resumen del tablero")
	}
	if pg, ok := store.(*postgres.KVStore); ok {
		sales, err := pg.SumNumeric(ctx, "invoices", "amount")
		if err != nil {
			log.Warn().Err(err).Msg("suma de ventas en base")
		} else {
			log.Info().Str("total_sales", sales.String()).Msg("ventas según PostgreSQL")
		}
	}

	if cfg.Export.Dir != "" {
		if err := exportAll(ctx, app.reports, cfg.Export.Dir, log); err != nil {
			log.Fatal().Err(err).Msg("exportar listados")
		}
	}
	log.Info().Msg("listo")
}

// openStore abre el adaptador configurado. La función devuelta libera recursos.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreFile:
		fs, err := filestore.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() { _ = fs.Close() }, nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		kvs, err := postgres.NewKVStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return kvs, pool.Close, nil
	default:
		return memory.NewStore(), func() {}, nil
	}
}

func logSummary(ctx context.Context, uc *analytics.DashboardUseCase, log *logger.Logger) error {
	s, err := uc.GetSummary(ctx)
	if err != nil {
		return err
	}
	log.Info().
		Str("total_sales", s.Metrics.TotalSales.String()).
		Str("total_expenses", s.Metrics.TotalExpenses.String()).
		Str("net_profit", s.Metrics.NetProfit.String()).
		Str("receivables", s.Balances.TotalReceivables.String()).
		Str("payables", s.Balances.TotalPayables.String()).
		Str("cash_on_hand", s.Cash.CashOnHand.String()).
		Int("outstanding", s.OutstandingCount).
		Int("low_stock", len(s.LowStock)).
		Int("employees", s.EmployeeCount).
		Str("payroll", s.PayrollTotal.String()).
		Msg("resumen del tablero")
	return nil
}

// exportAll escribe cada listado no vacío en CSV y XLSX dentro de dir.
func exportAll(ctx context.Context, uc *report.ReportUseCase, dir string, log *logger.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	actor := dto.Actor{UserID: entity.SuperAdminUserID, Role: entity.RoleOwner}
	for _, ds := range report.Datasets() {
		for _, f := range []report.Format{report.FormatCSV, report.FormatXLSX} {
			path := filepath.Join(dir, string(ds)+"."+string(f))
			if err := exportFile(ctx, uc, actor, ds, f, path); err != nil {
				log.Warn().Err(err).Str("dataset", string(ds)).Str("format", string(f)).Msg("exportación omitida")
			}
		}
	}
	return nil
}

func exportFile(ctx context.Context, uc *report.ReportUseCase, actor dto.Actor, ds report.Dataset, f report.Format, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := uc.Export(ctx, actor, ds, f, out); err != nil {
		out.Close()
		_ = os.Remove(path)
		return err
	}
	return out.Close()
}
