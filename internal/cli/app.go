package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/foerdercheck/internal/advisor"
	"github.com/vijay-prabhu/foerdercheck/internal/catalog"
	"github.com/vijay-prabhu/foerdercheck/internal/config"
	"github.com/vijay-prabhu/foerdercheck/internal/database"
	"github.com/vijay-prabhu/foerdercheck/internal/eligibility"
	"github.com/vijay-prabhu/foerdercheck/internal/locale"
	"github.com/vijay-prabhu/foerdercheck/internal/logger"
	"github.com/vijay-prabhu/foerdercheck/internal/metrics"
	"github.com/vijay-prabhu/foerdercheck/internal/ranking"
)

// app holds everything a command needs to answer requests
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	db       *database.DB
	advisor  *advisor.Advisor
}

// openApp loads the configuration and wires the catalog source, evaluator and
// ranker. The database is opened when it backs the catalog or needDB is set.
func openApp(ctx context.Context, needDB bool) (*app, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	if langFlag != "" {
		cfg.Locale.Language = langFlag
	}

	log, err := logger.New(cfg.Logging.JSON, cfg.Logging.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	msgs, err := locale.New(cfg.Locale.Language)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   log,
		registry: prometheus.NewRegistry(),
	}
	a.metrics = metrics.New(a.registry)

	if needDB || cfg.Catalog.Source == config.SourceDatabase {
		if err := cfg.EnsureDirectories(); err != nil {
			return nil, err
		}
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.db = db
	}

	source, err := a.catalogSource(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	evaluator := eligibility.NewEvaluator(
		eligibility.WithMessages(msgs),
		eligibility.WithLogger(log),
		eligibility.WithMetrics(a.metrics),
	)
	ranker := ranking.New(cfg.Ranking, ranking.WithMessages(msgs))

	a.advisor = advisor.New(source, evaluator, ranker,
		advisor.WithLogger(log),
		advisor.WithMetrics(a.metrics),
		advisor.WithOnlyAutomatable(cfg.Ranking.OnlyAutomatable),
	)
	return a, nil
}

// catalogSource picks the configured source. An empty database falls back
// to the built-in seed so a fresh install answers requests.
func (a *app) catalogSource(ctx context.Context) (catalog.Source, error) {
	switch a.cfg.Catalog.Source {
	case config.SourceFile:
		return catalog.NewFile(a.cfg.Catalog.File), nil
	case config.SourceSeed:
		return catalog.SeedSource()
	default:
		count, err := a.db.CountPrograms(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count programs: %w", err)
		}
		if count == 0 {
			a.logger.Warn("program catalog is empty, using the built-in seed",
				zap.String("hint", "run 'foerdercheck programs seed'"))
			return catalog.SeedSource()
		}
		return a.db, nil
	}
}

// Close releases the database and flushes the logger
func (a *app) Close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	// Sync on stderr fails on some platforms; ignore it
	_ = a.logger.Sync()
	return errors.Join(errs...)
}
