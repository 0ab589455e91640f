package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/ingestion"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/kvstore"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ads-dashboard-api/internal/api"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/metrics"
	"github.com/vfg2006/ads-dashboard-api/internal/scheduler"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/account"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/period"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/syncing"
	"github.com/vfg2006/ads-dashboard-api/pkg/clock"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel, cfg.App.LogFormat)
	log.L.Infof("Nível de log configurado para: %s", cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	accountRepo := repository.NewAccountRepository(pgConn)
	accountGroupRepo := repository.NewAccountGroupRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	insightRepo := repository.NewInsightRepository(pgConn)

	m := metrics.NewMetrics(nil)
	loc := cfg.Location()
	clk := clock.Real()

	syncStateStore, closeStore := syncStore(ctx, cfg)
	defer closeStore()

	rankingEngine := ranking.NewEngine(
		cfg.Dashboard.TopCampaigns,
		utils.NewCurrencyFormatter(cfg.Dashboard.Locale, cfg.Dashboard.Currency),
	)

	syncer := syncing.NewSyncScheduler(syncing.Config{
		Enabled: cfg.Sync.Enabled,
		Policy: syncing.Policy{
			TodayThrottle:   cfg.Sync.TodayThrottle,
			DefaultThrottle: cfg.Sync.DefaultThrottle,
		},
		TodayInterval: cfg.Sync.TodayInterval,
		MaxDays:       cfg.Sync.MaxDays,
	}, syncStateStore, ingestion.NewClient(cfg), clk, m)

	periodic := scheduler.NewGocronPeriodic(loc)
	periodic.Start(ctx)

	manager := dashboard.NewManager(dashboard.Dependencies{
		Period:   period.NewResolver(loc, clk),
		Accounts: account.NewService(accountRepo, accountGroupRepo, cfg.Dashboard.DefaultPlatform),
		Loader:   insighting.NewService(campaignRepo, insightRepo, rankingEngine, cfg.Dashboard.CampaignLimit),
		Syncer:   syncer,
		Periodic: periodic,
		Metrics:  m,
	}, dashboard.ManagerConfig{
		ViewTTL:          cfg.Dashboard.ViewTTL,
		MaxViewsPerOwner: cfg.Dashboard.MaxViewsPerUser,
		Clock:            clk,
	})

	server, err := api.New(cfg, api.Dependencies{
		Manager:    manager,
		SyncStatus: syncer,
		Validator:  authenticating.NewService(cfg.Auth.Secret),
		Metrics:    m,
		Database:   pgConn,
	}, func() {
		manager.Close()
		syncer.Wait()
		periodic.Stop()
	})
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// chdirToSource permite encontrar o .env ao rodar com go run
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// syncStore escolhe onde guardar lastSyncAt. Sem Redis acessível o estado fica em memória.
func syncStore(ctx context.Context, cfg *config.Config) (kvstore.SyncStateStore, func()) {
	if cfg.Sync.StateBackend != "redis" {
		log.L.WithField("backend", cfg.Sync.StateBackend).Info("Estado de sincronização em memória")
		return kvstore.NewMemoryStore(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.L.WithError(err).WithField("addr", cfg.Redis.Addr).Warn("Redis indisponível, estado de sincronização em memória")
		client.Close()
		return kvstore.NewMemoryStore(), func() {}
	}

	log.L.WithField("addr", cfg.Redis.Addr).Info("Estado de sincronização no Redis")
	return kvstore.NewRedisStore(client, cfg.Sync.StateKeyPrefix), func() { client.Close() }
}
