package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"riskwatch/internal/alert"
	"riskwatch/internal/cache"
	"riskwatch/internal/config"
	"riskwatch/internal/llm"
	"riskwatch/internal/repository"
	"riskwatch/internal/repository/sqlstore"
	"riskwatch/internal/risk"
	"riskwatch/internal/screening"
	"riskwatch/internal/service"
	"riskwatch/internal/transport/rest"
	"riskwatch/internal/transport/ws"

	"github.com/redis/go-redis/v9"
)

// App wires every dependency of the HTTP service
type App struct {
	Config *config.Config
	Store  *repository.Store

	Engine     *risk.Engine
	Screener   *screening.Screener
	Dispatcher *alert.Dispatcher
	WSHub      *ws.Hub

	AuthService      *service.AuthService
	StudentService   *service.StudentService
	RiskService      *service.RiskService
	JournalService   *service.JournalService
	HistoryService   *service.HistoryService
	AnalyticsService *service.AnalyticsService

	rdb         *redis.Client
	stopRefresh func()
}

// OpenStore connects the configured persistence backend
func OpenStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		log.Printf("[Store] Using SQLite at %s", cfg.SQLitePath)
		return sqlstore.Open(ctx, cfg.SQLitePath)
	default:
		return repository.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	}
}

// NewEngine loads the model artifact, or the heuristic when it is absent
// and not required
func NewEngine(cfg *config.Config, n risk.Notifier) (*risk.Engine, error) {
	forest, err := risk.LoadModel(cfg.ModelPath, cfg.ModelRequired)
	if err != nil {
		return nil, err
	}
	if forest == nil {
		log.Printf("[Risk] No model at %s, using heuristic scoring", cfg.ModelPath)
	} else {
		log.Printf("[Risk] Loaded model with %d trees from %s", len(forest.Trees), cfg.ModelPath)
	}
	w := cfg.HeuristicWeights
	weights := risk.HeuristicWeights{
		Attendance:      w.Attendance,
		GPA:             w.GPA,
		FinancialStress: w.FinancialStress,
		FamilySupport:   w.FamilySupport,
	}
	return risk.NewEngineFromForest(forest, weights, n), nil
}

// New builds the application. Close releases everything it opened.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Store = store

	// Caches
	var analyticsCache cache.AnalyticsCache
	var feed cache.AlertFeed
	var board cache.RiskBoard
	if cfg.CacheBackend == config.CacheRedis {
		a.rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if _, err := a.rdb.Ping(ctx).Result(); err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("ping Redis: %w", err)
		}
		log.Println("[Cache] Connected to Redis")
		analyticsCache = cache.NewAnalyticsCache(a.rdb, cfg.AnalyticsTTL)
		feed = cache.NewAlertFeed(a.rdb)
		board = cache.NewRiskBoard(a.rdb)
	} else {
		analyticsCache = cache.NewMemoryAnalyticsCache(cfg.AnalyticsTTL)
		feed = cache.NewMemoryAlertFeed()
		board = cache.NewMemoryRiskBoard()
	}

	// Alerts fan out to logs, live counselors and the recent feed
	a.WSHub = ws.NewHub()
	a.Dispatcher = alert.NewDispatcher(cfg.AlertQueueSize, alert.LogSink{}, a.WSHub, feed)

	a.Engine, err = NewEngine(cfg, a.Dispatcher)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	// Text screening
	var provider llm.Provider
	if cfg.AI.IsEnabled() {
		provider, err = llm.NewProvider(ctx, llm.Config{
			Provider: cfg.AI.Provider,
			APIKey:   cfg.AI.APIKey,
			Model:    cfg.AI.Model,
			BaseURL:  cfg.AI.BaseURL,
		})
		if err != nil {
			log.Printf("[LLM] Provider %s unavailable, using keyword screening: %v", cfg.AI.Provider, err)
			provider = nil
		} else if provider != nil {
			log.Printf("[LLM] Screening with %s", provider.ModelID())
		}
	} else {
		log.Println("[LLM] No provider configured, using keyword screening")
	}
	a.Screener = screening.NewScreener(provider, nil, cfg.AI.Timeout())

	// Services
	a.AuthService = service.NewAuthService(store.Users, cfg.JWTSecret, cfg.TokenTTL)
	a.StudentService = service.NewStudentService(store.Students)
	a.RiskService = service.NewRiskService(a.Engine, store.Students, store.Assessments)
	a.RiskService.SetRiskBoard(board)
	a.JournalService = service.NewJournalService(a.Screener, a.Dispatcher, store.Students, store.Journals)
	a.HistoryService = service.NewHistoryService(store.Students, store.Assessments)
	a.AnalyticsService = service.NewAnalyticsService(store, analyticsCache, feed)

	if cfg.AnalyticsRefresh != "" {
		a.stopRefresh, err = a.AnalyticsService.StartRefresher(cfg.AnalyticsRefresh)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("schedule analytics refresh: %w", err)
		}
	}

	return a, nil
}

// Router builds the HTTP handler
func (a *App) Router() http.Handler {
	return rest.NewRouter(&rest.Container{
		AuthService:      a.AuthService,
		StudentService:   a.StudentService,
		RiskService:      a.RiskService,
		JournalService:   a.JournalService,
		HistoryService:   a.HistoryService,
		AnalyticsService: a.AnalyticsService,
		WSHub:            a.WSHub,
		CORSOrigins:      a.Config.CORSOrigins,
	})
}

// Close stops background work and disconnects backends
func (a *App) Close(ctx context.Context) {
	if a.stopRefresh != nil {
		a.stopRefresh()
	}
	if a.Dispatcher != nil {
		a.Dispatcher.Close()
	}
	if a.WSHub != nil {
		a.WSHub.Close()
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			log.Printf("[Cache] Redis close failed: %v", err)
		}
	}
	if a.Store != nil && a.Store.Close != nil {
		if err := a.Store.Close(ctx); err != nil {
			log.Printf("[Store] Close failed: %v", err)
		}
	}
}
