package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davinci-coder-club/clubsite/internal/audit"
	"github.com/davinci-coder-club/clubsite/internal/config"
	"github.com/davinci-coder-club/clubsite/internal/database"
	auditrepo "github.com/davinci-coder-club/clubsite/internal/database/audit"
	http_controllers "github.com/davinci-coder-club/clubsite/internal/http"
	"github.com/davinci-coder-club/clubsite/internal/importers"
	"github.com/davinci-coder-club/clubsite/internal/metrics"
	"github.com/davinci-coder-club/clubsite/internal/scheduler"
	"github.com/davinci-coder-club/clubsite/internal/services"
	"github.com/davinci-coder-club/clubsite/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Stop background work after the server no longer accepts uploads
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// BuildAliases returns the built-in alias table extended with the
// overrides file, if one is configured.
func BuildAliases(path string) (importers.AliasTable, error) {
	aliases := importers.DefaultAliases()
	if path == "" {
		return aliases, nil
	}

	overrides, err := importers.LoadAliasOverrides(path)
	if err != nil {
		return nil, err
	}
	if err := aliases.Merge(overrides); err != nil {
		return nil, fmt.Errorf("invalid alias overrides in %s: %w", path, err)
	}
	return aliases, nil
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Club Site v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	store := database.NewImportStore(db)

	aliases, err := BuildAliases(cfg.Import.AliasesFile)
	if err != nil {
		log.Fatalf("Failed to load field aliases: %v", err)
	}
	if cfg.Import.AliasesFile != "" {
		log.Printf("Loaded field alias overrides from %s", cfg.Import.AliasesFile)
	}

	opts := []importers.Option{importers.WithAliases(aliases)}

	var importMetrics *metrics.ImportMetrics
	if cfg.Metrics.Enabled {
		importMetrics = metrics.NewImportMetrics()
		opts = append(opts, importers.WithRecorder(importMetrics))
	}

	importer := importers.NewImporter(store, opts...)

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))

	var archiver services.UploadArchiver
	if cfg.Import.ArchiveDir != "" {
		archiver = audit.NewArchiver(cfg.Import.ArchiveDir)
		log.Printf("Import uploads will be archived to %s", cfg.Import.ArchiveDir)
	}

	importService := services.NewImportService(importer, auditService, archiver)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var cleanupScheduler *scheduler.AuditCleanupScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}

		taskClient.Register(
			tasks.NewImportFileQueue(importService),
			tasks.NewCleanupAuditEventsQueue(auditService),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		cleanupScheduler = scheduler.NewAuditCleanupScheduler(taskClient, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
		if err := cleanupScheduler.Start(taskCtx); err != nil {
			log.Printf("WARNING: Failed to start audit cleanup scheduler: %v", err)
		}
	} else {
		log.Printf("Task queue disabled - background imports and audit cleanup are unavailable")
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		Importer:       importService,
		Members:        store.Members,
		Projects:       store.Projects,
		Events:         store.Events,
		AuditReader:    auditService,
		MaxUploadBytes: cfg.Import.MaxUploadBytes,
		DefaultAddedBy: cfg.Import.AddedBy,
		Version:        version,
	}
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}
	if importMetrics != nil {
		routerCfg.MetricsHandler = importMetrics.Handler()
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}
		auditService.Wait()
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	Serve(router, cfg, onShutdown)
}
