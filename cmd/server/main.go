package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agniro/config"
	"agniro/database"
	"agniro/pkg/ai"
	"agniro/pkg/logger"
	"agniro/pkg/session"
	"agniro/pkg/video"
	"agniro/router"

	// Storage
	storageRepo "agniro/pkg/storage/repository"
	kvRepoImp "agniro/pkg/storage/repositoryImp"

	// Controllers
	advisorCtrlImp "agniro/pkg/advisor/controllerImp"
	articleCtrlImp "agniro/pkg/article/controllerImp"
	articleSvcImp "agniro/pkg/article/serviceImp"
	authCtrlImp "agniro/pkg/auth/controllerImp"
	climateCtrlImp "agniro/pkg/climate/controllerImp"
	cropCtrlImp "agniro/pkg/crop/controllerImp"
	healthCtrlImp "agniro/pkg/health/controllerImp"
	videoCtrlImp "agniro/pkg/video/controllerImp"
)

func main() {
	// 1) Config + logger
	cfg, warnings := config.Load()
	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log = logger.Must(cfg.AppEnv, "")
		log.Warn("bad LOG_LEVEL, using default", zap.Error(err))
	}
	defer log.Sync() //nolint:errcheck
	for _, w := range warnings {
		log.Warn("config", zap.String("problem", w))
	}
	log.Info("config loaded", cfg.Fields()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2) Storage: sqlite unless DB_PATH=":memory:"
	var (
		db    *gorm.DB
		store storageRepo.KVRepository
	)
	if cfg.DBPath == ":memory:" {
		store = kvRepoImp.NewMemory()
		log.Warn("using in-memory storage; data is lost on exit")
	} else {
		db, err = database.OpenSQLite(cfg.DBPath, log)
		if err != nil {
			log.Fatal("open database", zap.Error(err))
		}
		store = kvRepoImp.New(db)
	}

	// 3) Sessions
	sessions := session.NewRegistry(store, log, nil)
	janitor := sessions.Start(ctx, 10*time.Minute, cfg.SessionIdle)

	// 4) AI (mock fallback)
	llm, err := ai.Select(ctx, cfg.AI)
	if err != nil {
		log.Error("AI provider unavailable, using offline mock", zap.Error(err))
		llm = ai.NewMock()
	}
	flows := ai.NewFlows(llm, log.Named("ai"), cfg.AITimeout)

	// 5) Controllers
	articleSvc := articleSvcImp.New(flows, cfg.Country, log, nil)
	ctl := router.Controllers{
		Crops:    cropCtrlImp.New(sessions, log),
		Articles: articleCtrlImp.New(sessions, articleSvc, log),
		Videos:   videoCtrlImp.New(sessions, video.NewPreviewer(cfg.VideoPreviewTimeout), log),
		Advisor:  advisorCtrlImp.New(flows, sessions, cfg.Country, log),
		Auth:     authCtrlImp.NewAuthController(sessions),
		Climate:  climateCtrlImp.New(),
		Health:   healthCtrlImp.NewHealthCtrl(db, cfg.AI.ResolveProvider(), sessions.Len, log),
	}

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.New(e, log, ctl, router.Options{SecureCookies: cfg.SecureCookies, Hold: sessions.Middleware()})

	// 7) Start
	go func() {
		log.Info("listening", zap.String("addr", ":"+cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	}()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	<-janitor
	log.Info("stopped")
}
