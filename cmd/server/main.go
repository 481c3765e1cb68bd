package main

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"docpal/config"
	"docpal/database"
	"docpal/router"

	"docpal/pkg/assistant"
	"docpal/pkg/middleware"
	"docpal/pkg/provision"

	// Auth + Health
	authCtrlImp "docpal/pkg/auth/controllerImp"
	healthCtrlImp "docpal/pkg/health/controllerImp"

	// Chat
	chatCtrlImp "docpal/pkg/chat/controllerImp"
	chatRepoImp "docpal/pkg/chat/repositoryImp"
	chatSvcImp "docpal/pkg/chat/serviceImp"

	// Documents
	docCtrlImp "docpal/pkg/docs/controllerImp"
	docRepoImp "docpal/pkg/docs/repositoryImp"
	docSvcImp "docpal/pkg/docs/serviceImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 2) DB (sqlite) + automigrate
	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}

	// 3) Assistant service (in-memory mock when no key is configured)
	var client assistant.Client
	if cfg.AssistantAPIKey != "" {
		client = assistant.NewHTTP(cfg.AssistantControlURL, cfg.AssistantDataURL, cfg.AssistantAPIKey, cfg.AssistantModel)
	} else {
		logger.Warn("ASSISTANT_API_KEY not set, using in-memory mock assistant")
		client = assistant.NewMock()
	}

	// 4) Provisioner — the single assistant-creation path
	prov := provision.New(client, assistant.Config{
		Instructions: cfg.AssistantInstructions,
		Region:       cfg.AssistantRegion,
		Model:        cfg.AssistantModel,
	}, logger)

	// 5) Repos / services / controllers
	chatRepo := chatRepoImp.New(db)
	chatSvc := chatSvcImp.New(prov, chatRepo, logger)
	chatCtrl := chatCtrlImp.New(chatSvc, logger)

	docRepo := docRepoImp.New(db)
	docSvc := docSvcImp.New(prov, docRepo, cfg.StagingDir, logger)
	docCtrl := docCtrlImp.New(docSvc, logger)

	authCtrl := authCtrlImp.NewAuthController()
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())

	identityMW := middleware.DevLogin()
	if cfg.AuthSecret != "" {
		identityMW = middleware.Auth(cfg.AuthSecret)
	}

	r := router.New(e, identityMW, chatCtrl, docCtrl, authCtrl, hCtrl)

	// 7) Start
	logger.Info("listening", zap.String("port", cfg.Port))
	if err := r.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
