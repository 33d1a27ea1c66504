package bootstrap

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/counselordesk/internal/app/controllers"
	appRoutes "github.com/yigit/counselordesk/internal/app/routes"
	appServices "github.com/yigit/counselordesk/internal/app/services"
	"github.com/yigit/counselordesk/internal/app/store"
	"github.com/yigit/counselordesk/internal/config"
	appMiddleware "github.com/yigit/counselordesk/internal/middleware"
	"github.com/yigit/counselordesk/internal/pkg/filestorage"
	"github.com/yigit/counselordesk/internal/pkg/helpers"
	"github.com/yigit/counselordesk/internal/pkg/logger"
	"github.com/yigit/counselordesk/internal/pkg/websocket"
	"github.com/yigit/counselordesk/internal/seed"
)

// DefaultConfigPath is used when no path is given
const DefaultConfigPath = "configs/config.yaml"

// journalCapacity bounds the change history served by /sync/changes
const journalCapacity = 256

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store   *store.Store
	Hub     *websocket.Hub
	Journal *websocket.Journal

	StudentService     appServices.StudentService     // Interface type
	TalkService        appServices.TalkService        // Interface type
	DormService        appServices.DormService        // Interface type
	DevelopmentService appServices.DevelopmentService // Interface type
	ImportService      appServices.ImportService      // Interface type
	CounselorService   appServices.CounselorService   // Interface type
	OverviewService    appServices.OverviewService    // Interface type

	StudentController     *appControllers.StudentController
	ImportController      *appControllers.ImportController
	TalkController        *appControllers.TalkController
	DormController        *appControllers.DormController
	DevelopmentController *appControllers.DevelopmentController
	CounselorController   *appControllers.CounselorController
	OverviewController    *appControllers.OverviewController
	SyncHandler           *websocket.Handler

	FileStorage filestorage.FileStorage
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
		File: logger.FileConfig{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   true,
		},
	})

	lgr := logger.Get()
	lgr.Info().
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Str("logFile", cfg.Logging.File).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies initializes the store, the sync hub, services, and controllers.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Store = store.New(store.WithCounselor(seed.DefaultCounselor()))
	if cfg.Seed.Demo {
		// Demo data is a convenience; a partial load is logged and tolerated
		if err := seed.LoadDemoData(deps.Store, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to load demo data, proceeding anyway...")
		}
	}

	settle := helpers.ParseDuration(cfg.Sync.SettleWindow, 800*time.Millisecond)
	deps.Hub = websocket.NewHub(settle, lgr.With().Str("component", "sync").Logger())
	deps.Journal = websocket.NewJournal(deps.Hub, journalCapacity, lgr.With().Str("component", "journal").Logger())

	deps.FileStorage = filestorage.NewInlineStorage(cfg.Upload.MaxImageBytes)

	// Initialize services
	deps.StudentService = appServices.NewStudentService(deps.Store, deps.Hub, lgr)
	deps.TalkService = appServices.NewTalkService(deps.Store, deps.Hub, lgr)
	deps.DormService = appServices.NewDormService(deps.Store, deps.Hub, lgr)
	deps.DevelopmentService = appServices.NewDevelopmentService(deps.Store, deps.Hub, lgr)
	deps.ImportService = appServices.NewImportService(deps.Store, deps.Hub, lgr)
	deps.CounselorService = appServices.NewCounselorService(deps.Store, deps.Hub, lgr)
	deps.OverviewService = appServices.NewOverviewService(deps.Store)

	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.FileStorage)
	deps.ImportController = appControllers.NewImportController(deps.ImportService, deps.FileStorage, cfg.Upload.MaxImportBytes, lgr)
	deps.TalkController = appControllers.NewTalkController(deps.TalkService, deps.FileStorage)
	deps.DormController = appControllers.NewDormController(deps.DormService)
	deps.DevelopmentController = appControllers.NewDevelopmentController(deps.DevelopmentService, deps.FileStorage)
	deps.CounselorController = appControllers.NewCounselorController(deps.CounselorService, deps.FileStorage)
	deps.OverviewController = appControllers.NewOverviewController(deps.OverviewService)
	deps.SyncHandler = websocket.NewHandler(deps.Hub, deps.Journal, cfg.CORS.AllowOrigins, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode())
	lgr.Info().Str("ginMode", gin.Mode()).Msg("Gin mode set")

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS(cfg.CORS.AllowOrigins))

	// Uploads are read into memory; keep the multipart buffer near the largest allowed file
	router.MaxMultipartMemory = max(cfg.Upload.MaxImportBytes, cfg.Upload.MaxImageBytes) + 1<<20

	appRoutes.SetupRouter(router,
		deps.StudentController,
		deps.ImportController,
		deps.TalkController,
		deps.DormController,
		deps.DevelopmentController,
		deps.CounselorController,
		deps.OverviewController,
		deps.SyncHandler,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sync": deps.Hub.Status().Label})
	})

	return router, nil
}
