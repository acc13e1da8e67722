package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/imarb51/Vetro-Quiz/config"
	"github.com/imarb51/Vetro-Quiz/database"
	"github.com/imarb51/Vetro-Quiz/internal/controller"
	adminctrl "github.com/imarb51/Vetro-Quiz/internal/controller/admin"
	userctrl "github.com/imarb51/Vetro-Quiz/internal/controller/user"
	"github.com/imarb51/Vetro-Quiz/internal/logger"
	"github.com/imarb51/Vetro-Quiz/internal/middleware"
	"github.com/imarb51/Vetro-Quiz/internal/model"
	"github.com/imarb51/Vetro-Quiz/internal/repository"
	"github.com/imarb51/Vetro-Quiz/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewRefreshTokenRepository,
		),

		fx.Provide(
			service.NewTokenService,
			service.NewGoogleVerifier,
			service.NewAuthService,
			service.NewScoringService,
			service.NewHistoryService,
			service.NewQuizService,
			service.NewQuestionService,
			service.NewUserAdminService,
		),

		fx.Provide(
			middleware.NewAuth,
			controller.NewAuthController,
			userctrl.NewQuizController,
			adminctrl.NewQuestionController,
			adminctrl.NewUserController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(EnsureAdminUser),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Route gin's request log through zerolog so everything shares one sink.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	return r
}

// RegisterRoutesAndStartServer wires the API surface and manages the HTTP
// server lifecycle through fx hooks.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	auth *middleware.Auth,
	authCtrl *controller.AuthController,
	quizCtrl *userctrl.QuizController,
	questionCtrl *adminctrl.QuestionController,
	userCtrl *adminctrl.UserController,
) {
	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/google", authCtrl.GoogleLogin)
		authGroup.POST("/refresh", authCtrl.Refresh)
		authGroup.POST("/logout", auth.RequireAuth(), authCtrl.Logout)
		authGroup.GET("/me", auth.RequireAuth(), authCtrl.Me)
		authGroup.GET("/profile", auth.RequireAuth(), authCtrl.GetProfile)
		authGroup.PUT("/profile", auth.RequireAuth(), authCtrl.UpdateProfile)

		api.GET("/questions", quizCtrl.GetQuestions)
		api.POST("/submit", quizCtrl.Submit)
		api.POST("/submit-authenticated", auth.RequireAuth(), quizCtrl.SubmitAuthenticated)

		userGroup := api.Group("/user", auth.RequireAuth())
		userGroup.GET("/quiz-history", quizCtrl.GetHistory)
		userGroup.GET("/quiz-history/summary", quizCtrl.GetHistorySummary)

		adminGroup := api.Group("/admin", auth.RequireAuth(), auth.RequireAdmin())
		adminGroup.GET("/questions", questionCtrl.List)
		adminGroup.POST("/questions", questionCtrl.Create)
		adminGroup.PUT("/questions/:id", questionCtrl.Update)
		adminGroup.DELETE("/questions/:id", questionCtrl.Delete)
		adminGroup.POST("/questions/upload-pdf", questionCtrl.UploadPDF)
		adminGroup.GET("/users", userCtrl.List)
		adminGroup.GET("/users/:id", userCtrl.Get)
		adminGroup.PUT("/users/:id", userCtrl.Update)
		adminGroup.DELETE("/users/:id", userCtrl.Delete)
		adminGroup.GET("/stats", userCtrl.Stats)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quiz API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.QuizAttempt{},
		&model.RefreshToken{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

// EnsureAdminUser bootstraps the configured admin account when no admin
// exists yet, so a fresh deployment is manageable without manual SQL.
func EnsureAdminUser(cfg *config.Config, userRepo repository.UserRepository) error {
	if cfg.Auth.AdminEmail == "" || cfg.Auth.AdminPassword == "" {
		return nil
	}

	admins, err := userRepo.CountAdmins()
	if err != nil {
		return err
	}
	if admins > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.AdminPassword), cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	hash := string(hashed)

	admin := &model.User{
		ID:             uuid.NewString(),
		Email:          service.CanonicalEmail(cfg.Auth.AdminEmail),
		Name:           "Admin User",
		HashedPassword: &hash,
		IsActive:       true,
		IsAdmin:        true,
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}

	log.Info().Str("email", admin.Email).Msg("Created default admin user")
	return nil
}
