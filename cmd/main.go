package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/BlueAI-edu/blueai-backend/config"
	"github.com/BlueAI-edu/blueai-backend/database"
	_ "github.com/BlueAI-edu/blueai-backend/docs" // Swagger docs - auto-generated
	studentctrl "github.com/BlueAI-edu/blueai-backend/internal/controller/student"
	teacherctrl "github.com/BlueAI-edu/blueai-backend/internal/controller/teacher"
	"github.com/BlueAI-edu/blueai-backend/internal/logger"
	"github.com/BlueAI-edu/blueai-backend/internal/middleware"
	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"github.com/BlueAI-edu/blueai-backend/internal/repository"
	"github.com/BlueAI-edu/blueai-backend/internal/service"
)

// @title BlueAI Assessment API
// @version 1.0
// @description Classroom assessment backend: teachers run timed assessments, students join by code, answers are AI-marked and feedback is released under teacher control.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewAssessmentRepository,
			repository.NewAttemptRepository,
			repository.NewMarkingJobRepository,
			repository.NewQuestionRepository,
			repository.NewRosterRepository,
			repository.NewSecurityEventRepository,
		),

		fx.Provide(
			service.NewQuestionService,
			service.NewAssessmentService,
			service.NewFeedbackService,
			service.NewSecurityEventService,
			service.NewGeminiScorer,
			service.NewGeminiOCRService,
			func(
				cfg *config.Config,
				jobRepo repository.MarkingJobRepository,
				attemptRepo repository.AttemptRepository,
				questionRepo repository.QuestionRepository,
				assessmentRepo repository.AssessmentRepository,
				scorer service.AIScorer,
				ocr service.OCRService,
			) *service.MarkingPipeline {
				return service.NewMarkingPipeline(service.PipelineConfig{
					Workers:      cfg.Marking.Workers,
					PollInterval: cfg.Marking.PollInterval,
					CallTimeout:  cfg.Marking.CallTimeout,
					BackoffBase:  cfg.Marking.BackoffBase,
					BackoffCap:   cfg.Marking.BackoffCap,
					MaxRetries:   cfg.Marking.MaxRetries,
				}, jobRepo, attemptRepo, questionRepo, assessmentRepo, scorer, ocr)
			},
			func(p *service.MarkingPipeline) service.PipelineNotifier { return p },
			service.NewAttemptService,
		),

		fx.Provide(
			teacherctrl.NewAssessmentController,
			teacherctrl.NewSubmissionController,
			studentctrl.NewAttemptController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RunMarkingPipeline),
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

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server
// lifecycle. Teacher routes sit behind JWT auth; the student surface is
// public and scoped by attempt ID.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	assessmentCtrl *teacherctrl.AssessmentController,
	submissionCtrl *teacherctrl.SubmissionController,
	studentCtrl *studentctrl.AttemptController,
) {
	teacherGroup := router.Group("/api/v1/teacher")
	teacherGroup.Use(middleware.RequireTeacher(cfg.JWTSecret))
	{
		teacherGroup.POST("/questions", assessmentCtrl.CreateQuestion)
		teacherGroup.GET("/questions", assessmentCtrl.ListQuestions)
		teacherGroup.GET("/questions/:question_id", assessmentCtrl.GetQuestion)
		teacherGroup.DELETE("/questions/:question_id", assessmentCtrl.DeleteQuestion)

		teacherGroup.POST("/assessments", assessmentCtrl.CreateAssessment)
		teacherGroup.GET("/assessments", assessmentCtrl.ListAssessments)
		teacherGroup.GET("/assessments/:assessment_id", assessmentCtrl.GetAssessment)
		teacherGroup.POST("/assessments/:assessment_id/start", assessmentCtrl.StartAssessment)
		teacherGroup.POST("/assessments/:assessment_id/close", assessmentCtrl.CloseAssessment)
		teacherGroup.GET("/assessments/:assessment_id/submissions", assessmentCtrl.ListSubmissions)
		teacherGroup.POST("/assessments/:assessment_id/release-all", submissionCtrl.ReleaseAllFeedback)

		teacherGroup.GET("/submissions/:attempt_id", submissionCtrl.GetSubmission)
		teacherGroup.POST("/submissions/:attempt_id/release", submissionCtrl.ReleaseFeedback)
		teacherGroup.PUT("/submissions/:attempt_id/moderate", submissionCtrl.ModerateFeedback)
		teacherGroup.POST("/submissions/:attempt_id/retry-marking", submissionCtrl.RetryMarking)
		teacherGroup.GET("/submissions/:attempt_id/security-report", submissionCtrl.SecurityReport)
	}

	studentGroup := router.Group("/api/v1/student")
	{
		studentGroup.POST("/attempts", studentCtrl.Join)
		studentGroup.GET("/attempts/:attempt_id", studentCtrl.GetAttempt)
		studentGroup.PUT("/attempts/:attempt_id/autosave", studentCtrl.Autosave)
		studentGroup.POST("/attempts/:attempt_id/submit", studentCtrl.Submit)
		studentGroup.POST("/attempts/:attempt_id/security-events", studentCtrl.RecordSecurityEvent)
		studentGroup.GET("/assessments/:join_code/students", studentCtrl.EligibleStudents)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Assessment API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
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

// RunMarkingPipeline ties the worker pool to the application lifecycle.
func RunMarkingPipeline(lc fx.Lifecycle, pipeline *service.MarkingPipeline) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return pipeline.Start()
		},
		OnStop: func(ctx context.Context) error {
			pipeline.Stop()
			return nil
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Question{},
		&model.Class{},
		&model.Student{},
		&model.Assessment{},
		&model.Attempt{},
		&model.MarkingJob{},
		&model.SecurityEvent{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
