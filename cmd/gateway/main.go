package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/read-rally/readrally/internal/api/http"
	auth "github.com/read-rally/readrally/internal/auth/middleware"
	"github.com/read-rally/readrally/internal/config"
	"github.com/read-rally/readrally/internal/db"
	"github.com/read-rally/readrally/internal/library"
	"github.com/read-rally/readrally/internal/logging"
	"github.com/read-rally/readrally/internal/quiz"
	"github.com/read-rally/readrally/internal/rbac"
	"github.com/read-rally/readrally/internal/recommend"
	"github.com/read-rally/readrally/internal/storage"
	"github.com/read-rally/readrally/internal/student"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New(logging.Config{})
		bootLogger.Fatal().Err(err).Msg("load config")
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("db open failed")
	}

	quizzes := quiz.NewSQLStore(dbh)
	books := library.NewSQLStore(dbh)
	students := student.NewSQLStore(dbh)

	// --- Engine ---
	// The registry is populated here, before any traffic, and never mutated
	// afterwards.
	registry := quiz.NewDefaultRegistry(quiz.Limits{
		NumChoices:      cfg.Engine.NumChoices,
		MinPoints:       cfg.Engine.MinPoints,
		MaxPoints:       cfg.Engine.MaxPoints,
		MaxPromptLength: cfg.Engine.MaxPromptLength,
		MaxAnswerLength: cfg.Engine.MaxAnswerLength,
	})
	grader := quiz.NewGrader(registry)
	policy := quiz.AttemptPolicy{
		PassingGrade: cfg.Engine.PassingGrade,
		MaxAttempts:  cfg.Engine.MaxQuizAttempts,
		Cooldown:     time.Duration(cfg.Engine.CooldownHours) * time.Hour,
	}
	engine := recommend.NewEngine(recommend.LexileConfig{
		MinReviews: cfg.Engine.MinLexileReviews,
		WindowLow:  cfg.Engine.LexileWindowLow,
		WindowHigh: cfg.Engine.LexileWindowHigh,
	}, logger)

	// --- Auth ---
	secret := cfg.AuthHMACSecret
	if secret == "" {
		secret = "insecure-dev-key"
		logger.Warn().Msg("AUTH_HMAC_SECRET not set, using dev key")
	}
	authSvc := auth.NewAuthService(secret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(api.RequestLogger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, students))

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("blob store")
	}

	// Protected API (JWT -> role in context -> RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.Route("/assets", func(ar chi.Router) {
			api.MountAssets(ar, bs)
		})

		// Users
		pr.With(rbac.Require("users:create")).
			Post("/users", api.CreateUserHandler(students, logger))

		// Quizzes
		pr.With(rbac.Require("quiz:create")).
			Post("/quizzes", api.CreateQuizHandler(quizzes, grader, logger))
		pr.With(rbac.Require("quiz:update")).
			Put("/quizzes/{quizID}", api.UpdateQuizHandler(quizzes, grader, logger))
		pr.With(rbac.Require("quiz:view")).
			Get("/quizzes", api.ListQuizzesHandler(quizzes))
		pr.With(rbac.Require("quiz:view")).
			Get("/quizzes/{quizID}", api.GetQuizHandler(quizzes))
		pr.With(rbac.Require("quiz:view-answers")).
			Get("/quizzes/{quizID}/full", api.GetQuizFullHandler(quizzes))

		// Catalog (educator)
		pr.With(rbac.Require("catalog:manage")).
			Post("/books", api.CreateBookHandler(books, logger))
		pr.With(rbac.Require("catalog:manage")).
			Put("/books/{bookID}", api.UpdateBookHandler(books, logger))
		pr.With(rbac.Require("books:list")).
			Get("/books", api.ListBooksHandler(books))

		// Per-student surfaces: the student themselves, or an educator.
		pr.Route("/students/{studentID}", func(sr chi.Router) {
			ownsResource := func(r *http.Request) bool {
				return auth.SubjectFromContext(r.Context()) == chi.URLParam(r, "studentID")
			}

			sr.With(rbac.RequireOwnerOr("submission:view-all", ownsResource)).
				Group(func(or chi.Router) {
					or.Get("/", api.GetStudentHandler(students))
					or.Get("/quiz_submissions", api.ListSubmissionsHandler(quizzes))
					or.Get("/quizzes/{quizID}/attempt_status", api.AttemptStatusHandler(quizzes, policy))
					or.Get("/book_reviews", api.ListReviewsHandler(books))
					or.Get("/books", api.ListStudentBooksHandler(books, students, engine, logger))
				})

			sr.With(rbac.RequireOwnerOr("progress:view", ownsResource)).
				Get("/reading_log", api.ListReadingLogHandler(books))

			// Mutations stay with the owning student.
			sr.With(rbac.Require("submission:create"), rbac.RequireOwner(ownsResource)).
				Post("/quiz_submissions", api.CreateSubmissionHandler(api.SubmissionDeps{
					Quizzes:  quizzes,
					Students: students,
					Library:  books,
					Grader:   grader,
					Policy:   policy,
					Logger:   logger,
				}))
			sr.With(rbac.Require("review:create"), rbac.RequireOwner(ownsResource)).
				Post("/book_reviews", api.CreateReviewHandler(books, logger))
			sr.With(rbac.Require("profile:update-own"), rbac.RequireOwner(ownsResource)).
				Put("/genre_interests", api.UpdateGenreInterestsHandler(students, logger))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	logger.Info().
		Str("addr", cfg.HTTPAddr).
		Str("db", cfg.DBDriver).
		Msg("listening")
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
