package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authmw "github.com/exambank/examgen/internal/auth/middleware"
	"github.com/exambank/examgen/internal/bubble"
	"github.com/exambank/examgen/internal/config"
	"github.com/exambank/examgen/internal/db"
	"github.com/exambank/examgen/internal/exam"
	"github.com/exambank/examgen/internal/examgen"
	"github.com/exambank/examgen/internal/storage"

	api "github.com/exambank/examgen/internal/api/http"
)

func main() {
	cfg := config.FromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	cancel()
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	store := exam.NewSQLStore(dbh, cfg.DBDriver)

	blobs, err := storage.NewFSStore(cfg.UploadsRoot)
	if err != nil {
		log.Fatalf("uploads root: %v", err)
	}

	authSvc := authmw.NewAuthService(cfg.JWTSecret)

	loadImage := func(key string) ([]byte, error) {
		rc, err := blobs.Get(key)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	gen := &examgen.Service{
		Units: store,
		Sheets: &bubble.Generator{
			Python:  cfg.PythonBin,
			Script:  cfg.BubbleScript,
			Timeout: cfg.ToolTimeout,
		},
		WorkRoot:        cfg.UploadsRoot,
		LogoPath:        cfg.LogoKey,
		LoadImage:       loadImage,
		MaxArchiveBytes: cfg.MaxArchiveBytes,
		Log:             log.Default(),
	}
	corr := &bubble.Corrector{
		Python:  cfg.PythonBin,
		Script:  cfg.CorrectScript,
		Timeout: cfg.ToolTimeout,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Post("/auth/register", api.RegisterHandler(store))
	r.Post("/auth/login", api.LoginHandler(store, authSvc))

	r.Group(func(r chi.Router) {
		r.Use(authmw.JWTMiddleware(authSvc))

		r.Get("/auth/profile", api.ProfileHandler(store))
		r.Put("/auth/profile", api.UpdateProfileHandler(store))

		r.Post("/materials", api.CreateMaterialHandler(store))
		r.Get("/materials", api.ListMaterialsHandler(store))
		r.Get("/materials/{materialID}", api.GetMaterialHandler(store))
		r.Put("/materials/{materialID}", api.UpdateMaterialHandler(store))
		r.Delete("/materials/{materialID}", api.DeleteMaterialHandler(store))

		r.Post("/topics", api.CreateTopicHandler(store))
		r.Get("/topics", api.ListTopicsHandler(store))
		r.Get("/topics/{topicID}", api.GetTopicHandler(store))
		r.Put("/topics/{topicID}", api.UpdateTopicHandler(store))
		r.Delete("/topics/{topicID}", api.DeleteTopicHandler(store))

		r.Post("/groups", api.CreateGroupHandler(store))
		r.Get("/groups", api.ListGroupsHandler(store))
		r.Get("/groups/{groupID}", api.GetGroupHandler(store))
		r.Put("/groups/{groupID}", api.UpdateGroupHandler(store))
		r.Delete("/groups/{groupID}", api.DeleteGroupHandler(store))

		r.Post("/problems", api.CreateProblemHandler(store))
		r.Get("/problems", api.ListProblemsHandler(store))
		r.Get("/problems/{problemID}", api.GetProblemHandler(store))
		r.Put("/problems/{problemID}", api.UpdateProblemHandler(store))
		r.Delete("/problems/{problemID}", api.DeleteProblemHandler(store))
		r.Get("/problems/{problemID}/choices", api.ListChoicesHandler(store))

		r.Post("/choices", api.CreateChoiceHandler(store))
		r.Get("/choices/{choiceID}", api.GetChoiceHandler(store))
		r.Put("/choices/{choiceID}", api.UpdateChoiceHandler(store))
		r.Delete("/choices/{choiceID}", api.DeleteChoiceHandler(store))

		r.Post("/exams", api.CreateExamHandler(store))
		r.Get("/exams", api.ListExamsHandler(store))
		r.Get("/exams/{examID}", api.GetExamHandler(store))
		r.Put("/exams/{examID}", api.UpdateExamHandler(store))
		r.Delete("/exams/{examID}", api.DeleteExamHandler(store))
		r.Get("/exams/{examID}/units", api.ListExamUnitsHandler(store))
		r.Post("/exams/{examID}/generate", api.GenerateExamHandler(gen))

		r.Post("/examunits", api.CreateExamUnitHandler(store))
		r.Get("/examunits/{unitOrder}", api.GetExamUnitHandler(store))
		r.Put("/examunits/{unitOrder}", api.UpdateExamUnitHandler(store))
		r.Delete("/examunits/{unitOrder}", api.DeleteExamUnitHandler(store))

		r.Post("/correct", api.CorrectExamHandler(corr, cfg.UploadsRoot))

		r.Post("/assets", api.UploadImageHandler(blobs))
		r.Get("/assets/*", api.GetImageHandler(blobs))
	})

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
