package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/studybuddyhq/studybuddy-api/ai"
	"github.com/studybuddyhq/studybuddy-api/config"
	"github.com/studybuddyhq/studybuddy-api/handlers"
	"github.com/studybuddyhq/studybuddy-api/middleware"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
	config.LoadEnv()
}

func main() {
	// Initialize database connection
	config.Connect()
	authMiddleware := middleware.EnsureValidToken()

	provider, err := ai.NewProviderFromEnv()
	if err != nil {
		log.Printf("Warning: AI provider unavailable, summarize/quiz endpoints disabled: %v", err)
		provider = nil
	}

	h := handlers.NewDBHandler(config.Database, provider)
	mux := http.NewServeMux()

	// User
	mux.HandleFunc("GET /api/me", middleware.SyncUserMiddleware(h.GetCurrentUser))

	// Notes
	mux.HandleFunc("GET /api/notes", middleware.SyncUserMiddleware(h.GetNotesForUser))
	mux.HandleFunc("POST /api/notes", middleware.SyncUserMiddleware(h.CreateNote))
	mux.HandleFunc("GET /api/notes/{noteID}", middleware.SyncUserMiddleware(h.GetNoteByID))
	mux.HandleFunc("PUT /api/notes/{noteID}", middleware.SyncUserMiddleware(h.UpdateNoteByID))
	mux.HandleFunc("DELETE /api/notes/{noteID}", middleware.SyncUserMiddleware(h.DeleteNoteByID))
	mux.HandleFunc("GET /api/notes/{noteID}/quiz/scores", middleware.SyncUserMiddleware(h.GetQuizScoresForNote))

	// Summarizations
	mux.HandleFunc("GET /api/notes/{noteID}/summarizations", middleware.SyncUserMiddleware(h.GetSummarizationsForNote))
	mux.HandleFunc("POST /api/notes/{noteID}/summarizations", middleware.SyncUserMiddleware(h.CreateSummarization))
	mux.HandleFunc("DELETE /api/summarizations/{summarizationID}", middleware.SyncUserMiddleware(h.DeleteSummarization))

	// Derived study aids
	mux.HandleFunc("GET /api/summarizations/{summarizationID}/studypoints", middleware.SyncUserMiddleware(h.GetStudyPoints))
	mux.HandleFunc("GET /api/summarizations/{summarizationID}/mindmap", middleware.SyncUserMiddleware(h.GetMindMap))
	mux.HandleFunc("PUT /api/summarizations/{summarizationID}/mindmap/layout", middleware.SyncUserMiddleware(h.UpdateMindMapLayout))

	// AI
	mux.HandleFunc("POST /api/summarize", middleware.SyncUserMiddleware(h.Summarize))
	mux.HandleFunc("POST /api/summarizations/{summarizationID}/quiz", middleware.SyncUserMiddleware(h.GenerateQuiz))
	mux.HandleFunc("POST /api/summarizations/{summarizationID}/quiz/scores", middleware.SyncUserMiddleware(h.CreateQuizScore))

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://studybuddy.vercel.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(authMiddleware(mux))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // fallback port for local development
	}
	serverAddr := "0.0.0.0:" + port

	log.Printf("Listening on %s", serverAddr)
	http.ListenAndServe(serverAddr, corsHandler)
}
