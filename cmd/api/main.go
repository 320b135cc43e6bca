package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"fintutor/pkg/api/auth"
	"fintutor/pkg/api/chat"
	"fintutor/pkg/api/config"
	apiprogress "fintutor/pkg/api/progress"
	apiquiz "fintutor/pkg/api/quiz"
	"fintutor/pkg/core/agent"
	"fintutor/pkg/core/export"
	"fintutor/pkg/core/pipeline"
	"fintutor/pkg/core/prompt"
	"fintutor/pkg/core/quiz"
	"fintutor/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	ctx := context.Background()

	// Initialize Prompt Library
	// Determine resources path (relative to executable or working directory)
	resourcesPath := "resources"
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to hardcoded prompts")
	} else {
		fmt.Printf("[PROMPT] Loaded %d prompts from %s\n", prompt.Get().Count(), resourcesPath)
	}

	// Initialize agent manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr := agent.NewManager(agentCfg)

	// Storage: Postgres when DATABASE_URL is set, JSON files otherwise.
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(ctx); err != nil {
			fmt.Printf("[WARNING] Database init failed, using file storage: %v\n", err)
		}
	}
	sessions := store.NewSessionStore(store.GetPool(), "")
	progress := store.NewProgressStore(store.GetPool(), "")

	// Quiz cache: Redis when REDIS_URL is set, in-memory otherwise.
	var quizCache store.QuizCache
	if os.Getenv("REDIS_URL") != "" {
		redisCache, err := store.NewRedisQuizCache()
		if err != nil {
			fmt.Printf("[WARNING] Redis init failed, using in-memory cache: %v\n", err)
			quizCache = store.NewMemoryQuizCache()
		} else {
			quizCache = redisCache
		}
	} else {
		quizCache = store.NewMemoryQuizCache()
	}

	orchestrator := pipeline.NewOrchestrator(agentMgr, sessions)
	generator := quiz.NewGenerator(agentMgr)

	// Chat endpoints
	chatHandler := chat.NewHandler(orchestrator, sessions)
	http.HandleFunc("/api/chat", auth.Authenticate(chatHandler.HandleChat))
	http.HandleFunc("/api/chat/history", auth.Authenticate(chatHandler.HandleHistory))
	http.HandleFunc("/api/chat/sessions", auth.Authenticate(chatHandler.HandleSessions))

	// Quiz endpoints
	quizHandler := apiquiz.NewHandler(generator, quizCache, progress)
	http.HandleFunc("/api/quiz/generate", auth.Authenticate(quizHandler.HandleGenerate))
	http.HandleFunc("/api/quiz/submit", auth.Authenticate(quizHandler.HandleSubmit))

	// Progress endpoints
	progressHandler := apiprogress.NewHandler(progress, "exports")
	http.HandleFunc("/api/progress", auth.Authenticate(progressHandler.HandleSummary))
	http.HandleFunc("/api/progress/export", auth.Authenticate(progressHandler.HandleExport))

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", auth.Authenticate(configHandler.HandleSwitch))

	// Background export of the cohort workbook
	if exportPath := os.Getenv("PROGRESS_EXPORT_PATH"); exportPath != "" {
		source := func(ctx context.Context) ([]*store.ProgressSummary, error) {
			summary, err := progress.Summary(ctx, "")
			if err != nil {
				return nil, err
			}
			return []*store.ProgressSummary{summary}, nil
		}
		syncer := export.NewSyncer(source, exportPath, 15*time.Minute)
		go syncer.Run(ctx)
		fmt.Printf("[EXPORT] Progress syncer writing to %s\n", exportPath)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - POST /api/chat")
	fmt.Println("  - GET  /api/chat/history")
	fmt.Println("  - GET  /api/chat/sessions")
	fmt.Println("  - POST /api/quiz/generate")
	fmt.Println("  - POST /api/quiz/submit")
	fmt.Println("  - GET  /api/progress")
	fmt.Println("  - GET  /api/progress/export")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
