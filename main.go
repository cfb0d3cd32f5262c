package main

import (
	"fmt"
	"os"
	"time"

	"taskpilot/application/command"
	"taskpilot/domain/entities"
	"taskpilot/domain/interfaces"
	"taskpilot/infrastructure/ai"
	"taskpilot/infrastructure/config"
	"taskpilot/infrastructure/storage"
	"taskpilot/presentation/rest"
	"taskpilot/presentation/terminal"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	store := storage.NewMemoryStore(logger)
	oracle := ai.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, cfg.OracleTimeout(), logger)
	processor := command.NewProcessor(oracle, store, logger)

	if cfg.SeedDemo {
		seedDemoTasks(store, logger)
	}

	if cfg.RunAPI {
		server := rest.NewServer(processor, store, logger)
		if err := server.ListenAndServe(cfg.HTTPAddr); err != nil {
			logger.Fatal("server stopped: ", err)
		}
		return
	}

	term := terminal.New(processor, logger)
	if err := term.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// seedDemoTasks creates a couple of example tasks so a fresh process has
// something to show.
func seedDemoTasks(store interfaces.TaskStore, logger *logrus.Logger) {
	inTwoDays := entities.NewDate(time.Now().AddDate(0, 0, 2))

	seeds := []entities.TaskFields{
		{
			Title:       "Complete project proposal",
			Description: "Write up the final project proposal for client review",
			Priority:    entities.PriorityHigh,
			DueDate:     &inTwoDays,
			Tags:        []string{"work", "client"},
		},
		{
			Title:       "Buy groceries",
			Description: "Milk, eggs, bread, vegetables",
			Priority:    entities.PriorityMedium,
			Tags:        []string{"personal", "shopping"},
		},
	}

	for _, fields := range seeds {
		if _, err := store.Create(fields); err != nil {
			logger.WithError(err).Warn("failed to seed demo task")
		}
	}
}
