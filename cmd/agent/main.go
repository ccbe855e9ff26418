package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/obstetra/fetal-health-service/internal/adapters/model"
	"github.com/obstetra/fetal-health-service/internal/application/services"
	"github.com/obstetra/fetal-health-service/internal/domain/entities"
	"github.com/obstetra/fetal-health-service/internal/infrastructure/observability"
	"github.com/obstetra/fetal-health-service/pkg/config"
)

// Interactive console for the classification agent. It answers the same
// commands as POST /api/chat, without the HTTP surface.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("fetal-health-agent", cfg.App.Env)

	modelProvider, err := model.NewProviderFromConfig(&cfg.Model)
	if err != nil {
		log.Warn().Err(err).Str("provider", cfg.Model.Provider).Msg("model not loaded, predictions unavailable")
		modelProvider = nil
	}

	validator := services.NewValidator()
	predictionService := services.NewPredictionService(modelProvider, validator)
	agent := services.NewAgentService(predictionService)

	ctx := context.Background()

	fmt.Println("Fetal Health Classification Agent")
	fmt.Println("Type 'help' for commands, 'quit' to exit.")
	fmt.Println()

	// Quick self-test against the bundled sample so a broken model
	// surfaces immediately instead of on the first user command.
	if predictionService.Ready() {
		if p, err := predictionService.PredictObservation(ctx, entities.SampleObservation()); err != nil {
			fmt.Printf("self-test failed: %v\n\n", err)
		} else {
			fmt.Printf("self-test: sample case classified as %s\n\n", p.Label)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			fmt.Println("bye")
			return
		}

		reply := agent.Respond(ctx, line, nil)
		fmt.Println(reply.Text)
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "input error: %v\n", err)
		os.Exit(1)
	}
}
