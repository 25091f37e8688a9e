package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/FACorreiaa/go-travel-concierge/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-concierge/app/tracer"
	"github.com/FACorreiaa/go-travel-concierge/config"
	"github.com/FACorreiaa/go-travel-concierge/internal/container"
)

// Interactive loop over the assistant, for trying queries without the
// HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	tracer.InitTracingAndMetrics()
	metrics.InitAppMetrics()

	c := container.NewContainer(&cfg, logger)

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Welcome to the Travel Concierge!")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("\nYou can ask about weather, places to visit, or both.")
	fmt.Println("Examples:")
	fmt.Println("  - 'I'm going to go to Bangalore, let's plan my trip.'")
	fmt.Println("  - 'I'm going to go to Bangalore, what is the temperature there'")
	fmt.Println("\nType 'quit' or 'exit' to stop.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nEnter your query: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "quit", "exit", "q":
			fmt.Println("\nThank you for using the Travel Concierge. Goodbye!")
			return
		}

		fmt.Println("\n" + strings.Repeat("=", 60))
		fmt.Println("Processing your request...")
		fmt.Println(strings.Repeat("=", 60) + "\n")

		response, err := c.AssistantService.ProcessRequest(context.Background(), input)
		if err != nil {
			fmt.Printf("\nAn error occurred: %v\nPlease try again.\n", err)
			continue
		}
		fmt.Println(response)
	}
}
