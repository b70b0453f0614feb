package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"donorscan/internal/diagnostic"
	"donorscan/internal/registry"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sources := registry.List()
	fmt.Printf("Probing %d registered feeds...\n\n", len(sources))

	client := &http.Client{Timeout: 15 * time.Second}
	checker := diagnostic.New(client)
	results := checker.CheckAll(ctx, sources)

	fmt.Print(diagnostic.Summarize(results))

	for _, r := range results {
		if r.Status != diagnostic.StatusWorking {
			os.Exit(1)
		}
	}
}
