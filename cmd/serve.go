package cmd

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aqlanhadi/pokertrack/api"
	"github.com/spf13/cobra"
)

var (
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long:  `Starts the HTTP API server that accepts tournament summary files and returns the parsed table as JSON or CSV.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure logging for server mode
		log.SetOutput(os.Stdout)
		log.SetFlags(log.Ltime | log.Lmsgprefix)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		processor, err := newProcessor(ctx)
		cancel()
		if err != nil {
			log.Fatalf("Failed to load currency configuration: %v", err)
		}

		cfg := api.DefaultConfig()
		if servePort != "" {
			cfg.Port = ":" + servePort
		}
		cfg.LogPrefix = "SERVER: "

		server := api.New(cfg, processor)
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "8080", "Port to run the API server on")
}
