// Package main provides the moonglow HTTP server.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/thurmanmarka/moonglow/internal/config"
	"github.com/thurmanmarka/moonglow/internal/httpapi"
)

const version = "0.1.0"

func main() {
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("moonglow-server version %s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	log.Printf("Starting moonglow server...")
	if *configPath != "" {
		log.Printf("Config file: %s", *configPath)
	}
	log.Printf("Port: %d", cfg.Server.Port)
	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		log.Printf("CORS origins: %s", strings.Join(cfg.Server.CORSAllowedOrigins, ", "))
	} else {
		log.Printf("CORS origins: all")
	}
	log.Printf("Max event range: %d days", cfg.Server.MaxEventRangeDays)

	router := httpapi.SetupRouter(cfg.Server, nil)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)
	log.Printf("Health check: http://localhost:%d/health", cfg.Server.Port)
	log.Printf("API endpoints:")
	log.Printf("  - GET /v1/moon/illumination")
	log.Printf("  - GET /v1/moon/phase")
	log.Printf("  - GET /v1/moon/events")

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("Moonglow Server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  moonglow-server [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -config PATH   YAML config file")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  PORT                    Server port (default: 8080)")
	fmt.Println("  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET /health                      Health check")
	fmt.Println("  GET /v1/moon/illumination?time=  Illuminated fraction as D.DDD")
	fmt.Println("  GET /v1/moon/phase?time=         Full phase report")
	fmt.Println("  GET /v1/moon/events?start=&end=  Principal phases in a range (default 30 days)")
	fmt.Println()
}
