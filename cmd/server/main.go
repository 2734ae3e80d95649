package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mallard-db/mallard"
	"github.com/mallard-db/mallard/core"
	"github.com/mallard-db/mallard/db"
	"github.com/mallard-db/mallard/journal"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	port := flag.Int("port", 3306, "TCP port to listen on")
	dbPath := flag.String("db", "", "Database file (memory if empty)")
	journalDir := flag.String("journalDir", "", "Statement journal directory (disabled if empty)")
	jwtSecret := flag.String("jwtSecret", "", "JWT shared secret; enables authentication")
	issuer := flag.String("issuer", "", "Expected JWT issuer")
	audience := flag.String("audience", "", "Expected JWT audience")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Mallard SQL Server v%s\n", Version)
		return
	}

	var instance *mallard.Instance
	var err error
	if *dbPath == "" {
		log.Println("Using in-memory database")
		instance, err = mallard.OpenMemory()
	} else {
		log.Printf("Using database file: %s", *dbPath)
		instance, err = mallard.Open(*dbPath)
	}
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer instance.Close()

	var opts []db.Option
	if *journalDir != "" {
		j, err := journal.Open(*journalDir, core.Identity{
			Name:  "Mallard Server",
			Email: "server@mallard.local",
		})
		if err != nil {
			log.Fatalf("Failed to open journal: %v", err)
		}
		opts = append(opts, db.WithRecorder(j))
	}

	var auth *AuthConfig
	if *jwtSecret != "" {
		auth = &AuthConfig{
			Enabled:  true,
			Secret:   *jwtSecret,
			Issuer:   *issuer,
			Audience: *audience,
		}
	}

	server := NewServer(instance.Engine(opts...), auth)
	addr := fmt.Sprintf(":%d", *port)
	if err := server.Start(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Printf("║   Mallard SQL Server v%-15s  ║\n", Version)
	fmt.Println("║   Convenience layer over DuckDB       ║")
	fmt.Println("╚═══════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Listening on port %d\n", *port)
	fmt.Println("Send SQL statements (one per line), 'quit' to disconnect")
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	server.Stop()
	log.Println("Server stopped")
}
