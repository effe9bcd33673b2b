// cmd/ingest/main.go
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/koncoweb/petnexus-sub000/internal/config"
	"github.com/koncoweb/petnexus-sub000/internal/ingest"
	"github.com/koncoweb/petnexus-sub000/internal/repository/postgres"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	driveClient, err := ingest.NewDriveClient(cfg.Drive.CredentialsJSON)
	if err != nil {
		log.Fatalf("Failed to initialize Google Drive client: %v", err)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	inventoryRepo := postgres.NewInventoryRepository(db)
	ingestService := ingest.NewSnapshotIngestService(driveClient, inventoryRepo)

	defaultFolderID := ""
	if cfg.Drive.FolderPath != "" {
		defaultFolderID, err = driveClient.FindFolderByPath(cfg.Drive.FolderPath)
		if err != nil {
			log.Fatalf("Failed to resolve Drive folder %q: %v", cfg.Drive.FolderPath, err)
		}
	}

	r := mux.NewRouter()

	handler := ingest.NewHandler(driveClient, ingestService, defaultFolderID)
	handler.RegisterRoutes(r)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Ingest server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
