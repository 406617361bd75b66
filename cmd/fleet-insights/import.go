package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-insights/internal/dataset"
	"github.com/ukydev/fleet-insights/internal/db"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the CSV dataset into MongoDB",
	Long:  `Parses the configured CSV file and replaces the MongoDB dataset with its records, so serve can run with dataset_source: mongo.`,
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.DatasetPath == "" {
		return fmt.Errorf("no dataset configured: set dataset_path or pass --dataset")
	}

	records, err := dataset.LoadFile(cfg.DatasetPath)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	client, err := db.ConnectMongo(cfg.Mongo.URI)
	if err != nil {
		return fmt.Errorf("connecting to MongoDB: %w", err)
	}
	defer client.Disconnect(cmd.Context())

	coll := db.NewMongoCollection(client, cfg.GetMongoDatabase())
	if err := coll.ReplaceAll(cmd.Context(), records); err != nil {
		return fmt.Errorf("importing dataset: %w", err)
	}

	log.WithFields(log.Fields{"vehicle_count": len(records), "database": cfg.GetMongoDatabase()}).Info("Dataset imported")
	return nil
}
