package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-insights/internal/config"
	"github.com/ukydev/fleet-insights/internal/dataset"
	"github.com/ukydev/fleet-insights/internal/db"
	"github.com/ukydev/fleet-insights/internal/models"
)

var (
	cfgFile     string
	datasetPath string
)

var rootCmd = &cobra.Command{
	Use:   "fleet-insights",
	Short: "Analytics over an electric-vehicle fleet dataset",
	Long: `Fleet Insights computes aggregation, ranking and trend reports over a
static electric-vehicle fleet dataset. The dataset is loaded once from CSV
(or MongoDB) and served as read-only report tables over HTTP or MQTT.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "dataset CSV file (overrides config)")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, err
	}
	if datasetPath != "" {
		cfg.DatasetPath = datasetPath
	}
	return cfg, nil
}

// loadDataset loads the vehicle records from the configured source.
func loadDataset(ctx context.Context, cfg *config.Config) ([]models.VehicleRecord, error) {
	if cfg.GetDatasetSource() == "mongo" {
		client, err := db.ConnectMongo(cfg.Mongo.URI)
		if err != nil {
			return nil, fmt.Errorf("connecting to MongoDB: %w", err)
		}
		defer client.Disconnect(ctx)
		coll := db.NewMongoCollection(client, cfg.GetMongoDatabase())
		return db.LoadRecords(ctx, coll)
	}

	if cfg.DatasetPath == "" {
		return nil, fmt.Errorf("no dataset configured: set dataset_path or pass --dataset")
	}
	return dataset.LoadFile(cfg.DatasetPath)
}
