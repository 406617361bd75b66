package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-insights/internal/publisher"
	"github.com/ukydev/fleet-insights/internal/reports"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish every report to the configured MQTT broker",
	Long:  `Runs the full report catalog against the dataset and publishes each table as retained JSON, one topic per report.`,
	RunE:  runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	records, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	pub, err := publisher.New(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	published := 0
	for _, r := range reports.Catalog() {
		if err := pub.PublishTable(r.Run(records)); err != nil {
			log.WithError(err).WithField("report", r.Name).Error("Failed to publish report")
			continue
		}
		published++
	}

	log.WithFields(log.Fields{"published": published, "total": len(reports.Catalog())}).Info("Publish completed")
	return nil
}
