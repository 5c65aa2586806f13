package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prodrec/prodrec/base/log"
	"github.com/prodrec/prodrec/config"
	"github.com/prodrec/prodrec/core"
	"github.com/prodrec/prodrec/recommend"
)

var topCommand = &cobra.Command{
	Use:   "top",
	Short: "Show the best rated products of the recent period.",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		conf, err := config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
		ratings, err := core.LoadAndClean(conf.Data.RatingsPath)
		if err != nil {
			log.Logger().Fatal("failed to load ratings", zap.Error(err))
		}
		n, _ := cmd.Flags().GetInt("n")
		days, _ := cmd.Flags().GetInt("days")
		if !cmd.Flags().Changed("days") {
			days = conf.Popular.Days
		}
		renderScores(recommend.TopProducts(ratings, days, conf.Popular.MinRatings, n))
	},
}

func init() {
	topCommand.Flags().IntP("n", "n", 10, "number of products")
	topCommand.Flags().Int("days", 0, "trailing window in days (0 keeps all ratings)")
}
