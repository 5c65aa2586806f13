package main

import (
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prodrec/prodrec/base/log"
	"github.com/prodrec/prodrec/config"
	"github.com/prodrec/prodrec/core"
	"github.com/prodrec/prodrec/model"
	"github.com/prodrec/prodrec/recommend"
)

var recommendCommand = &cobra.Command{
	Use:   "recommend USER_ID",
	Short: "Recommend products for a user.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		conf, err := config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
		userId := args[0]
		n, _ := cmd.Flags().GetInt("n")
		var scores []core.Score
		switch engine, _ := cmd.Flags().GetString("engine"); engine {
		case "model":
			svd, err := model.Load(conf.Data.ModelPath)
			if err != nil {
				log.Logger().Fatal("failed to load model", zap.Error(err))
			}
			includeRated, _ := cmd.Flags().GetBool("include-rated")
			scores, err = recommend.Latent(svd, userId, time.Now(), !includeRated, n)
			if err != nil {
				log.Logger().Fatal("failed to recommend", zap.Error(err))
			}
		case "user":
			ratings, err := core.LoadAndClean(conf.Data.RatingsPath)
			if err != nil {
				log.Logger().Fatal("failed to load ratings", zap.Error(err))
			}
			k, _ := cmd.Flags().GetInt("k")
			if k == 0 {
				k = conf.Neighbors.K
			}
			if decay, _ := cmd.Flags().GetBool("decay"); decay {
				scores, err = recommend.UserBasedWithDecay(ratings, userId, k, n, conf.Neighbors.DaysTau)
			} else {
				scores, err = recommend.UserBased(ratings, userId, k, n)
			}
			if err != nil {
				log.Logger().Fatal("failed to recommend", zap.Error(err))
			}
		default:
			log.Logger().Fatal("unknown engine", zap.String("engine", engine))
		}
		renderScores(scores)
	},
}

func init() {
	recommendCommand.Flags().String("engine", "model", "recommendation engine (model or user)")
	recommendCommand.Flags().IntP("n", "n", 10, "number of recommended products")
	recommendCommand.Flags().Int("k", 0, "number of neighbors (user engine)")
	recommendCommand.Flags().Bool("decay", false, "down-weight stale ratings (user engine)")
	recommendCommand.Flags().Bool("include-rated", false, "include already rated products (model engine)")
}

func renderScores(scores []core.Score) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("rank", "product id", "predicted rating")
	rows := lo.Map(scores, func(score core.Score, i int) []string {
		return []string{
			strconv.Itoa(i + 1),
			score.Id,
			strconv.FormatFloat(score.Score, 'f', 2, 64),
		}
	})
	for _, row := range rows {
		_ = table.Append(row)
	}
	_ = table.Render()
}
