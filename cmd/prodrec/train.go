package main

import (
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prodrec/prodrec/base/log"
	"github.com/prodrec/prodrec/config"
	"github.com/prodrec/prodrec/core"
	"github.com/prodrec/prodrec/model"
)

var trainCommand = &cobra.Command{
	Use:   "train",
	Short: "Train the latent-factor model and save it.",
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
		log.Logger().Info("loaded ratings",
			zap.String("path", conf.Data.RatingsPath),
			zap.Int("count", len(ratings)))
		table, users, items, tMin, tMax := core.Preprocess(ratings)
		train, test := table, (*core.Table)(nil)
		if evaluate, _ := cmd.Flags().GetBool("evaluate"); evaluate {
			train, test = core.LeaveLastOut(table)
		}
		svd := model.NewTimeSVD(conf.Model.Params())
		nEpochs := conf.Model.NEpochs
		bar := progressbar.Default(int64(nEpochs), "fit")
		options := []model.FitOption{
			model.WithEpochCallback(func(epoch int, trainRMSE, testRMSE float64) {
				_ = bar.Add(1)
			}),
		}
		if test != nil {
			options = append(options, model.WithTestSet(test))
		}
		if err = svd.Fit(train, users, items, tMin, tMax, options...); err != nil {
			log.Logger().Fatal("failed to fit model", zap.Error(err))
		}
		_ = bar.Finish()
		if test != nil {
			log.Logger().Info("evaluated model",
				zap.Float64("test_rmse", model.RMSE(svd, test)),
				zap.Float64("test_mae", model.MAE(svd, test)))
		}
		if err = model.Save(conf.Data.ModelPath, svd); err != nil {
			log.Logger().Fatal("failed to save model", zap.Error(err))
		}
		log.Logger().Info("saved model", zap.String("path", conf.Data.ModelPath))
	},
}

func init() {
	trainCommand.Flags().Bool("evaluate", false, "hold out the last rating of every user for evaluation")
}
