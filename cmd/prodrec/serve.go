package main

import (
	"github.com/emicklei/go-restful/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prodrec/prodrec/base/log"
	"github.com/prodrec/prodrec/config"
	"github.com/prodrec/prodrec/core"
	"github.com/prodrec/prodrec/model"
	"github.com/prodrec/prodrec/server"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server.",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		conf, err := config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
		svd, err := model.Load(conf.Data.ModelPath)
		if err != nil {
			log.Logger().Fatal("failed to load model", zap.Error(err))
		}
		ratings, err := core.LoadAndClean(conf.Data.RatingsPath)
		if err != nil {
			log.Logger().Fatal("failed to load ratings", zap.Error(err))
		}
		s := &server.RestServer{
			Config:     conf,
			Model:      svd,
			Ratings:    ratings,
			HttpHost:   conf.Server.Host,
			HttpPort:   conf.Server.Port,
			WebService: new(restful.WebService),
		}
		s.StartHttpServer()
	},
}
