package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prodrec/prodrec/base/log"
)

var rootCommand = &cobra.Command{
	Use:   "prodrec",
	Short: "A product recommender system.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		log.SetLogger(cmd.Flags(), debug)
	},
}

func init() {
	rootCommand.PersistentFlags().StringP("config", "c", "config.toml", "path of configuration file")
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	log.AddFlags(rootCommand.PersistentFlags())
	rootCommand.AddCommand(trainCommand)
	rootCommand.AddCommand(recommendCommand)
	rootCommand.AddCommand(topCommand)
	rootCommand.AddCommand(serveCommand)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
