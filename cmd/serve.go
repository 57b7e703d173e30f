package cmd

import (
	"github.com/msvens/sgallery/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gallery server",
	Long:  `Starts the gallery API server on the configured address`,
	Run: func(cmd *cobra.Command, args []string) {
		server.StartGServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
