package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sgallery",
	Short: "Photo gallery with an embedded local store",
	Long: `sgallery keeps photos, categories and thumbnails in an embedded
database and can move them in and out in bulk as zip archives or JSON
files. Run the serve command to expose the gallery over HTTP.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
