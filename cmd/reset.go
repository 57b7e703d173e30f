package cmd

import (
	"fmt"

	"github.com/msvens/sgallery/internal/config"
	"github.com/msvens/sgallery/internal/dao"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all gallery data",
	Long: `Clears photos, thumbnails and categories and reseeds the default
category set`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.InitConfig(); err != nil {
			fmt.Println("could not read config: ", err)
			return
		}
		sgdb, err := dao.NewStore(config.DbPath()).Open()
		if err != nil {
			fmt.Println("could not open store: ", err)
			return
		}
		defer sgdb.Close()
		fmt.Println("Resetting all gallery data...")
		if err = sgdb.ResetAll(); err != nil {
			fmt.Println("could not reset data: ", err)
			return
		}
		fmt.Println("Reset done")
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
