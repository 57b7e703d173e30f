package cmd

import (
	"fmt"

	"github.com/msvens/sgallery/internal/config"
	"github.com/msvens/sgallery/internal/dao"
	"github.com/spf13/cobra"
)

var deletedbCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the gallery database",
	Long:  `Permanently deletes all gallery database tables`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.InitConfig(); err != nil {
			fmt.Println("could not read config: ", err)
			return
		}
		sgdb, err := dao.NewSGDB(config.DbPath())
		if err != nil {
			fmt.Println("could not open store: ", err)
			return
		}
		defer sgdb.Close()
		fmt.Println("Deleting all database tables...")
		if err = sgdb.DeleteTables(); err != nil {
			fmt.Println("could not drop tables: ", err)
			return
		}
		fmt.Println("Delete done")
	},
}

func init() {
	rootCmd.AddCommand(deletedbCmd)
}
