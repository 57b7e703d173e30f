package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/msvens/sgallery/internal/archive"
	"github.com/msvens/sgallery/internal/config"
	"github.com/msvens/sgallery/internal/dao"
	"github.com/spf13/cobra"
)

var bestEffort bool

var importCmd = &cobra.Command{
	Use:   "import [originals|photos|categories] FILE",
	Short: "Import gallery data from a file",
	Long: `Imports gallery data: originals from a zip archive with a metadata
manifest (thumbnails are regenerated from the archived payloads),
photos or categories from JSON`,
	Args: cobra.ExactArgs(2),
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
		transfer := archive.NewTransfer(sgdb)

		switch args[0] {
		case "originals":
			policy := archive.AllOrNothing
			if bestEffort {
				policy = archive.BestEffort
			}
			progress := archive.ReporterFunc(func(percent float64) {
				fmt.Printf("imported %.0f%%\n", percent)
			})
			err = transfer.ImportOriginals(context.Background(), args[1], progress, policy)
		case "photos":
			err = importJSON(transfer.ImportPhotosJSON, args[1])
		case "categories":
			err = importJSON(transfer.ImportCategoriesJSON, args[1])
		default:
			fmt.Println("unknown import kind: ", args[0])
			return
		}
		if err != nil {
			fmt.Println("import failed: ", err)
			return
		}
		fmt.Println("import done")
	},
}

func importJSON(importer func(r io.Reader) error, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return importer(file)
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&bestEffort, "best-effort", false, "skip broken archive entries instead of aborting")
}
