package cmd

import (
	"context"
	"fmt"

	"github.com/msvens/sgallery/internal/archive"
	"github.com/msvens/sgallery/internal/config"
	"github.com/msvens/sgallery/internal/dao"
	"github.com/spf13/cobra"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export [originals|photos|categories]",
	Short: "Export gallery data to a file",
	Long: `Exports gallery data into the export directory: originals as a zip
archive with a metadata manifest, photos or categories as JSON`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"originals", "photos", "categories"},
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

		dir := exportDir
		if dir == "" {
			dir = config.ExportDir()
		}
		sink := archive.DirSink{Dir: dir}
		transfer := archive.NewTransfer(sgdb)

		switch args[0] {
		case "originals":
			progress := archive.ReporterFunc(func(percent float64) {
				fmt.Printf("exported %.0f%%\n", percent)
			})
			err = transfer.ExportOriginals(context.Background(), sink, progress)
		case "photos":
			err = transfer.ExportPhotosJSON(sink)
		case "categories":
			err = transfer.ExportCategoriesJSON(sink)
		}
		if err != nil {
			fmt.Println("export failed: ", err)
			return
		}
		fmt.Println("export written to ", dir)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "export directory (defaults to the configured one)")
}
