package cmd

import (
	"fmt"
	"os"

	"tag-manager/core/config"
	"tag-manager/core/logger"
	"tag-manager/feature/tags"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// boxesCmd represents the boxes listing command
var boxesCmd = &cobra.Command{
	Use:   "boxes",
	Short: "List registered boxes",
	Long:  `Reads the box registrations from the device overlay config and prints each box with its resolved content directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		runBoxList()
	},
}

func init() {
	RootCmd.AddCommand(boxesCmd)
}

func runBoxList() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	registry := tags.NewRegistry(cfg.Volumes.ConfigPath(), cfg.Volumes.ContentPath(), logg)
	boxes, err := registry.Boxes()
	if err != nil {
		logg.Fatal("Box listing failed", zap.Error(err))
	}

	fmt.Println("\n--- Registered Boxes ---")
	if len(boxes) == 0 {
		fmt.Println("(none)")
	}
	for _, box := range boxes {
		fmt.Printf("%-24s cert=%s dir=%s\n", box.Name, box.CertificateID, box.ContentDirectoryID)
	}
	fmt.Println("------------------------")
}
