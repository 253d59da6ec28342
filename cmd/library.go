package cmd

import (
	"context"
	"fmt"
	"os"

	"tag-manager/core/cache"
	"tag-manager/core/config"
	"tag-manager/core/logger"
	"tag-manager/core/teddycloud"
	"tag-manager/core/utils"
	"tag-manager/feature/library"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// libraryCmd represents the library report command
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Print the content linkage report",
	Long:  `Scans the audio library, matches every file against the catalog, and prints linked and orphaned files.`,
	Run: func(cmd *cobra.Command, args []string) {
		runLibraryReport(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(libraryCmd)
}

func runLibraryReport(ctx context.Context) {
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

	api := teddycloud.NewClient(cfg.TeddyCloud, logg)
	store := cache.New(cache.DefaultTTLs(cfg.Cache.LibraryTTLSeconds, cfg.Cache.CatalogTTLSeconds))
	scanner := library.NewScanner(api, cfg.Volumes.LibraryPath(), store, logg)
	svc := library.NewService(scanner, api, store, logg)

	report, err := svc.ListLinkage(ctx, 0, utils.MaxPageSize, true)
	if err != nil {
		logg.Fatal("Library report failed", zap.Error(err))
	}

	fmt.Println("\n--- Content Linkage Report ---")
	fmt.Printf("Total:    %d\n", report.TotalCount)
	fmt.Printf("Linked:   %d\n", report.LinkedCount)
	fmt.Printf("Orphaned: %d\n", report.OrphanedCount)
	fmt.Println("------------------------------")

	for _, item := range report.Items {
		marker := "\033[31morphan\033[0m"
		if item.IsLinked {
			marker = "\033[32mlinked\033[0m"
		}
		fmt.Printf("[%s] %s", marker, item.Path)
		if item.Linked != nil {
			fmt.Printf("  ->  %s (%s)", item.Linked.DisplayName(), item.Linked.Model)
		}
		fmt.Println()
	}
	fmt.Println("------------------------------")
}
