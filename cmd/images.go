package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/calloway-legal/firmsite/config"
	"github.com/calloway-legal/firmsite/database"
	imagesRepo "github.com/calloway-legal/firmsite/database/repo/images"
	"github.com/calloway-legal/firmsite/internal/imagestore"
	"github.com/calloway-legal/firmsite/internal/migration"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// imagesCmd 图片数据管理命令组
var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Image data management commands",
}

// imagesMigrateCmd 静态图片入库迁移
var imagesMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate legacy filesystem images into the database",
	Long: `Scan the legacy static image directories, match files against image
records still pointing at filesystem paths, and move the binaries into
the database. Records already served from the database are left alone,
so the command is safe to run repeatedly.

Example:
  # Preview without writing anything
  firmsite images migrate --dry-run

  # Full run with per-file logging
  firmsite images migrate --verbose`,
	Run: func(cmd *cobra.Command, args []string) {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		verbose, _ := cmd.Flags().GetBool("verbose")
		if err := runImagesMigrate(dryRun, verbose); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	},
}

// imagesDiagnoseCmd 图片 URL 健康诊断
var imagesDiagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Report image URL health across all records",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runImagesDiagnose(); err != nil {
			log.Fatalf("Diagnosis failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(imagesCmd)
	imagesCmd.AddCommand(imagesMigrateCmd)
	imagesCmd.AddCommand(imagesDiagnoseCmd)

	imagesMigrateCmd.Flags().Bool("dry-run", false, "Log planned work without writing to the database (also honors DRY_RUN=true)")
	imagesMigrateCmd.Flags().BoolP("verbose", "v", false, "Per-file progress logging (also honors VERBOSE=true)")
}

// initDB 初始化数据库连接
func initDB() (*gorm.DB, error) {
	cfg := config.Get()
	db, err := database.NewDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

func runImagesMigrate(dryRun, verbose bool) error {
	config.InitConfig()
	cfg := config.Get()

	// 命令行开关和环境变量任一置位即生效
	opts := migration.Options{
		DryRun:  dryRun || cfg.MigrateDryRun,
		Verbose: verbose || cfg.MigrateVerboseLogs,
	}

	db, err := initDB()
	if err != nil {
		return err
	}

	repo := imagesRepo.NewRepository(db)
	store := imagestore.New(db, int64(cfg.UploadMaxSizeMB)<<20)

	orchestrator := migration.NewOrchestrator(migration.Config{
		StaticRoot:   cfg.MigrateStaticRoot,
		Subdirs:      cfg.MigrateSubdirs,
		MaxFileBytes: int64(cfg.MigrateMaxFileMB) << 20,
		BatchSize:    cfg.MigrateBatchSize,
		BatchPause:   cfg.MigrateBatchPause,
	}, repo, store)

	report, err := orchestrator.Run(context.Background(), opts)
	if err != nil {
		return err
	}

	log.Printf("Migration finished: scanned=%d processed=%d skipped=%d orphaned=%d errors=%d",
		report.Scanned, report.Processed, report.Skipped, report.Orphaned, len(report.Errors))
	for _, itemErr := range report.Errors {
		log.Printf("  [error] file=%s record=%d: %s", itemErr.File, itemErr.RecordID, itemErr.Reason)
	}
	if opts.DryRun {
		log.Println("Dry run: no database changes were made")
	}
	return nil
}

func runImagesDiagnose() error {
	config.InitConfig()

	db, err := initDB()
	if err != nil {
		return err
	}

	repo := imagesRepo.NewRepository(db)
	health, err := migration.Diagnose(context.Background(), repo)
	if err != nil {
		return err
	}

	fmt.Println(health.Summary())
	return nil
}
