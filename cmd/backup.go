package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/calloway-legal/firmsite/config"
	"github.com/calloway-legal/firmsite/database/models"
	imagesRepo "github.com/calloway-legal/firmsite/database/repo/images"
	"github.com/calloway-legal/firmsite/storage"
	"github.com/spf13/cobra"
)

// backupCmd 导出数据库里的图片二进制到备份存储
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export stored image binaries to the configured backup storage",
	Long: `Stream every image that has binary data in the database out to the
backup storage backend (local directory, MinIO bucket or WebDAV share,
see BACKUP_STORAGE_TYPE).

Example:
  firmsite backup
  firmsite backup --batch-size 100`,
	Run: func(cmd *cobra.Command, args []string) {
		batchSize, _ := cmd.Flags().GetInt("batch-size")
		if err := runBackup(batchSize); err != nil {
			log.Fatalf("Backup failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().Int("batch-size", 50, "Number of images loaded per database batch")
}

// mimeToExt 备份文件扩展名
var mimeToExt = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

func backupFileName(image *models.Image, stamp string) string {
	ext := ".bin"
	if image.MimeType != nil {
		if e, ok := mimeToExt[*image.MimeType]; ok {
			ext = e
		}
	}
	return fmt.Sprintf("%s/image_%d%s", stamp, image.ID, ext)
}

func runBackup(batchSize int) error {
	config.InitConfig()
	cfg := config.Get()

	if batchSize < 1 {
		batchSize = 50
	}

	db, err := initDB()
	if err != nil {
		return err
	}

	provider, err := storage.NewProvider(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize backup storage: %w", err)
	}

	ctx := context.Background()
	if err := provider.Health(ctx); err != nil {
		return fmt.Errorf("backup storage unavailable: %w", err)
	}
	log.Printf("Backing up to %s storage", provider.Name())

	stamp := time.Now().Format("20060102_150405")
	repo := imagesRepo.NewRepository(db)

	var exported int
	err = repo.ListWithData(ctx, batchSize, func(batch []models.Image) error {
		for i := range batch {
			image := &batch[i]
			contentType := "application/octet-stream"
			if image.MimeType != nil {
				contentType = *image.MimeType
			}
			name := backupFileName(image, stamp)
			if err := provider.Save(ctx, name, bytes.NewReader(image.Data), int64(len(image.Data)), contentType); err != nil {
				return fmt.Errorf("save %s: %w", name, err)
			}
			exported++
		}
		log.Printf("Exported %d images...", exported)
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Backup finished: %d images exported", exported)
	return nil
}
