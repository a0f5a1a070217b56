// Package migration moves legacy filesystem images into the database
// and reports on the health of stored image URLs.
package migration

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/calloway-legal/firmsite/database/repo/images"
	"github.com/calloway-legal/firmsite/utils"
)

// RecordSource 迁移读取图片记录的来源
type RecordSource interface {
	ListRefs(ctx context.Context) ([]images.ImageRef, error)
}

// BinaryStore 迁移写入图片数据的目标
type BinaryStore interface {
	Save(ctx context.Context, id uint, data []byte, mimeType string) error
}

// Options 迁移运行选项
type Options struct {
	DryRun  bool
	Verbose bool
}

// Config 迁移配置，均来自环境配置
type Config struct {
	StaticRoot   string
	Subdirs      []string
	MaxFileBytes int64         // 单文件迁移上限（与入库上限独立）
	BatchSize    int           // 每批处理条数
	BatchPause   time.Duration // 批间停顿，平滑数据库负载
}

// ItemError 单条目失败记录
type ItemError struct {
	File     string
	RecordID uint
	Reason   string
}

// Report 迁移结果汇总
type Report struct {
	Scanned   int // 扫描到的文件数
	Processed int // 成功迁移（或 dry-run 中将要迁移）的记录数
	Skipped   int // 校验未通过而跳过的文件数
	Orphaned  int // 未匹配到任何记录的文件数
	Errors    []ItemError
}

// Orchestrator 文件系统到数据库的图片迁移
type Orchestrator struct {
	cfg     Config
	records RecordSource
	store   BinaryStore
}

// NewOrchestrator 创建迁移编排器
func NewOrchestrator(cfg Config, records RecordSource, store BinaryStore) *Orchestrator {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = 5 << 20 // 5MB
	}
	return &Orchestrator{cfg: cfg, records: records, store: store}
}

// matched 一个文件与其命中的记录
type matched struct {
	file   FileDescriptor
	record images.ImageRef
}

// Run 执行一次迁移
//
// 单个文件的读写失败只记入 Errors，继续处理后续条目；重跑本身就是
// 恢复手段（已迁移记录不再被分类为 filesystem，天然收敛）。
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*Report, error) {
	report := &Report{}

	files := ScanImages(o.cfg.StaticRoot, o.cfg.Subdirs)
	report.Scanned = len(files)
	log.Printf("[migrate] found %d candidate files under %s", len(files), o.cfg.StaticRoot)

	refs, err := o.records.ListRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load image records: %w", err)
	}

	// 仅 filesystem/broken 记录参与匹配；api/external 已是终态
	var candidates []images.ImageRef
	taken := make(map[uint]bool)
	for _, ref := range refs {
		switch Classify(ref.URL) {
		case OutcomeFilesystem, OutcomeBroken:
			candidates = append(candidates, ref)
		}
	}

	var batch []matched
	for _, file := range files {
		ref, ok := o.match(file, candidates, taken)
		if !ok {
			log.Printf("[migrate] orphaned file %s: no matching record", file.RelPath)
			report.Orphaned++
			// 为孤儿文件自动建新记录的分支按约定保持关闭；
			// 在拿到产品侧确认之前不要恢复它。
			continue
		}
		taken[ref.ID] = true

		batch = append(batch, matched{file: file, record: ref})
		if len(batch) >= o.cfg.BatchSize {
			o.processBatch(ctx, batch, opts, report)
			batch = batch[:0]
			if o.cfg.BatchPause > 0 {
				time.Sleep(o.cfg.BatchPause)
			}
		}
	}
	if len(batch) > 0 {
		o.processBatch(ctx, batch, opts, report)
	}

	return report, nil
}

// match 为文件寻找归属记录：先按旧版公开路径精确匹配，再按文件名
// 子串匹配兜底。多条记录都可匹配时取第一条，不报错（沿袭原有行为，
// 已在设计文档中标记为已知弱点）。
func (o *Orchestrator) match(file FileDescriptor, candidates []images.ImageRef, taken map[uint]bool) (images.ImageRef, bool) {
	legacyPath := file.LegacyPublicPath()

	for _, ref := range candidates {
		if taken[ref.ID] || ref.URL == nil {
			continue
		}
		if *ref.URL == legacyPath {
			return ref, true
		}
	}

	for _, ref := range candidates {
		if taken[ref.ID] || ref.URL == nil {
			continue
		}
		if strings.Contains(*ref.URL, file.Name) {
			return ref, true
		}
	}

	return images.ImageRef{}, false
}

// processBatch 顺序处理一批已匹配条目
func (o *Orchestrator) processBatch(ctx context.Context, batch []matched, opts Options, report *Report) {
	for _, m := range batch {
		if err := o.processOne(ctx, m, opts); err != nil {
			if verr, ok := err.(*validationError); ok {
				log.Printf("[migrate] skipping %s: %s", m.file.RelPath, verr.reason)
				report.Skipped++
				continue
			}
			log.Printf("[migrate] error on %s (record %d): %v", m.file.RelPath, m.record.ID, err)
			report.Errors = append(report.Errors, ItemError{
				File:     m.file.RelPath,
				RecordID: m.record.ID,
				Reason:   err.Error(),
			})
			continue
		}
		report.Processed++
	}
}

// validationError 校验类失败，按条目跳过而非计为错误
type validationError struct {
	reason string
}

func (e *validationError) Error() string { return e.reason }

// processOne 迁移单个文件到其记录
func (o *Orchestrator) processOne(ctx context.Context, m matched, opts Options) error {
	if m.file.Size > o.cfg.MaxFileBytes {
		return &validationError{reason: fmt.Sprintf("file too large: %d bytes (limit %d)", m.file.Size, o.cfg.MaxFileBytes)}
	}
	if !utils.IsAllowedImageMime(m.file.MimeType) {
		return &validationError{reason: fmt.Sprintf("mime type %q not allowed", m.file.MimeType)}
	}

	if opts.DryRun {
		log.Printf("[migrate] dry-run: would migrate %s -> record %d (%s)",
			m.file.RelPath, m.record.ID, m.file.MimeType)
		return nil
	}

	data, err := os.ReadFile(m.file.Path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	if err := o.store.Save(ctx, m.record.ID, data, m.file.MimeType); err != nil {
		return fmt.Errorf("store bytes: %w", err)
	}

	if opts.Verbose {
		log.Printf("[migrate] migrated %s -> record %d (%d bytes)", m.file.RelPath, m.record.ID, len(data))
	}
	return nil
}
