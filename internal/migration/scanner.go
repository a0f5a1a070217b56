package migration

import (
	"log"
	"os"
	"path/filepath"

	"github.com/calloway-legal/firmsite/utils"
)

// FileDescriptor 磁盘上的一张候选图片
// 仅在一次迁移运行期间存在，不落库
type FileDescriptor struct {
	Name     string // 文件名
	Path     string // 绝对路径
	RelPath  string // 相对静态根目录的路径（斜杠分隔）
	MimeType string // 按扩展名推断
	Size     int64
}

// ScanImages 扫描静态根目录下的各子目录，返回扩展名可识别的图片文件
//
// 不存在的子目录记一条警告后跳过，不中断整个扫描；不递归进入
// 配置目录之外的嵌套目录。无状态，可重复调用。
func ScanImages(rootDir string, subdirs []string) []FileDescriptor {
	var files []FileDescriptor

	for _, subdir := range subdirs {
		dir := filepath.Join(rootDir, subdir)

		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				log.Printf("[scan] warning: directory %s does not exist, skipping", dir)
			} else {
				log.Printf("[scan] warning: cannot read directory %s: %v", dir, err)
			}
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			mimeType := utils.MimeFromExtension(entry.Name())
			if mimeType == "" {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				log.Printf("[scan] warning: cannot stat %s: %v", entry.Name(), err)
				continue
			}

			files = append(files, FileDescriptor{
				Name:     entry.Name(),
				Path:     filepath.Join(dir, entry.Name()),
				RelPath:  filepath.ToSlash(filepath.Join(subdir, entry.Name())),
				MimeType: mimeType,
				Size:     info.Size(),
			})
		}
	}

	return files
}

// LegacyPublicPath 文件在旧版站点上的公开路径
func (f FileDescriptor) LegacyPublicPath() string {
	return "/" + f.RelPath
}
