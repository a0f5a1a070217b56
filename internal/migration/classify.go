package migration

import (
	"strings"

	"github.com/calloway-legal/firmsite/database/models"
)

// Outcome 图片 URL 的分类结果
type Outcome string

const (
	// OutcomeFilesystem 旧版静态路径，图片仍在磁盘上
	OutcomeFilesystem Outcome = "filesystem"
	// OutcomeAPI 规范 API 路径，图片已入库
	OutcomeAPI Outcome = "api"
	// OutcomeExternal 外部 URL
	OutcomeExternal Outcome = "external"
	// OutcomeBroken 非空但无法识别的 URL
	OutcomeBroken Outcome = "broken"
	// OutcomeNone URL 为空
	OutcomeNone Outcome = "none"
)

// Classify 按 URL 的字符串形态分类，首个命中即返回
// 纯词法判断，不做可达性检查：以 http 开头的畸形 URL 仍归为 external
func Classify(url *string) Outcome {
	if url == nil || *url == "" {
		return OutcomeNone
	}

	switch {
	case strings.HasPrefix(*url, models.LegacyImagePrefix):
		return OutcomeFilesystem
	case strings.HasPrefix(*url, models.APIImagePrefix):
		return OutcomeAPI
	case strings.HasPrefix(*url, "http"):
		return OutcomeExternal
	default:
		return OutcomeBroken
	}
}
