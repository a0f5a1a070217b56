package migration

import (
	"context"
	"fmt"
	"math"
)

// Health 图片 URL 健康状况
type Health struct {
	Total  int
	Counts map[Outcome]int
	// Score = round(100 * (api + external) / total)；total 为 0 时记 0
	Score int
}

// Diagnose 对全部图片记录做一次只读分类统计
func Diagnose(ctx context.Context, records RecordSource) (*Health, error) {
	refs, err := records.ListRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load image records: %w", err)
	}

	health := &Health{
		Total:  len(refs),
		Counts: make(map[Outcome]int),
	}
	for _, ref := range refs {
		health.Counts[Classify(ref.URL)]++
	}

	if health.Total > 0 {
		working := health.Counts[OutcomeAPI] + health.Counts[OutcomeExternal]
		health.Score = int(math.Round(100 * float64(working) / float64(health.Total)))
	}

	return health, nil
}

// Summary 人类可读的统计摘要
func (h *Health) Summary() string {
	return fmt.Sprintf(
		"total=%d api=%d external=%d filesystem=%d broken=%d none=%d health=%d%%",
		h.Total,
		h.Counts[OutcomeAPI],
		h.Counts[OutcomeExternal],
		h.Counts[OutcomeFilesystem],
		h.Counts[OutcomeBroken],
		h.Counts[OutcomeNone],
		h.Score,
	)
}
