package services

import (
	"apartment-geo-enrich/internal/platform/obs"
	"apartment-geo-enrich/internal/severity"
	"apartment-geo-enrich/internal/tabular"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

type SeverityRequest struct {
	CaseColumn           string
	ClassificationColumn string
	SeverityColumn       string
	// Rows whose case number lacks this prefix are dropped; empty keeps all.
	CasePrefix string
}

type SeveritySummary struct {
	Dropped int
	// Classifications absent from the table, sorted.
	Unmapped     []string
	Distribution map[int]int
	Unknown      int
}

// ApplySeverity filters t to the wanted case numbers and writes a severity
// column. Unknown severities are written as empty cells.
func ApplySeverity(ctx context.Context, req SeverityRequest, t *tabular.Table) (_ SeveritySummary, err error) {
	defer obs.Time(ctx, "apply_severity")(&err)

	if t == nil {
		return SeveritySummary{}, errors.New("apply severity: table is nil")
	}
	if req.SeverityColumn == "" {
		return SeveritySummary{}, errors.New("apply severity: severity column name must be set")
	}
	if err := t.Require(req.CaseColumn, req.ClassificationColumn); err != nil {
		return SeveritySummary{}, fmt.Errorf("apply severity: %w", err)
	}

	summary := SeveritySummary{Distribution: map[int]int{}}
	if req.CasePrefix != "" {
		summary.Dropped = t.Filter(func(i int) bool {
			return strings.HasPrefix(t.Value(i, req.CaseColumn), req.CasePrefix)
		})
	}

	unmapped := map[string]struct{}{}
	t.AddColumn(req.SeverityColumn)
	for i := range t.Rows {
		c := t.Value(i, req.ClassificationColumn)
		s, listed := severity.Lookup(c)
		if !listed && c != "" {
			unmapped[c] = struct{}{}
		}
		// Float form, e.g. "5.0"; empty for Unknown.
		value := ""
		if lvl, ok := s.Level(); ok {
			summary.Distribution[lvl]++
			value = tabular.FormatFloat(float64(lvl))
		} else {
			summary.Unknown++
		}
		t.Set(i, req.SeverityColumn, value)
	}

	for c := range unmapped {
		summary.Unmapped = append(summary.Unmapped, c)
	}
	sort.Strings(summary.Unmapped)

	log := obs.Logger(ctx)
	if len(summary.Unmapped) > 0 {
		log.Warn("unmapped classifications left without severity", zap.Int("count", len(summary.Unmapped)))
		for _, c := range summary.Unmapped {
			log.Warn("unmapped classification", zap.String("classification", c))
		}
	}

	levels := make([]int, 0, len(summary.Distribution))
	for lvl := range summary.Distribution {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)
	for _, lvl := range levels {
		log.Info("severity distribution", zap.Int("severity", lvl), zap.Int("rows", summary.Distribution[lvl]))
	}
	log.Info("severity column added",
		zap.Int("rows", t.Len()),
		zap.Int("dropped", summary.Dropped),
		zap.Int("unknown", summary.Unknown),
	)
	return summary, nil
}
