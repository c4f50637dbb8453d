package imaging

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/adjustkit/claimlens/internal/model"
)

// captureDatePattern matches dates embedded in camera-style filenames,
// e.g. IMG_20260115_093012 or damage-2026-01-15
var captureDatePattern = regexp.MustCompile(`(20\d{2})[-_.]?(0[1-9]|1[0-2])[-_.]?(0[1-9]|[12]\d|3[01])`)

// imageExtensions are treated as photos when no keyword matches
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// BaselineAnalyzer classifies attachments from filename keywords and
// file metadata alone. It is the default analyzer: cheap, deterministic,
// and honest about its confidence. The interface leaves room for a
// vision-model analyzer without touching any caller.
type BaselineAnalyzer struct {
	damageKeywords   []string
	receiptKeywords  []string
	documentKeywords []string
}

// NewBaselineAnalyzer creates a baseline analyzer with the built-in
// keyword tables
func NewBaselineAnalyzer() *BaselineAnalyzer {
	return &BaselineAnalyzer{
		damageKeywords: []string{
			"damage", "broken", "crack", "leak", "fire", "water",
			"ceiling", "wall", "floor", "roof", "window", "door",
			"photo", "img", "pic", "image",
		},
		receiptKeywords:  []string{"receipt", "invoice", "estimate", "quote", "bill"},
		documentKeywords: []string{"doc", "report", "form", "police", "incident"},
	}
}

// Name returns the analyzer name
func (a *BaselineAnalyzer) Name() string {
	return "baseline"
}

// Analyze classifies one attachment by filename
func (a *BaselineAnalyzer) Analyze(_ context.Context, imagePath string) (*model.ImageAnalysis, error) {
	stem := strings.ToLower(strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath)))
	ext := strings.ToLower(filepath.Ext(imagePath))

	info, err := os.Stat(imagePath)
	if err != nil {
		return &model.ImageAnalysis{
			ImagePath:           imagePath,
			ImageType:           model.ImageOther,
			ImageTypeConfidence: 0.1,
			ContainsDamage:      false,
			DamageConfidence:    0.0,
			Metadata: map[string]string{
				"error":  "File not found",
				"exists": "false",
			},
		}, nil
	}

	result := &model.ImageAnalysis{
		ImagePath:           imagePath,
		ImageType:           model.ImageOther,
		ImageTypeConfidence: 0.3,
		ContainsDamage:      false,
		DamageConfidence:    0.3,
		CapturedAt:          captureDateFromName(stem),
		ObservedSeverity:    model.SeverityUnknown,
		Metadata: map[string]string{
			"exists":    "true",
			"file_size": strconv.FormatInt(info.Size(), 10),
			"extension": ext,
		},
	}

	switch {
	case containsAny(stem, a.receiptKeywords):
		result.ImageType = model.ImageReceipt
		result.ImageTypeConfidence = 0.7
		result.ContainsDamage = false
		result.DamageConfidence = 0.1
	case containsAny(stem, a.documentKeywords):
		result.ImageType = model.ImageDocument
		result.ImageTypeConfidence = 0.7
		result.ContainsDamage = false
		result.DamageConfidence = 0.1
	case containsAny(stem, a.damageKeywords):
		result.ImageType = model.ImageDamagePhoto
		result.ImageTypeConfidence = 0.6
		result.ContainsDamage = true
		result.DamageConfidence = 0.6
	case imageExtensions[ext]:
		// No keyword signal but it is an image: assume a damage photo
		result.ImageType = model.ImageDamagePhoto
		result.ImageTypeConfidence = 0.5
		result.ContainsDamage = true
		result.DamageConfidence = 0.5
	}

	return result, nil
}

// AnalyzeBatch classifies attachments in submission order
func (a *BaselineAnalyzer) AnalyzeBatch(ctx context.Context, imagePaths []string) ([]model.ImageAnalysis, error) {
	results := make([]model.ImageAnalysis, 0, len(imagePaths))
	for _, path := range imagePaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := a.Analyze(ctx, path)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

// captureDateFromName pulls a capture date out of camera-style
// filenames. Returns nil unless a plausible date is present.
func captureDateFromName(stem string) *time.Time {
	m := captureDatePattern.FindStringSubmatch(stem)
	if m == nil {
		return nil
	}
	ts, err := time.Parse("20060102", m[1]+m[2]+m[3])
	if err != nil {
		return nil
	}
	return &ts
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
