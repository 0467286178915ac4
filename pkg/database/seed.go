package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sefazor/recipebook-backend/internal/models"
)

var seedTags = []models.Tag{
	{Name: "breakfast", Color: "orange", Slug: "breakfast"},
	{Name: "lunch", Color: "green", Slug: "lunch"},
	{Name: "dinner", Color: "purple", Slug: "dinner"},
}

type ingredientFixture struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// Seed inserts the fixed tag set and the bundled ingredient catalog.
// Inserts are idempotent (skip if the row already exists) and a broken
// fixture row is logged and skipped rather than aborting the load.
func Seed(db *gorm.DB, fixturesDir string, logger *zap.Logger) error {
	for _, tag := range seedTags {
		var count int64
		db.Model(&models.Tag{}).Where("slug = ?", tag.Slug).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&tag).Error; err != nil {
			return fmt.Errorf("failed to seed tag %q: %w", tag.Slug, err)
		}
	}

	path := filepath.Join(fixturesDir, "ingredients.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read ingredient fixture: %w", err)
	}

	var fixtures []ingredientFixture
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return fmt.Errorf("failed to parse ingredient fixture: %w", err)
	}

	loaded, skipped := 0, 0
	for _, row := range fixtures {
		if !models.IsValidUnit(row.MeasurementUnit) {
			logger.Warn("skipping ingredient with unknown unit",
				zap.String("name", row.Name),
				zap.String("unit", row.MeasurementUnit))
			skipped++
			continue
		}

		var count int64
		db.Model(&models.Ingredient{}).Where("name = ?", row.Name).Count(&count)
		if count > 0 {
			continue
		}

		ingredient := models.Ingredient{Name: row.Name, MeasurementUnit: row.MeasurementUnit}
		if err := db.Create(&ingredient).Error; err != nil {
			logger.Warn("skipping ingredient row",
				zap.String("name", row.Name),
				zap.Error(err))
			skipped++
			continue
		}
		loaded++
	}

	logger.Info("ingredient fixture applied",
		zap.Int("loaded", loaded),
		zap.Int("skipped", skipped))
	return nil
}
