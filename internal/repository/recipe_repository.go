package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sefazor/recipebook-backend/internal/models"
)

// RecipeFilter narrows recipe listings. The viewer-scoped flags
// (Favorited, InCart) are only applied when ViewerID is set; anonymous
// requests ignore them.
type RecipeFilter struct {
	TagSlugs  []string
	AuthorID  uint
	Favorited *bool
	InCart    *bool
	ViewerID  uint
}

type RecipeRepository interface {
	// Create persists the recipe together with its tag links and
	// ingredient lines in one transaction.
	Create(ctx context.Context, recipe *models.Recipe, tags []models.Tag, lines []models.RecipeIngredient) error
	// Update replaces the tag set and the ingredient lines wholesale
	// and saves the scalar fields, all in one transaction.
	Update(ctx context.Context, recipe *models.Recipe, tags []models.Tag, lines []models.RecipeIngredient) error
	GetByID(ctx context.Context, id uint) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error)
	ListByAuthor(ctx context.Context, authorID uint, limit int) ([]models.Recipe, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
	NameExists(ctx context.Context, name string, excludeID uint) (bool, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe, tags []models.Tag, lines []models.RecipeIngredient) error {
	recipe.Tags = tags
	recipe.Ingredients = lines

	// gorm inserts the recipe, the recipe_tags rows and the ingredient
	// lines inside a single transaction.
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe, tags []models.Tag, lines []models.RecipeIngredient) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}

		// Clear-then-recreate: the previous ingredient set never
		// survives an update.
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].RecipeID = recipe.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}

		return tx.Model(recipe).Select("name", "image", "text", "cooking_time", "updated_at").Updates(map[string]interface{}{
			"name":         recipe.Name,
			"image":        recipe.Image,
			"text":         recipe.Text,
			"cooking_time": recipe.CookingTime,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Distinct("recipes.*")

	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
	}
	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if filter.ViewerID != 0 && filter.Favorited != nil {
		sub := r.db.Model(&models.Favorite{}).
			Select("recipe_id").
			Where("user_id = ?", filter.ViewerID)
		if *filter.Favorited {
			query = query.Where("recipes.id IN (?)", sub)
		} else {
			query = query.Where("recipes.id NOT IN (?)", sub)
		}
	}
	if filter.ViewerID != 0 && filter.InCart != nil {
		sub := r.db.Model(&models.ShoppingCart{}).
			Select("recipe_id").
			Where("user_id = ?", filter.ViewerID)
		if *filter.InCart {
			query = query.Where("recipes.id IN (?)", sub)
		} else {
			query = query.Where("recipes.id NOT IN (?)", sub)
		}
	}

	var recipes []models.Recipe
	err := query.Order("recipes.cooking_time").Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) ListByAuthor(ctx context.Context, authorID uint, limit int) ([]models.Recipe, error) {
	query := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("cooking_time")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var recipes []models.Recipe
	err := query.Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	// Favorites, cart rows and ingredient lines go with the recipe via
	// the FK cascade constraints.
	result := r.db.WithContext(ctx).Delete(&models.Recipe{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *recipeRepository) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
