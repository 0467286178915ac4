package models

import "time"

type Recipe struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	AuthorID    uint               `json:"author_id" gorm:"not null;index"`
	Author      User               `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Name        string             `json:"name" gorm:"uniqueIndex;size:200;not null"`
	Image       string             `json:"image"`
	Text        string             `json:"text" gorm:"size:500"`
	CookingTime int                `json:"cooking_time" gorm:"not null"`
	Tags        []Tag              `json:"tags" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []RecipeIngredient `json:"-" gorm:"foreignKey:RecipeID"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// RecipeIngredient links a recipe to an ingredient with a quantity.
// Duplicate ingredients within one recipe are rejected at write time;
// there is deliberately no composite unique index here.
type RecipeIngredient struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	RecipeID     uint       `json:"recipe_id" gorm:"not null;index"`
	Recipe       *Recipe    `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	IngredientID uint       `json:"ingredient_id" gorm:"not null;index"`
	Ingredient   Ingredient `json:"-" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
	Amount       int        `json:"amount" gorm:"not null"`
}

type IngredientLineRequest struct {
	ID     uint `json:"id" validate:"required"`
	Amount int  `json:"amount" validate:"required"`
}

type RecipeRequest struct {
	Name        string                  `json:"name" validate:"required,max=200"`
	Text        string                  `json:"text" validate:"max=500"`
	CookingTime int                     `json:"cooking_time" validate:"required,min=1"`
	Image       string                  `json:"image" validate:"required"`
	Tags        []uint                  `json:"tags" validate:"required,min=1"`
	Ingredients []IngredientLineRequest `json:"ingredients"`
}

// UpdateRecipeRequest carries partial-update semantics: nil scalar
// fields keep their previous value, while the tag and ingredient sets
// are always replaced in full.
type UpdateRecipeRequest struct {
	Name        *string                 `json:"name" validate:"omitempty,max=200"`
	Text        *string                 `json:"text" validate:"omitempty,max=500"`
	CookingTime *int                    `json:"cooking_time" validate:"omitempty,min=1"`
	Image       *string                 `json:"image"`
	Tags        []uint                  `json:"tags" validate:"required,min=1"`
	Ingredients []IngredientLineRequest `json:"ingredients"`
}

type RecipeIngredientLine struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeResponse struct {
	ID               uint                   `json:"id"`
	Tags             []Tag                  `json:"tags"`
	Author           UserResponse           `json:"author"`
	Ingredients      []RecipeIngredientLine `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
}

// ShortRecipeResponse is the preview shape used by favorite/cart
// responses and subscription listings.
type ShortRecipeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func NewShortRecipeResponse(r *Recipe) ShortRecipeResponse {
	return ShortRecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
