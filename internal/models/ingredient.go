package models

// Ingredient is reference data: read-open, mutated by admins only.
type Ingredient struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"uniqueIndex;size:75;not null"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:80;not null;default:'g'"`
}

type IngredientRequest struct {
	Name            string `json:"name" validate:"required,max=75"`
	MeasurementUnit string `json:"measurement_unit" validate:"required"`
}

type IngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func NewIngredientResponse(i *Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:              i.ID,
		Name:            i.Name,
		MeasurementUnit: UnitLabel(i.MeasurementUnit),
	}
}
