package models

type Tag struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;size:30;not null"`
	Color string `json:"color" gorm:"uniqueIndex;size:16;not null"`
	Slug  string `json:"slug" gorm:"uniqueIndex;size:50;not null"`
}

type TagRequest struct {
	Name  string `json:"name" validate:"required,max=30"`
	Color string `json:"color" validate:"required,max=16"`
	Slug  string `json:"slug" validate:"required,max=50"`
}
