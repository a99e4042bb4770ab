package meals

import "mealplanner/internal/domain/ingredients"

type Meal struct {
	ID          int64            `gorm:"primaryKey"`
	Name        string           `gorm:"not null"`
	Description *string          `gorm:"column:description"`
	Guide       *string          `gorm:"column:guide"`
	Ingredients []MealIngredient `gorm:"-"`
	Tags        []Tag            `gorm:"-"`
}

func (Meal) TableName() string {
	return "meals"
}

// MealIngredient is the read model of one ingredient line, carrying the
// ingredient together with its tags.
type MealIngredient struct {
	Ingredient ingredients.Ingredient
	Count      float64
	Unit       *string
}

type Tag struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

func (Tag) TableName() string {
	return "meal_tags"
}

type MealGroup struct {
	MealID    int64  `gorm:"primaryKey"`
	GroupUUID string `gorm:"column:group_uuid;type:uuid;primaryKey"`
}

func (MealGroup) TableName() string {
	return "meal_groups"
}

type TagGroup struct {
	MealTagID int64  `gorm:"primaryKey"`
	GroupUUID string `gorm:"column:group_uuid;type:uuid;primaryKey"`
}

func (TagGroup) TableName() string {
	return "meal_tag_groups"
}

type TagAssignment struct {
	MealID    int64 `gorm:"primaryKey"`
	MealTagID int64 `gorm:"primaryKey"`
}

func (TagAssignment) TableName() string {
	return "meal_tag_assignments"
}

// IngredientLine is both the write input and the stored meal_ingredients row.
type IngredientLine struct {
	MealID       int64   `gorm:"primaryKey"`
	IngredientID int64   `gorm:"primaryKey"`
	Count        float64 `gorm:"not null"`
	Unit         *string
}

func (IngredientLine) TableName() string {
	return "meal_ingredients"
}

type CreateInput struct {
	Name        string
	Description *string
	Guide       *string
	Ingredients []IngredientLine
	TagIDs      []int64
	GroupUUID   string
}

// UpdateInput leaves nil scalar fields unchanged. Ingredients and TagIDs
// always replace the current rows.
type UpdateInput struct {
	ID          int64
	Name        *string
	Description *string
	Guide       *string
	Ingredients []IngredientLine
	TagIDs      []int64
}
