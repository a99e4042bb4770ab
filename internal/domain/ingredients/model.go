package ingredients

type Ingredient struct {
	ID          int64   `gorm:"primaryKey"`
	Name        string  `gorm:"not null"`
	DefaultUnit *string `gorm:"column:default_unit"`
	Tags        []Tag   `gorm:"-"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

type Tag struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

func (Tag) TableName() string {
	return "ingredient_tags"
}

type IngredientGroup struct {
	IngredientID int64  `gorm:"primaryKey"`
	GroupUUID    string `gorm:"column:group_uuid;type:uuid;primaryKey"`
}

func (IngredientGroup) TableName() string {
	return "ingredient_groups"
}

type TagGroup struct {
	IngredientTagID int64  `gorm:"primaryKey"`
	GroupUUID       string `gorm:"column:group_uuid;type:uuid;primaryKey"`
}

func (TagGroup) TableName() string {
	return "ingredient_tag_groups"
}

type TagAssignment struct {
	IngredientID    int64 `gorm:"primaryKey"`
	IngredientTagID int64 `gorm:"primaryKey"`
}

func (TagAssignment) TableName() string {
	return "ingredient_tag_assignments"
}

type CreateInput struct {
	Name        string
	DefaultUnit *string
	TagIDs      []int64
	GroupUUID   string
}

// UpdateInput leaves nil fields unchanged. TagIDs always replaces the
// current assignments.
type UpdateInput struct {
	ID          int64
	Name        *string
	DefaultUnit *string
	TagIDs      []int64
}
