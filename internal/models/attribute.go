package models

import "time"

// Attribute is the constraint shared by Tag and Ingredient. Both are owned by
// exactly one user and linked to recipes through a join table.
type Attribute[T any] interface {
	*T
	GetID() uint
	OwnerID() uint
	SetOwnerID(id uint)
	SetName(name string)
	// Kind is the singular resource name used in messages and events.
	Kind() string
	// RecipeJoin names the join table and the column holding this attribute's id.
	RecipeJoin() (table, column string)
}

// Tag labels recipes, e.g. "Vegan" or "Dessert".
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	User      *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (t *Tag) GetID() uint { return t.ID }

func (t *Tag) OwnerID() uint { return t.UserID }

func (t *Tag) SetOwnerID(id uint) {
	t.UserID = id
}

func (t *Tag) SetName(name string) {
	t.Name = name
}

func (t *Tag) Kind() string { return "tag" }

func (t *Tag) RecipeJoin() (string, string) {
	return "recipe_tags", "tag_id"
}

// Ingredient is something a recipe is made of.
type Ingredient struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	User      *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (i *Ingredient) GetID() uint { return i.ID }

func (i *Ingredient) OwnerID() uint { return i.UserID }

func (i *Ingredient) SetOwnerID(id uint) {
	i.UserID = id
}

func (i *Ingredient) SetName(name string) {
	i.Name = name
}

func (i *Ingredient) Kind() string { return "ingredient" }

func (i *Ingredient) RecipeJoin() (string, string) {
	return "recipe_ingredients", "ingredient_id"
}
