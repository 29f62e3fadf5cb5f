package models

import "time"

// Recipe is owned by one user and references that user's tags and ingredients.
type Recipe struct {
	ID          uint         `gorm:"primaryKey"`
	Title       string       `gorm:"type:varchar(255);not null"`
	TimeMinutes int          `gorm:"not null"`
	Price       float64      `gorm:"type:decimal(5,2);not null"`
	Link        string       `gorm:"type:varchar(255)"`
	UserID      uint         `gorm:"not null;index"`
	User        *User        `gorm:"constraint:OnDelete:CASCADE"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecipeSummary is the compact list representation: associations are ids.
type RecipeSummary struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

// RecipeDetail is the expanded representation with nested tags and ingredients.
type RecipeDetail struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	TimeMinutes int          `json:"time_minutes"`
	Price       float64      `json:"price"`
	Link        string       `json:"link"`
	Tags        []Tag        `json:"tags"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Summary projects r for list views.
func (r *Recipe) Summary() RecipeSummary {
	s := RecipeSummary{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        make([]uint, 0, len(r.Tags)),
		Ingredients: make([]uint, 0, len(r.Ingredients)),
	}
	for _, t := range r.Tags {
		s.Tags = append(s.Tags, t.ID)
	}
	for _, i := range r.Ingredients {
		s.Ingredients = append(s.Ingredients, i.ID)
	}
	return s
}

// Detail projects r for detail views.
func (r *Recipe) Detail() RecipeDetail {
	d := RecipeDetail{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        r.Tags,
		Ingredients: r.Ingredients,
	}
	// Empty associations serialize as [] rather than null.
	if d.Tags == nil {
		d.Tags = []Tag{}
	}
	if d.Ingredients == nil {
		d.Ingredients = []Ingredient{}
	}
	return d
}

// Summaries projects a list of recipes.
func Summaries(recipes []Recipe) []RecipeSummary {
	out := make([]RecipeSummary, 0, len(recipes))
	for i := range recipes {
		out = append(out, recipes[i].Summary())
	}
	return out
}
