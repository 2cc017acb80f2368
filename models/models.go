package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID           string    `json:"id" gorm:"type:uuid;primary_key"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Recipes      []Recipe  `json:"recipes,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Recipe struct {
	ID               string    `json:"id" gorm:"type:uuid;primary_key"`
	UserID           string    `json:"user_id" gorm:"type:uuid;not null;index"`
	Name             string    `json:"name" gorm:"not null"`
	Method           string    `json:"method" gorm:"not null"`
	CoffeeWeight     float64   `json:"coffee_weight" gorm:"not null"`
	TotalWaterWeight float64   `json:"total_water_weight" gorm:"not null"`
	GrindSize        int       `json:"grind_size" gorm:"not null"`
	WaterType        *string   `json:"water_type"`
	CoffeeID         *string   `json:"coffee_id" gorm:"type:uuid"`
	IsPublic         bool      `json:"is_public" gorm:"default:false"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Pours []Pour `json:"pours" gorm:"foreignKey:RecipeID"`
}

func (r *Recipe) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type Pour struct {
	ID          string    `json:"id" gorm:"type:uuid;primary_key"`
	RecipeID    string    `json:"recipe_id" gorm:"type:uuid;not null;index"`
	Position    int       `json:"position" gorm:"not null"`
	Time        string    `json:"time" gorm:"not null"` // "mm:ss"
	WaterAmount int       `json:"water_amount" gorm:"not null"`
	Temperature *float64  `json:"temperature"`
	TempUnit    *string   `json:"temp_unit" gorm:"type:varchar(1)"` // "C" or "F"
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Pour) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type Coffee struct {
	ID          string                      `json:"id" gorm:"type:uuid;primary_key"`
	UserID      string                      `json:"user_id" gorm:"type:uuid;not null;index"`
	Name        string                      `json:"name" gorm:"not null"`
	Roaster     string                      `json:"roaster"`
	RoastLevel  string                      `json:"roast_level" gorm:"type:varchar(20)"`
	Origin      *string                     `json:"origin"`
	Farm        *string                     `json:"farm"`
	Altitude    *int                        `json:"altitude"` // meters
	Process     *string                     `json:"process"`
	Variety     *string                     `json:"variety"`
	FlavorNotes datatypes.JSONSlice[string] `json:"flavor_notes"`
	Notes       *string                     `json:"notes"`
	ImageURL    *string                     `json:"image_url"`
	Archived    bool                        `json:"archived" gorm:"default:false"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (c *Coffee) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// LogPour is a pour captured inside a brew log's tweak override. It is stored
// as JSON on the log, decoupled from the recipe's live pour rows.
type LogPour struct {
	Time        string   `json:"time"`
	WaterAmount int      `json:"water_amount"`
	Temperature *float64 `json:"temperature,omitempty"`
	TempUnit    *string  `json:"temp_unit,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// BrewLog records one brewing session against a recipe. The recipe name and
// method are snapshots so the log keeps rendering if the recipe changes or
// disappears. Logs are immutable after creation; only deletion is offered.
type BrewLog struct {
	ID         string    `json:"id" gorm:"type:uuid;primary_key"`
	UserID     string    `json:"user_id" gorm:"type:uuid;not null;index"`
	RecipeID   string    `json:"recipe_id" gorm:"type:uuid;not null;index"`
	RecipeName string    `json:"recipe_name" gorm:"not null"`
	Method     string    `json:"method" gorm:"not null"`
	CoffeeID   *string   `json:"coffee_id" gorm:"type:uuid"`
	CoffeeName *string   `json:"coffee_name"`
	BrewedAt   time.Time `json:"brewed_at"`

	Acidity    int `json:"acidity" gorm:"not null;default:0"`
	Sweetness  int `json:"sweetness" gorm:"not null;default:0"`
	Body       int `json:"body" gorm:"not null;default:0"`
	Bitterness int `json:"bitterness" gorm:"not null;default:0"`

	Rating int                         `json:"rating" gorm:"not null;check:rating>=1 AND rating<=5"`
	Notes  *string                     `json:"notes"`
	Images datatypes.JSONSlice[string] `json:"images"`

	// Tweak overrides. Nil means "use the recipe's value"; a non-empty
	// TweakPours replaces the recipe's pour list wholesale.
	TweakCoffeeWeight     *float64                     `json:"tweak_coffee_weight"`
	TweakTotalWaterWeight *float64                     `json:"tweak_total_water_weight"`
	TweakGrindSize        *int                         `json:"tweak_grind_size"`
	TweakTemperature      *float64                     `json:"tweak_temperature"`
	TweakPours            datatypes.JSONSlice[LogPour] `json:"tweak_pours"`

	CreatedAt time.Time `json:"created_at"`
}

func (l *BrewLog) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// UserSettings holds per-user preferences. Loaded on demand and cached; never
// treated as ambient global state.
type UserSettings struct {
	UserID          string    `json:"user_id" gorm:"type:uuid;primary_key"`
	Grinder         string    `json:"grinder"`
	TemperatureUnit string    `json:"temperature_unit" gorm:"type:varchar(1);default:'C'"`
	Locale          string    `json:"locale" gorm:"default:'en'"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Auth types
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// PourInput is the request shape for a recipe's pour list. The whole list is
// replaced on every edit; there is no partial patch.
type PourInput struct {
	Time        string   `json:"time" binding:"required"`
	WaterAmount int      `json:"water_amount" binding:"min=0"`
	Temperature *float64 `json:"temperature"`
	TempUnit    *string  `json:"temp_unit" binding:"omitempty,oneof=C F"`
	Notes       *string  `json:"notes"`
}
