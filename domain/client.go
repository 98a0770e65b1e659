package domain

import (
	"time"

	"gorm.io/gorm"
)

// CREATE TABLE public.clients (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     client_id       TEXT UNIQUE,
//     name            TEXT,
//     age             INT,
//     height_cm       INT,
//     weight_kg       NUMERIC,
//     bust_cm         NUMERIC,
//     waist_cm        NUMERIC,
//     hips_cm         NUMERIC,
//     preferred_fit   TEXT,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Client struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClientID string `gorm:"column:client_id;unique;not null" json:"client_id"` // catalog id, e.g. C0001
	Name     string `gorm:"column:name;not null" json:"name"`
	Age      int    `gorm:"column:age" json:"age"`
	HeightCM int    `gorm:"column:height_cm" json:"height_cm"`
	WeightKG float64 `gorm:"column:weight_kg;type:numeric" json:"weight_kg"`

	// Body measurements are nullable: profiles imported from partial data
	// may miss any of the three dimensions.
	BustCM  *float64 `gorm:"column:bust_cm;type:numeric" json:"bust_cm,omitempty"`
	WaistCM *float64 `gorm:"column:waist_cm;type:numeric" json:"waist_cm,omitempty"`
	HipsCM  *float64 `gorm:"column:hips_cm;type:numeric" json:"hips_cm,omitempty"`

	PreferredFit string `gorm:"column:preferred_fit" json:"preferred_fit"`

	Purchases []Purchase `gorm:"foreignKey:ClientID;references:ID" json:"purchases,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Client) TableName() string {
	return "clients"
}

// HasMeasurements reports whether at least one body dimension is known.
func (c Client) HasMeasurements() bool {
	return c.BustCM != nil || c.WaistCM != nil || c.HipsCM != nil
}
