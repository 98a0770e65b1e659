package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id                 BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_id         TEXT UNIQUE,
//     name               TEXT,
//     fit                TEXT,
//     fabric             TEXT,
//     available_sizes    JSONB,
//     size_chart         JSONB,
//     model_height_cm    INT,
//     model_wearing_size TEXT,
//     created_at         TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID string `gorm:"column:product_id;unique;not null" json:"product_id"` // catalog id, e.g. P001
	Name      string `gorm:"column:name;not null" json:"name"`
	Fit       string `gorm:"column:fit" json:"fit"`       // slim, tailored, regular, loose, oversized
	Fabric    string `gorm:"column:fabric" json:"fabric"` // cotton, wool, polyester, linen, blend

	AvailableSizes datatypes.JSON `gorm:"column:available_sizes;type:jsonb" json:"available_sizes"`
	SizeChart      datatypes.JSON `gorm:"column:size_chart;type:jsonb" json:"size_chart"`

	// Reference model shown wearing the garment, used for fit notes.
	ModelHeightCM    int    `gorm:"column:model_height_cm" json:"model_height_cm"`
	ModelWearingSize string `gorm:"column:model_wearing_size" json:"model_wearing_size"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

// MeasurementRange is the acceptable bound for one body dimension of a size.
type MeasurementRange struct {
	MinCM float64 `json:"min_cm"`
	MaxCM float64 `json:"max_cm"`
}

// SizeSpec holds the target ranges of a single size label.
type SizeSpec struct {
	Bust  MeasurementRange `json:"bust"`
	Waist MeasurementRange `json:"waist"`
	Hips  MeasurementRange `json:"hips"`
}

// SizeChartSpec maps a size label ("S", "M", ...) to its target ranges.
type SizeChartSpec map[string]SizeSpec

// Sizes decodes the available size labels stored in the JSONB column.
func (p Product) Sizes() ([]string, error) {
	if len(p.AvailableSizes) == 0 {
		return nil, nil
	}
	var sizes []string
	if err := json.Unmarshal(p.AvailableSizes, &sizes); err != nil {
		return nil, err
	}
	return sizes, nil
}

// Chart decodes the size chart stored in the JSONB column.
func (p Product) Chart() (SizeChartSpec, error) {
	if len(p.SizeChart) == 0 {
		return SizeChartSpec{}, nil
	}
	var chart SizeChartSpec
	if err := json.Unmarshal(p.SizeChart, &chart); err != nil {
		return nil, err
	}
	return chart, nil
}
