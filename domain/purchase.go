package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Purchase struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ClientID      uint      `gorm:"column:client_id;not null;index" json:"client_id"`
	ProductID     string    `gorm:"column:product_id;not null" json:"product_id"` // catalog id, e.g. P001
	SizePurchased string    `gorm:"column:size_purchased;not null" json:"size_purchased"`
	FitFeedback   string    `gorm:"column:fit_feedback" json:"fit_feedback"` // free text: "perfect fit", "too tight", ...
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Context datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context,omitempty"` // channel, campaign, etc.
}

func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseRecord is the flattened view the sizing engine scores against:
// a past purchase joined with the fit type of the purchased product.
type PurchaseRecord struct {
	ProductID  string `json:"product_id"`
	ProductFit string `json:"product_fit"`
	Size       string `json:"size"`
	Feedback   string `json:"feedback"`
}
