package models

import "time"

type SparePart struct {
	ID          string  `json:"id" gorm:"primaryKey;size:191"`
	Name        string  `json:"name" gorm:"not null;size:255"`
	Description string  `json:"description" gorm:"type:text"`
	Image       string  `json:"image" gorm:"size:500"` // blob store key, "" when none
	Price       float64 `json:"price" gorm:"not null"`

	PartLocationID string `json:"part_location_id" gorm:"not null;size:191;index"`
	CarTypeID      string `json:"car_type_id" gorm:"not null;size:191;index"`
	CarModelID     string `json:"car_model_id" gorm:"not null;size:191;index"`
	OwnerID        string `json:"owner_id" gorm:"not null;size:191;index"`

	CreatedAt time.Time `json:"created_at"`

	PartLocation PartLocation `json:"part_location,omitempty" gorm:"foreignKey:PartLocationID"`
	CarType      CarType      `json:"car_type,omitempty" gorm:"foreignKey:CarTypeID"`
	CarModel     CarModel     `json:"car_model,omitempty" gorm:"foreignKey:CarModelID"`
	Owner        User         `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

// OwnedBy compares the stored owner reference against a session user ID.
// Both sides are canonical string UUIDs; this is the single ownership check
// used by the edit and delete paths.
func (p *SparePart) OwnedBy(userID string) bool {
	return userID != "" && p.OwnerID == userID
}

func (p *SparePart) HasImage() bool {
	return p.Image != ""
}
