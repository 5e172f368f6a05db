package models

import "time"

// Reference data for categorizing spare parts. Read-mostly; maintained by
// seeding rather than through the web UI.

type PartLocation struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	CreatedAt time.Time `json:"created_at"`
}

type CarType struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	CreatedAt time.Time `json:"created_at"`

	CarModels []CarModel `json:"car_models,omitempty" gorm:"foreignKey:CarTypeID"`
}

// CarModel names are unique per car type, not globally; the composite index
// is added in database.Migrate.
type CarModel struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	CarTypeID string    `json:"car_type_id" gorm:"not null;size:191;index"`
	CreatedAt time.Time `json:"created_at"`

	CarType CarType `json:"car_type,omitempty" gorm:"foreignKey:CarTypeID"`
}
