package database

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"spareparts-app/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.PartLocation{},
		&models.CarType{},
		&models.CarModel{},
		&models.SparePart{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Model names are unique per car type, not globally
	if err := db.Exec("ALTER TABLE car_models ADD CONSTRAINT uk_car_models_name_type UNIQUE (name, car_type_id)").Error; err != nil {
		// Ignore error if constraint already exists
		fmt.Printf("Warning: Could not add unique constraint for car_models: %v\n", err)
	}

	// Listing pages sort by newest first
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_spare_parts_owner_created ON spare_parts(owner_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for spare_parts: %v\n", err)
	}

	return nil
}

var seedPartLocations = []string{
	"Engine", "Transmission", "Brakes", "Suspension", "Tires", "Battery",
	"Radiator", "Exhaust System", "Steering Wheel", "Windshield", "Lights",
	"Seats", "Fuel Pump", "Dashboard", "Mirrors", "Clutch", "AC System",
	"Alternator", "Starter Motor", "Oil Filter", "Air Filter", "Spark Plugs",
}

var seedCarTypes = map[string][]string{
	"Sedan":       {"Toyota Camry", "Honda Accord", "Hyundai Elantra", "Nissan Altima", "BMW 3 Series"},
	"SUV":         {"Toyota Land Cruiser", "Ford Explorer", "Nissan Patrol", "Honda CR-V", "Mazda CX-5"},
	"Coupe":       {"Ford Mustang", "BMW M4", "Audi TT", "Chevrolet Camaro", "Dodge Challenger"},
	"Hatchback":   {"Volkswagen Golf", "Ford Fiesta", "Kia Picanto", "Honda Civic", "Hyundai i30"},
	"Convertible": {"Mazda MX-5", "BMW Z4", "Mercedes-Benz SL", "Audi A5 Cabriolet", "Ford Mustang Convertible"},
	"Pickup":      {"Ford F-150", "Toyota Hilux", "Chevrolet Silverado", "Nissan Navara", "Isuzu D-Max"},
	"Minivan":     {"Honda Odyssey", "Toyota Sienna", "Kia Carnival", "Chrysler Pacifica", "Volkswagen Touran"},
	"Crossover":   {"Honda CR-V", "Nissan Rogue", "Hyundai Tucson", "Mazda CX-5", "Toyota RAV4"},
	"Wagon":       {"Subaru Outback", "Volvo V60", "Audi A4 Allroad", "BMW 3 Series Touring", "Mercedes-Benz E-Class Estate"},
}

// SeedData populates the reference catalog and two login accounts for
// development. It is a no-op when users already exist.
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	userHash, err := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{
			ID:       uuid.New().String(),
			Username: "admin",
			Email:    "admin@spareparts.com",
			Password: string(adminHash),
			Role:     models.RoleAdmin,
		},
		{
			ID:       uuid.New().String(),
			Username: "testuser",
			Email:    "user@spareparts.com",
			Password: string(userHash),
			Role:     models.RoleUser,
		},
	}

	for _, user := range users {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create seed user %s: %v\n", user.Username, err)
		}
	}

	for _, name := range seedPartLocations {
		loc := models.PartLocation{ID: uuid.New().String(), Name: name}
		if err := db.Create(&loc).Error; err != nil {
			fmt.Printf("Warning: Could not create part location %s: %v\n", name, err)
		}
	}

	for typeName, modelNames := range seedCarTypes {
		carType := models.CarType{ID: uuid.New().String(), Name: typeName}
		if err := db.Create(&carType).Error; err != nil {
			fmt.Printf("Warning: Could not create car type %s: %v\n", typeName, err)
			continue
		}
		for _, modelName := range modelNames {
			carModel := models.CarModel{
				ID:        uuid.New().String(),
				Name:      modelName,
				CarTypeID: carType.ID,
			}
			if err := db.Create(&carModel).Error; err != nil {
				fmt.Printf("Warning: Could not create car model %s: %v\n", modelName, err)
			}
		}
	}

	fmt.Println("Database seeded with catalog data and test accounts")
	return nil
}
