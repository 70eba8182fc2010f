package services_test

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/services"
	"github.com/casafernando/comanda-backend/utils"
)

func setupTestDB() *gorm.DB {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Customer{},
		&models.MenuCategory{},
		&models.Dish{},
		&models.Order{},
		&models.OrderItem{},
		&models.AttentionRequest{},
		&models.OrderCounter{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

// seedMenu -> one active category with two dishes: Limonada 3.00 and
// Flan 4.50.
func seedMenu(db *gorm.DB) (limonada, flan models.Dish) {
	category := models.MenuCategory{Name: "Postres y Bebidas", DisplayOrder: 1, Active: true}
	db.Create(&category)

	limonada = models.Dish{CategoryID: category.ID, Name: "Limonada", Price: 3.00, Available: true}
	db.Create(&limonada)
	flan = models.Dish{CategoryID: category.ID, Name: "Flan", Price: 4.50, Available: true}
	db.Create(&flan)
	return limonada, flan
}

func seedTable(db *gorm.DB, number string) models.Table {
	table := models.Table{TableNumber: number, Capacity: 4, Active: true}
	db.Create(&table)
	return table
}

func anaPerez() services.CustomerInput {
	return services.CustomerInput{
		IDDocument: "V-123",
		FirstName:  "Ana",
		LastName:   "Pérez",
		Phone:      "0414-1111111",
	}
}
