package main

import (
	"errors"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/sitecel/portfolio-api/internal/config"
	"github.com/sitecel/portfolio-api/internal/database"
	"github.com/sitecel/portfolio-api/internal/models"
	"github.com/sitecel/portfolio-api/internal/utils"
	"gorm.io/gorm"
)

// Admin users are provisioned out-of-band with this command, never through
// the public API.
func main() {
	cfg := config.Load()
	database.Connect(cfg)
	database.Migrate()

	seedCategories()
	seedAdmin()
}

func seedCategories() {
	categories := []models.Category{
		{ID: "construccion", Name: "Construcción", Description: "Obras civiles menores, reparaciones y remodelaciones", Icon: "hammer", DisplayOrder: 1, Active: true},
		{ID: "telecom-it", Name: "Telecomunicaciones y TI", Description: "Proyectos tecnológicos y desarrollo de software", Icon: "antenna", DisplayOrder: 2, Active: true},
	}

	for _, category := range categories {
		var existing models.Category
		err := database.DB.Where("id = ?", category.ID).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal("Failed to check category:", err)
		}
		if err := database.DB.Create(&category).Error; err != nil {
			log.Fatal("Failed to create category:", err)
		}
		log.Println("Category created:", category.ID)
	}
}

func seedAdmin() {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminFullName := os.Getenv("ADMIN_FULL_NAME")

	if adminEmail == "" || adminPassword == "" {
		log.Fatal("Missing environment variables: ADMIN_EMAIL, ADMIN_PASSWORD")
	}

	var admin models.User
	result := database.DB.Where("email = ?", adminEmail).First(&admin)
	if result.Error == nil {
		log.Println("Admin user already exists:", admin.Email)
		return
	}

	passwordHash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin = models.User{
		ID:           uuid.New(),
		Email:        adminEmail,
		PasswordHash: passwordHash,
		FullName:     adminFullName,
		IsActive:     true,
		IsAdmin:      true,
	}

	if err := database.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Println("Admin user created successfully:", admin.Email)
}
