package testutil

import (
	"github.com/google/uuid"
	"github.com/sitecel/portfolio-api/internal/models"
	"github.com/sitecel/portfolio-api/internal/utils"
	"gorm.io/datatypes"
)

// CreateTestUser creates a user with a properly hashed password.
func CreateTestUser(email, password, fullName string, isAdmin bool) (*models.User, error) {
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		IsActive:     true,
		IsAdmin:      isAdmin,
	}, nil
}

// DefaultAdminUser returns an admin user fixture
func DefaultAdminUser() (*models.User, error) {
	return CreateTestUser("admin@sitecel.cl", "Admin123456", "Admin Sitecel", true)
}

// DefaultTestUser returns a regular (non-admin) user fixture
func DefaultTestUser() (*models.User, error) {
	return CreateTestUser("viewer@sitecel.cl", "Viewer123456", "Viewer Sitecel", false)
}

// CreateTestCategory returns a category fixture
func CreateTestCategory(id, name string) *models.Category {
	return &models.Category{
		ID:     id,
		Name:   name,
		Active: true,
	}
}

// CreateTestProject returns a project fixture without children.
func CreateTestProject(slug, title, category string) *models.Project {
	return &models.Project{
		ID:         uuid.New(),
		Slug:       slug,
		Title:      title,
		Category:   category,
		Tags:       datatypes.NewJSONSlice([]string{}),
		Highlights: datatypes.NewJSONSlice([]string{}),
	}
}

// CreateTestImage returns an image fixture for the given project.
func CreateTestImage(projectID uuid.UUID, url string, order int) *models.ProjectImage {
	return &models.ProjectImage{
		ID:           uuid.New(),
		ProjectID:    projectID,
		URL:          url,
		DisplayOrder: order,
	}
}

// CreateTestVideo returns a video fixture for the given project.
func CreateTestVideo(projectID uuid.UUID, url string, order int) *models.ProjectVideo {
	return &models.ProjectVideo{
		ID:           uuid.New(),
		ProjectID:    projectID,
		VideoURL:     url,
		DisplayOrder: order,
	}
}
