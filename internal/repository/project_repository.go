package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sitecel/portfolio-api/internal/models"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ProjectFilter holds the optional equality filters for List.
type ProjectFilter struct {
	Published *bool
	Category  string
}

func orderedChildren(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC")
}

// Create persists the project together with all of its images and videos in
// a single transaction: all rows or none.
func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images", "Videos", "CategoryRel").Create(project).Error; err != nil {
			return err
		}
		for i := range project.Images {
			project.Images[i].ProjectID = project.ID
			if err := tx.Create(&project.Images[i]).Error; err != nil {
				return err
			}
		}
		for i := range project.Videos {
			project.Videos[i].ProjectID = project.ID
			if err := tx.Create(&project.Videos[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID loads the full aggregate with images and videos in display order.
// Returns (nil, nil) when the project does not exist.
func (r *ProjectRepository) GetByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Preload("Images", orderedChildren).
		Preload("Videos", orderedChildren).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) GetBySlug(slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("slug = ?", slug).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &project, nil
}

// List applies the optional filters and offset/limit pagination. Results are
// ordered by creation time (id as tiebreaker) so pagination is stable.
func (r *ProjectRepository) List(filter ProjectFilter, skip, limit int) ([]models.Project, error) {
	query := r.db.
		Preload("Images", orderedChildren).
		Preload("Videos", orderedChildren)

	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var projects []models.Project
	err := query.
		Order("created_at ASC, id ASC").
		Offset(skip).
		Limit(limit).
		Find(&projects).Error

	return projects, err
}

// Update applies the field map to the project row and, when images or videos
// are non-nil, replaces the corresponding child collection wholly. Everything
// runs in one transaction; updated_at is refreshed in every case.
func (r *ProjectRepository) Update(id uuid.UUID, fields map[string]interface{}, images []models.ProjectImage, videos []models.ProjectVideo) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if fields == nil {
			fields = map[string]interface{}{}
		}
		fields["updated_at"] = time.Now()

		if err := tx.Model(&models.Project{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}

		if images != nil {
			if err := tx.Where("project_id = ?", id).Delete(&models.ProjectImage{}).Error; err != nil {
				return err
			}
			for i := range images {
				images[i].ProjectID = id
				if err := tx.Create(&images[i]).Error; err != nil {
					return err
				}
			}
		}

		if videos != nil {
			if err := tx.Where("project_id = ?", id).Delete(&models.ProjectVideo{}).Error; err != nil {
				return err
			}
			for i := range videos {
				videos[i].ProjectID = id
				if err := tx.Create(&videos[i]).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// Delete removes the project and cascades to its images and videos. The
// children are deleted explicitly so the behavior does not depend on the
// database enforcing foreign keys (SQLite in tests does not by default).
func (r *ProjectRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectVideo{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Project{}).Error
	})
}

func (r *ProjectRepository) SetPublished(id uuid.UUID, published bool) error {
	return r.db.Model(&models.Project{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"published": published, "updated_at": time.Now()}).Error
}

func (r *ProjectRepository) CountImages(projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProjectImage{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

func (r *ProjectRepository) CountVideos(projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProjectVideo{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}
