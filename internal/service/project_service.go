package service

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/sitecel/portfolio-api/internal/models"
	"github.com/sitecel/portfolio-api/internal/repository"
	"github.com/sitecel/portfolio-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrSlugAlreadyExists = errors.New("slug already exists")
	ErrInvalidSlug       = errors.New("slug must contain only lowercase letters, numbers, and hyphens")

	slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)
)

type ProjectImageInput struct {
	URL          string
	AltText      string
	Caption      string
	DisplayOrder int
}

type ProjectVideoInput struct {
	VideoURL     string
	ThumbnailURL string
	Title        string
	Duration     *int
	DisplayOrder int
}

type CreateProjectInput struct {
	Title       string
	Slug        string
	Description string
	Category    string
	Published   bool
	Client      string
	Location    string
	StartDate   *time.Time
	Duration    string
	Tags        []string
	Highlights  []string
	Images      []ProjectImageInput
	Videos      []ProjectVideoInput
}

// UpdateProjectInput carries partial-update semantics: nil means "leave
// untouched", a non-nil pointer means "set to this value". For Images and
// Videos a non-nil slice (even empty) replaces the collection wholly.
type UpdateProjectInput struct {
	Title       *string
	Slug        *string
	Description *string
	Category    *string
	Published   *bool
	Client      *string
	Location    *string
	StartDate   *time.Time
	Duration    *string
	Tags        *[]string
	Highlights  *[]string
	Images      *[]ProjectImageInput
	Videos      *[]ProjectVideoInput
}

type ProjectService struct {
	projectRepo *repository.ProjectRepository
}

func NewProjectService(projectRepo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

func buildImages(inputs []ProjectImageInput) []models.ProjectImage {
	images := make([]models.ProjectImage, len(inputs))
	for i, in := range inputs {
		images[i] = models.ProjectImage{
			ID:           uuid.New(),
			URL:          in.URL,
			AltText:      in.AltText,
			Caption:      in.Caption,
			DisplayOrder: in.DisplayOrder,
		}
	}
	return images
}

func buildVideos(inputs []ProjectVideoInput) []models.ProjectVideo {
	videos := make([]models.ProjectVideo, len(inputs))
	for i, in := range inputs {
		videos[i] = models.ProjectVideo{
			ID:           uuid.New(),
			VideoURL:     in.VideoURL,
			ThumbnailURL: in.ThumbnailURL,
			Title:        in.Title,
			Duration:     in.Duration,
			DisplayOrder: in.DisplayOrder,
		}
	}
	return videos
}

// Create validates the slug and persists the project aggregate atomically.
func (s *ProjectService) Create(input CreateProjectInput) (*models.Project, error) {
	if !slugRegex.MatchString(input.Slug) {
		return nil, ErrInvalidSlug
	}

	existing, err := s.projectRepo.GetBySlug(input.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Log.Warn("Project slug already exists",
			zap.String("slug", input.Slug),
		)
		return nil, ErrSlugAlreadyExists
	}

	project := &models.Project{
		ID:          uuid.New(),
		Slug:        input.Slug,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Published:   input.Published,
		Client:      input.Client,
		Location:    input.Location,
		StartDate:   input.StartDate,
		Duration:    input.Duration,
		Tags:        datatypes.NewJSONSlice(input.Tags),
		Highlights:  datatypes.NewJSONSlice(input.Highlights),
		Images:      buildImages(input.Images),
		Videos:      buildVideos(input.Videos),
	}

	if err := s.projectRepo.Create(project); err != nil {
		// The unique index is the arbiter when two creates race on the
		// same slug: exactly one insert wins.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugAlreadyExists
		}
		logger.Log.Error("Failed to create project",
			zap.String("slug", input.Slug),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("slug", project.Slug),
	)

	return s.projectRepo.GetByID(project.ID)
}

func (s *ProjectService) List(filter repository.ProjectFilter, skip, limit int) ([]models.Project, error) {
	return s.projectRepo.List(filter, skip, limit)
}

func (s *ProjectService) Get(id uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// Update applies only the supplied fields. A supplied images or videos list
// replaces the existing collection wholly; an omitted one is left untouched.
func (s *ProjectService) Update(id uuid.UUID, input UpdateProjectInput) (*models.Project, error) {
	current, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrProjectNotFound
	}

	fields := map[string]interface{}{}

	if input.Slug != nil && *input.Slug != current.Slug {
		if !slugRegex.MatchString(*input.Slug) {
			return nil, ErrInvalidSlug
		}
		other, err := s.projectRepo.GetBySlug(*input.Slug)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, ErrSlugAlreadyExists
		}
		fields["slug"] = *input.Slug
	}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Category != nil {
		fields["category"] = *input.Category
	}
	if input.Published != nil {
		fields["published"] = *input.Published
	}
	if input.Client != nil {
		fields["client"] = *input.Client
	}
	if input.Location != nil {
		fields["location"] = *input.Location
	}
	if input.StartDate != nil {
		fields["start_date"] = *input.StartDate
	}
	if input.Duration != nil {
		fields["duration"] = *input.Duration
	}
	if input.Tags != nil {
		fields["tags"] = datatypes.NewJSONSlice(*input.Tags)
	}
	if input.Highlights != nil {
		fields["highlights"] = datatypes.NewJSONSlice(*input.Highlights)
	}

	var images []models.ProjectImage
	if input.Images != nil {
		images = buildImages(*input.Images)
	}
	var videos []models.ProjectVideo
	if input.Videos != nil {
		videos = buildVideos(*input.Videos)
	}

	if err := s.projectRepo.Update(id, fields, images, videos); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugAlreadyExists
		}
		logger.Log.Error("Failed to update project",
			zap.String("project_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Project updated",
		zap.String("project_id", id.String()),
		zap.Int("fields", len(fields)),
		zap.Bool("images_replaced", input.Images != nil),
		zap.Bool("videos_replaced", input.Videos != nil),
	)

	return s.projectRepo.GetByID(id)
}

func (s *ProjectService) Delete(id uuid.UUID) error {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}

	if err := s.projectRepo.Delete(id); err != nil {
		logger.Log.Error("Failed to delete project",
			zap.String("project_id", id.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Project deleted",
		zap.String("project_id", id.String()),
		zap.String("slug", project.Slug),
	)

	return nil
}

// TogglePublish flips the published flag and nothing else.
func (s *ProjectService) TogglePublish(id uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	if err := s.projectRepo.SetPublished(id, !project.Published); err != nil {
		return nil, err
	}

	return s.projectRepo.GetByID(id)
}
