package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sitecel/portfolio-api/internal/repository"
	"github.com/sitecel/portfolio-api/internal/service"
	"github.com/sitecel/portfolio-api/pkg/logger"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

type ProjectImagePayload struct {
	URL          string `json:"url" binding:"required,max=500"`
	AltText      string `json:"alt_text" binding:"max=255"`
	Caption      string `json:"caption"`
	DisplayOrder int    `json:"display_order"`
}

type ProjectVideoPayload struct {
	VideoURL     string `json:"video_url" binding:"required,max=500"`
	ThumbnailURL string `json:"thumbnail_url" binding:"max=500"`
	Title        string `json:"title" binding:"max=200"`
	Duration     *int   `json:"duration"`
	DisplayOrder int    `json:"display_order"`
}

type CreateProjectRequest struct {
	Title       string                `json:"title" binding:"required,min=3,max=300"`
	Slug        string                `json:"slug" binding:"required,max=255"`
	Description string                `json:"description"`
	Category    string                `json:"category" binding:"required,max=50"`
	Published   bool                  `json:"published"`
	Client      string                `json:"client" binding:"max=200"`
	Location    string                `json:"location" binding:"max=200"`
	StartDate   *string               `json:"start_date"`
	Duration    string                `json:"duration" binding:"max=50"`
	Tags        []string              `json:"tags"`
	Highlights  []string              `json:"highlights"`
	Images      []ProjectImagePayload `json:"images"`
	Videos      []ProjectVideoPayload `json:"videos"`
}

// UpdateProjectRequest distinguishes omitted fields (nil) from explicitly
// supplied ones, including images/videos supplied as an empty list.
type UpdateProjectRequest struct {
	Title       *string                `json:"title" binding:"omitempty,min=3,max=300"`
	Slug        *string                `json:"slug" binding:"omitempty,max=255"`
	Description *string                `json:"description"`
	Category    *string                `json:"category" binding:"omitempty,max=50"`
	Published   *bool                  `json:"published"`
	Client      *string                `json:"client" binding:"omitempty,max=200"`
	Location    *string                `json:"location" binding:"omitempty,max=200"`
	StartDate   *string                `json:"start_date"`
	Duration    *string                `json:"duration" binding:"omitempty,max=50"`
	Tags        *[]string              `json:"tags"`
	Highlights  *[]string              `json:"highlights"`
	Images      *[]ProjectImagePayload `json:"images"`
	Videos      *[]ProjectVideoPayload `json:"videos"`
}

func imageInputs(payloads []ProjectImagePayload) []service.ProjectImageInput {
	inputs := make([]service.ProjectImageInput, len(payloads))
	for i, p := range payloads {
		inputs[i] = service.ProjectImageInput{
			URL:          p.URL,
			AltText:      p.AltText,
			Caption:      p.Caption,
			DisplayOrder: p.DisplayOrder,
		}
	}
	return inputs
}

func videoInputs(payloads []ProjectVideoPayload) []service.ProjectVideoInput {
	inputs := make([]service.ProjectVideoInput, len(payloads))
	for i, p := range payloads {
		inputs[i] = service.ProjectVideoInput{
			VideoURL:     p.VideoURL,
			ThumbnailURL: p.ThumbnailURL,
			Title:        p.Title,
			Duration:     p.Duration,
			DisplayOrder: p.DisplayOrder,
		}
	}
	return inputs
}

func parseDate(value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

func (h *ProjectHandler) projectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "Invalid project id",
		})
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /api/v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "Invalid request body",
		})
		return
	}

	startDate, ok := parseDate(req.StartDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "start_date must be formatted as YYYY-MM-DD",
		})
		return
	}

	project, err := h.projectService.Create(service.CreateProjectInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Category:    req.Category,
		Published:   req.Published,
		Client:      req.Client,
		Location:    req.Location,
		StartDate:   startDate,
		Duration:    req.Duration,
		Tags:        req.Tags,
		Highlights:  req.Highlights,
		Images:      imageInputs(req.Images),
		Videos:      videoInputs(req.Videos),
	})
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// List handles GET /api/v1/projects?skip=&limit=&published=&category=
func (h *ProjectHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}

	filter := repository.ProjectFilter{
		Category: c.Query("category"),
	}
	if raw := c.Query("published"); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"detail": "published must be true or false",
			})
			return
		}
		filter.Published = &published
	}

	projects, err := h.projectService.List(filter, skip, limit)
	if err != nil {
		logger.Log.Error("Failed to list projects",
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": "Failed to list projects",
		})
		return
	}

	c.JSON(http.StatusOK, projects)
}

// Get handles GET /api/v1/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Get(id)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Update handles PUT /api/v1/projects/:id with partial semantics: only the
// supplied fields change.
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "Invalid request body",
		})
		return
	}

	startDate, ok := parseDate(req.StartDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "start_date must be formatted as YYYY-MM-DD",
		})
		return
	}

	input := service.UpdateProjectInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Category:    req.Category,
		Published:   req.Published,
		Client:      req.Client,
		Location:    req.Location,
		StartDate:   startDate,
		Duration:    req.Duration,
		Tags:        req.Tags,
		Highlights:  req.Highlights,
	}
	if req.Images != nil {
		images := imageInputs(*req.Images)
		input.Images = &images
	}
	if req.Videos != nil {
		videos := videoInputs(*req.Videos)
		input.Videos = &videos
	}

	project, err := h.projectService.Update(id, input)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /api/v1/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(id); err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// TogglePublish handles PATCH /api/v1/projects/:id/publish
func (h *ProjectHandler) TogglePublish(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	project, err := h.projectService.TogglePublish(id)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"detail": "Project not found",
		})
	case errors.Is(err, service.ErrSlugAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "Project with this slug already exists",
		})
	case errors.Is(err, service.ErrInvalidSlug):
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "Slug must contain only lowercase letters, numbers, and hyphens",
		})
	default:
		logger.Log.Error("Project operation failed",
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": "Internal server error",
		})
	}
}
