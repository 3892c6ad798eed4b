package dto

import (
	"time"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// OfferingResponse is a catalog entry.
type OfferingResponse struct {
	ID          int64                `json:"id"`
	Category    string               `json:"category"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Features    []string             `json:"features"`
	Price       float64              `json:"price"`
	Period      domain.BillingPeriod `json:"period"`
	Popular     bool                 `json:"popular"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// OfferingSummaryResponse is the slim offering joined onto admin listings.
type OfferingSummaryResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// ProjectResponse is a portfolio entry.
type ProjectResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	Image        string    `json:"image"`
	PreviewURL   *string   `json:"previewUrl"`
	DetailsURL   string    `json:"detailsUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewOfferingResponse maps a domain offering.
func NewOfferingResponse(o *domain.Offering) OfferingResponse {
	features := o.Features
	if features == nil {
		features = []string{}
	}
	return OfferingResponse{
		ID:          o.ID,
		Category:    o.Category,
		Title:       o.Title,
		Description: o.Description,
		Features:    features,
		Price:       o.Price,
		Period:      o.Period,
		Popular:     o.Popular,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// NewOfferingResponses maps a list of offerings.
func NewOfferingResponses(offerings []domain.Offering) []OfferingResponse {
	out := make([]OfferingResponse, 0, len(offerings))
	for i := range offerings {
		out = append(out, NewOfferingResponse(&offerings[i]))
	}
	return out
}

// NewProjectResponse maps a domain project.
func NewProjectResponse(p *domain.Project) ProjectResponse {
	techs := p.Technologies
	if techs == nil {
		techs = []string{}
	}
	return ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Technologies: techs,
		Image:        p.Image,
		PreviewURL:   p.PreviewURL,
		DetailsURL:   p.DetailsURL,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// NewProjectResponses maps a list of projects.
func NewProjectResponses(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, NewProjectResponse(&projects[i]))
	}
	return out
}
