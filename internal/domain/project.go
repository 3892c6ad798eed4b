package domain

import "time"

// Project is a portfolio entry.
type Project struct {
	ID           int64
	Name         string
	Description  string
	Technologies []string
	Image        string
	PreviewURL   *string
	DetailsURL   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
