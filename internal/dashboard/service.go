// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dashboard builds the landing view: one slice of the library per
reading status, book recommendations and the chapters written last.

Every section is fetched in parallel and the page waits for all of them. A
failing section is logged and shown empty; only a lost session (or an
abandoned request) fails the whole view.
*/
package dashboard

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/etagere/internal/catalog"
	"github.com/taibuivan/etagere/internal/library"
	"github.com/taibuivan/etagere/internal/manuscript"
	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/session"
	"github.com/taibuivan/etagere/pkg/pagination"
)

// Recommendation is a suggested catalog entry, already in add-to-library shape.
type Recommendation struct {
	ExternalID      string  `json:"external_id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Description     string  `json:"description"`
	PublicationDate *string `json:"publication_date"`
	ISBN            *string `json:"isbn"`
	CoverImage      *string `json:"cover_image"`
	Genre           *string `json:"genre"`
	Language        *string `json:"language"`
}

// Cover returns the cover URL or the placeholder.
func (recommendation Recommendation) Cover() string {
	if recommendation.CoverImage == nil || *recommendation.CoverImage == "" {
		return catalog.PlaceholderCover
	}
	return *recommendation.CoverImage
}

// ToNewBook builds the add-to-library payload with status "À lire".
func (recommendation Recommendation) ToNewBook() catalog.NewBook {
	title := recommendation.Title
	if title == "" {
		title = catalog.UnknownTitle
	}
	author := recommendation.Author
	if author == "" {
		author = catalog.UnknownAuthor
	}

	return catalog.NewBook{
		ExternalID:      recommendation.ExternalID,
		Title:           title,
		Author:          author,
		Description:     recommendation.Description,
		PublicationDate: recommendation.PublicationDate,
		ISBN:            recommendation.ISBN,
		CoverImage:      recommendation.Cover(),
		Genre:           recommendation.Genre,
		Status:          catalog.StatusToRead,
	}
}

// Bucket is the library slice of one reading status.
type Bucket struct {
	Status string
	Books  []library.Book
	Total  int
}

// Dashboard is the data of the landing view.
type Dashboard struct {
	Buckets         []Bucket
	Recommendations []Recommendation
	RecentChapters  []manuscript.Chapter
}

// Service assembles the dashboard.
type Service struct {
	gateway    Gateway
	bucketSize int
	limit      int
	logger     *slog.Logger
}

// NewService constructs a [Service]. bucketSize is the number of books per
// status; limit the number of recommendations asked for.
func NewService(gateway Gateway, bucketSize, limit int, logger *slog.Logger) *Service {
	return &Service{gateway: gateway, bucketSize: bucketSize, limit: limit, logger: logger}
}

// Load fetches every section concurrently and joins them.
//
// # Errors
//   - UNAUTHORIZED from any section is returned, the session is gone.
//   - A cancelled request returns the context error.
//   - Anything else only empties the failing section.
func (service *Service) Load(ctx context.Context, current session.Session) (Dashboard, error) {
	dashboard := Dashboard{
		Buckets:         make([]Bucket, len(library.Statuses)),
		Recommendations: []Recommendation{},
		RecentChapters:  []manuscript.Chapter{},
	}

	group, groupCtx := errgroup.WithContext(ctx)

	for i, status := range library.Statuses {
		dashboard.Buckets[i] = Bucket{Status: status, Books: []library.Book{}}

		group.Go(func() error {
			page, err := service.gateway.Bucket(groupCtx, current.Token, status, service.bucketSize)
			if err != nil {
				return service.degrade(groupCtx, "bucket:"+status, err)
			}
			page = page.Fit(pagination.New(1, service.bucketSize, service.bucketSize))
			dashboard.Buckets[i].Books = page.Items
			dashboard.Buckets[i].Total = page.Total
			return nil
		})
	}

	group.Go(func() error {
		recommendations, err := service.gateway.Recommendations(groupCtx, current.Token, service.limit)
		if err != nil {
			return service.degrade(groupCtx, "recommendations", err)
		}
		if len(recommendations) > service.limit {
			recommendations = recommendations[:service.limit]
		}
		if recommendations != nil {
			dashboard.Recommendations = recommendations
		}
		return nil
	})

	group.Go(func() error {
		chapters, err := service.gateway.RecentChapters(groupCtx, current.Token)
		if err != nil {
			return service.degrade(groupCtx, "recent_chapters", err)
		}
		if chapters != nil {
			dashboard.RecentChapters = chapters
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return Dashboard{}, err
	}

	return dashboard, nil
}

// degrade decides whether a section failure fails the whole view.
func (service *Service) degrade(ctx context.Context, section string, err error) error {
	if apperr.IsUnauthorized(err) || errors.Is(err, context.Canceled) {
		return err
	}

	service.logger.WarnContext(ctx, "dashboard_section_failed",
		slog.String("section", section),
		slog.String("error", err.Error()),
	)
	return nil
}
