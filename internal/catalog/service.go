// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog implements the external book search and the add-to-library action.

Results come from the backend's Google Books proxy. Each page of results is
cached for a few minutes, keyed by query, start index and page size, so paging
back and forth or several visitors running the same search do not hit the
proxy again.

Search results already present in the visitor's library are marked using the
catalog IDs returned by GET /books/.
*/
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/etagere/internal/platform/apiclient"
	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/validate"
	"github.com/taibuivan/etagere/internal/session"
)

// Service runs catalog searches.
type Service struct {
	gateway Gateway
	cache   Cache
	ttl     time.Duration
	logger  *slog.Logger
}

// NewService constructs a [Service]. A nil cache disables caching.
func NewService(gateway Gateway, cache Cache, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{gateway: gateway, cache: cache, ttl: ttl, logger: logger}
}

// Search runs one catalog page.
//
// # Flow
//  1. A blank query returns the idle result without any request.
//  2. The page is read from the cache, or fetched with start_index = (page-1)*size.
//  3. The answer is normalised and cut to at most size items.
//  4. Items already in the library are marked. A failure there only loses the
//     marks, except UNAUTHORIZED which ends the view.
func (service *Service) Search(ctx context.Context, current session.Session, query Query) (Result, error) {
	text := strings.TrimSpace(query.Text)
	if text == "" {
		return Result{Idle: true}, nil
	}

	params := query.Params
	raw, err := service.fetch(ctx, current.Token, text, params.Offset(), params.Limit)
	if err != nil {
		return Result{}, err
	}

	page, err := apiclient.DecodePage[Volume](raw)
	if err != nil {
		return Result{}, apperr.Upstream(http.StatusBadGateway, "Réponse du serveur illisible")
	}
	page = page.Fit(params)

	owned, err := service.ownedIDs(ctx, current)
	if err != nil {
		return Result{}, err
	}

	items := make([]Item, 0, len(page.Items))
	for _, volume := range page.Items {
		_, inLibrary := owned[volume.ID]
		items = append(items, Item{Volume: volume, InLibrary: inLibrary})
	}

	return Result{Query: text, Items: items, Meta: page.Meta(params)}, nil
}

// Add puts a catalog entry in the library with status "À lire".
//
// A 409 answer is reported as CONFLICT with "Livre déjà dans la bibliothèque";
// nothing is duplicated.
func (service *Service) Add(ctx context.Context, current session.Session, book NewBook) error {
	validator := &validate.Validator{}
	validator.Required("external_id", book.ExternalID).Required("title", book.Title)
	if err := validator.Err(); err != nil {
		return err
	}

	if book.Status == "" {
		book.Status = StatusToRead
	}

	if err := service.gateway.Add(ctx, current.Token, book); err != nil {
		if apperr.IsConflict(err) {
			return apperr.Conflict(MessageAlreadyInLibrary)
		}
		return err
	}

	service.logger.InfoContext(ctx, "library_entry_added", slog.String("external_id", book.ExternalID))
	return nil
}

// fetch returns the raw answer for one page, through the cache.
func (service *Service) fetch(ctx context.Context, token, text string, startIndex, maxResults int) ([]byte, error) {
	key := SearchKey(text, startIndex, maxResults)

	if service.cache != nil {
		cached, ok, err := service.cache.Get(ctx, key)
		switch {
		case err != nil:
			service.logger.WarnContext(ctx, "catalog_cache_unavailable", slog.String("error", err.Error()))
		case ok:
			return cached, nil
		}
	}

	raw, err := service.gateway.Search(ctx, token, text, startIndex, maxResults)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		if err := service.cache.Set(ctx, key, raw, service.ttl); err != nil {
			service.logger.WarnContext(ctx, "catalog_cache_unavailable", slog.String("error", err.Error()))
		}
	}

	return raw, nil
}

// ownedIDs returns the catalog IDs in the library as a set.
func (service *Service) ownedIDs(ctx context.Context, current session.Session) (map[string]struct{}, error) {
	ids, err := service.gateway.LibraryExternalIDs(ctx, current.Token)
	if err != nil {
		if apperr.IsUnauthorized(err) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		service.logger.WarnContext(ctx, "library_ids_unavailable", slog.String("error", err.Error()))
		return map[string]struct{}{}, nil
	}

	owned := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		owned[id] = struct{}{}
	}
	return owned, nil
}
