// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manuscript

import (
	"context"
	"fmt"

	"github.com/taibuivan/etagere/internal/platform/apiclient"
)

// Gateway defines the manuscript endpoints of the remote API.
type Gateway interface {
	List(ctx context.Context, token string) ([]Manuscript, error)
	Get(ctx context.Context, token string, id int) (Manuscript, error)
	Create(ctx context.Context, token string, draft Draft) (Manuscript, error)
	Update(ctx context.Context, token string, id int, draft Draft) (Manuscript, error)
	Delete(ctx context.Context, token string, id int) error

	AddChapter(ctx context.Context, token string, manuscriptID int, draft ChapterDraft) (Chapter, error)
	UpdateChapter(ctx context.Context, token string, chapterID int, draft ChapterDraft) (Chapter, error)
	DeleteChapter(ctx context.Context, token string, chapterID int) error

	// Share asks the backend to mail the manuscript. The backend answers 202.
	Share(ctx context.Context, token string, id int, share Share) error
}

// RemoteGateway implements [Gateway] over the remote REST API.
type RemoteGateway struct {
	client *apiclient.Client
}

// NewRemoteGateway creates a [RemoteGateway].
func NewRemoteGateway(client *apiclient.Client) *RemoteGateway {
	return &RemoteGateway{client: client}
}

// # Manuscripts

// List calls GET /manuscripts/.
func (gateway *RemoteGateway) List(ctx context.Context, token string) ([]Manuscript, error) {
	var manuscripts []Manuscript
	if err := gateway.client.Get(ctx, token, "/manuscripts/", nil, &manuscripts); err != nil {
		return nil, err
	}
	return manuscripts, nil
}

// Get calls GET /manuscripts/{id}.
func (gateway *RemoteGateway) Get(ctx context.Context, token string, id int) (Manuscript, error) {
	var manuscript Manuscript
	err := gateway.client.Get(ctx, token, manuscriptPath(id), nil, &manuscript)
	return manuscript, err
}

// Create calls POST /manuscripts/.
func (gateway *RemoteGateway) Create(ctx context.Context, token string, draft Draft) (Manuscript, error) {
	var manuscript Manuscript
	err := gateway.client.Post(ctx, token, "/manuscripts/", draft, &manuscript)
	return manuscript, err
}

// Update calls PATCH /manuscripts/{id}.
func (gateway *RemoteGateway) Update(ctx context.Context, token string, id int, draft Draft) (Manuscript, error) {
	var manuscript Manuscript
	err := gateway.client.Patch(ctx, token, manuscriptPath(id), draft, &manuscript)
	return manuscript, err
}

// Delete calls DELETE /manuscripts/{id}.
func (gateway *RemoteGateway) Delete(ctx context.Context, token string, id int) error {
	return gateway.client.Delete(ctx, token, manuscriptPath(id))
}

// # Chapters

// AddChapter calls POST /manuscripts/{id}/chapters.
func (gateway *RemoteGateway) AddChapter(ctx context.Context, token string, manuscriptID int, draft ChapterDraft) (Chapter, error) {
	var chapter Chapter
	err := gateway.client.Post(ctx, token, manuscriptPath(manuscriptID)+"/chapters", draft, &chapter)
	return chapter, err
}

// UpdateChapter calls PATCH /manuscripts/chapters/{id}.
func (gateway *RemoteGateway) UpdateChapter(ctx context.Context, token string, chapterID int, draft ChapterDraft) (Chapter, error) {
	var chapter Chapter
	err := gateway.client.Patch(ctx, token, chapterPath(chapterID), draft, &chapter)
	return chapter, err
}

// DeleteChapter calls DELETE /manuscripts/chapters/{id}.
func (gateway *RemoteGateway) DeleteChapter(ctx context.Context, token string, chapterID int) error {
	return gateway.client.Delete(ctx, token, chapterPath(chapterID))
}

// Share calls POST /manuscripts/{id}/share.
func (gateway *RemoteGateway) Share(ctx context.Context, token string, id int, share Share) error {
	return gateway.client.Post(ctx, token, manuscriptPath(id)+"/share", share, nil)
}

func manuscriptPath(id int) string {
	return fmt.Sprintf("/manuscripts/%d", id)
}

func chapterPath(id int) string {
	return fmt.Sprintf("/manuscripts/chapters/%d", id)
}
