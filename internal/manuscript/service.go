// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package manuscript implements the writing workspace: manuscripts, their
chapters and sharing by e-mail.

Chapter content comes from the rich-text editor as HTML. It is sanitised
before it is sent and again when it is rendered, keeping only the formatting
the toolbar can produce. Chapters are always shown in the order the backend
assigned them.
*/
package manuscript

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/taibuivan/etagere/internal/platform/confirm"
	"github.com/taibuivan/etagere/internal/platform/validate"
	"github.com/taibuivan/etagere/internal/session"
	"github.com/taibuivan/etagere/pkg/pointer"
	"github.com/taibuivan/etagere/pkg/query"
	"github.com/taibuivan/etagere/pkg/richtext"
	"github.com/taibuivan/etagere/pkg/slice"
)

// # Messages

const (
	MessageCreated        = "Manuscrit créé"
	MessageUpdated        = "Manuscrit mis à jour"
	MessageDeleted        = "Manuscrit supprimé"
	MessageChapterAdded   = "Chapitre ajouté"
	MessageChapterSaved   = "Chapitre mis à jour"
	MessageChapterDeleted = "Chapitre supprimé"
	MessageShared         = "Manuscrit envoyé"
	MessageEmptyChapter   = "Le chapitre est vide"
	MessageNoRecipient    = "Ajoute au moins un destinataire"
	MessageNoChapter      = "Sélectionne au moins un chapitre"
	MessageUnknownChapter = "Chapitre introuvable dans ce manuscrit"
	MessageBadRecipient   = "Adresse e-mail invalide : "
)

const (
	maxTitleLength   = 200
	maxSubjectLength = 200
)

// ShareInput is the share form as typed by the user.
type ShareInput struct {
	// Recipients is free text separated by commas, semicolons or whitespace.
	Recipients string

	// Whole shares every chapter; otherwise ChapterIDs selects them.
	Whole      bool
	ChapterIDs []int

	Subject string
	Message string
}

// Service runs the manuscript operations.
type Service struct {
	gateway Gateway
	logger  *slog.Logger
}

// NewService constructs a [Service].
func NewService(gateway Gateway, logger *slog.Logger) *Service {
	return &Service{gateway: gateway, logger: logger}
}

// # Manuscripts

// List returns the user's manuscripts with their chapters in order.
func (service *Service) List(ctx context.Context, current session.Session) ([]Manuscript, error) {
	manuscripts, err := service.gateway.List(ctx, current.Token)
	if err != nil {
		return nil, err
	}
	if manuscripts == nil {
		manuscripts = []Manuscript{}
	}

	for i := range manuscripts {
		SortChapters(manuscripts[i].Chapters)
	}
	return manuscripts, nil
}

// Get returns one manuscript with its chapters in order.
func (service *Service) Get(ctx context.Context, current session.Session, id int) (Manuscript, error) {
	manuscript, err := service.gateway.Get(ctx, current.Token, id)
	if err != nil {
		return Manuscript{}, err
	}
	SortChapters(manuscript.Chapters)
	return manuscript, nil
}

// Create validates and creates a manuscript.
func (service *Service) Create(ctx context.Context, current session.Session, draft Draft) (Manuscript, error) {
	draft, err := cleanDraft(draft)
	if err != nil {
		return Manuscript{}, err
	}

	manuscript, err := service.gateway.Create(ctx, current.Token, draft)
	if err != nil {
		return Manuscript{}, err
	}

	service.logger.InfoContext(ctx, "manuscript_created", slog.Int("manuscript_id", manuscript.ID))
	return manuscript, nil
}

// Update changes the title and description of a manuscript.
func (service *Service) Update(ctx context.Context, current session.Session, id int, draft Draft) (Manuscript, error) {
	draft, err := cleanDraft(draft)
	if err != nil {
		return Manuscript{}, err
	}

	manuscript, err := service.gateway.Update(ctx, current.Token, id, draft)
	if err != nil {
		return Manuscript{}, err
	}
	SortChapters(manuscript.Chapters)
	return manuscript, nil
}

// Delete removes a manuscript and its chapters once confirmed.
func (service *Service) Delete(ctx context.Context, current session.Session, id int, confirmed bool) error {
	return confirm.Run(ctx, confirmed, func(ctx context.Context) error {
		if err := service.gateway.Delete(ctx, current.Token, id); err != nil {
			return err
		}
		service.logger.InfoContext(ctx, "manuscript_deleted", slog.Int("manuscript_id", id))
		return nil
	})
}

func cleanDraft(draft Draft) (Draft, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)

	validator := &validate.Validator{}
	validator.Required("title", draft.Title).MaxLen("title", draft.Title, maxTitleLength)
	return draft, validator.Err()
}

// # Chapters

// SaveChapter creates a chapter when chapterID is zero and updates it
// otherwise. The same form serves both.
func (service *Service) SaveChapter(ctx context.Context, current session.Session, manuscriptID, chapterID int, draft ChapterDraft) (Chapter, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Content = richtext.Sanitize(draft.Content)

	validator := &validate.Validator{}
	validator.Required("title", draft.Title).
		MaxLen("title", draft.Title, maxTitleLength).
		Custom("content", richtext.IsBlank(draft.Content), MessageEmptyChapter)
	if err := validator.Err(); err != nil {
		return Chapter{}, err
	}

	if chapterID == 0 {
		chapter, err := service.gateway.AddChapter(ctx, current.Token, manuscriptID, draft)
		if err != nil {
			return Chapter{}, err
		}
		service.logger.InfoContext(ctx, "chapter_created", slog.Int("manuscript_id", manuscriptID), slog.Int("chapter_id", chapter.ID))
		return chapter, nil
	}

	chapter, err := service.gateway.UpdateChapter(ctx, current.Token, chapterID, draft)
	if err != nil {
		return Chapter{}, err
	}
	service.logger.InfoContext(ctx, "chapter_updated", slog.Int("chapter_id", chapterID))
	return chapter, nil
}

// DeleteChapter removes a chapter once confirmed.
func (service *Service) DeleteChapter(ctx context.Context, current session.Session, chapterID int, confirmed bool) error {
	return confirm.Run(ctx, confirmed, func(ctx context.Context) error {
		if err := service.gateway.DeleteChapter(ctx, current.Token, chapterID); err != nil {
			return err
		}
		service.logger.InfoContext(ctx, "chapter_deleted", slog.Int("chapter_id", chapterID))
		return nil
	})
}

// # Sharing

// ParseRecipients splits free text into distinct e-mail addresses.
//
// Empty parts are dropped and duplicates removed regardless of case. The first
// invalid address fails the whole list.
func ParseRecipients(text string) ([]string, error) {
	recipients := slice.UniqueFold(query.Fields(text))
	if len(recipients) == 0 {
		return nil, validate.RequiredError("recipients", MessageNoRecipient)
	}

	for _, recipient := range recipients {
		if !validate.IsEmail(recipient) {
			return nil, validate.RequiredError("recipients", MessageBadRecipient+recipient)
		}
	}
	return recipients, nil
}

// BuildShare turns the share form into the request body for manuscript.
//
// Sharing a selection requires at least one chapter, all of them belonging to
// the manuscript.
func BuildShare(manuscript Manuscript, input ShareInput) (Share, error) {
	recipients, err := ParseRecipients(input.Recipients)
	if err != nil {
		return Share{}, err
	}

	share := Share{Recipients: recipients}

	if !input.Whole {
		if len(input.ChapterIDs) == 0 {
			return Share{}, validate.RequiredError("chapter_ids", MessageNoChapter)
		}
		for _, id := range input.ChapterIDs {
			if !slices.ContainsFunc(manuscript.Chapters, func(chapter Chapter) bool { return chapter.ID == id }) {
				return Share{}, validate.RequiredError("chapter_ids", MessageUnknownChapter)
			}
		}
		share.ChapterIDs = slices.Compact(slices.Sorted(slices.Values(input.ChapterIDs)))
	}

	if subject := strings.TrimSpace(input.Subject); subject != "" {
		validator := &validate.Validator{}
		if err := validator.MaxLen("subject", subject, maxSubjectLength).Err(); err != nil {
			return Share{}, err
		}
		share.Subject = pointer.To(subject)
	}
	if message := strings.TrimSpace(input.Message); message != "" {
		share.Message = pointer.To(message)
	}

	return share, nil
}

// Share sends manuscript to the recipients of input.
func (service *Service) Share(ctx context.Context, current session.Session, manuscript Manuscript, input ShareInput) (Share, error) {
	share, err := BuildShare(manuscript, input)
	if err != nil {
		return Share{}, err
	}

	if err := service.gateway.Share(ctx, current.Token, manuscript.ID, share); err != nil {
		return Share{}, err
	}

	service.logger.InfoContext(ctx, "manuscript_shared",
		slog.Int("manuscript_id", manuscript.ID),
		slog.Int("recipients", len(share.Recipients)),
		slog.Int("chapters", len(share.ChapterIDs)),
	)
	return share, nil
}
