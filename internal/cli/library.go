// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/etagere/internal/library"
	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/constants"
	"github.com/taibuivan/etagere/internal/platform/validate"
	"github.com/taibuivan/etagere/pkg/convert"
)

const (
	MessageEmptyLibrary = "Aucun livre ne correspond"
	MessageEmptyNote    = "La note est vide"
	MessageNoNotes      = "Aucune note"
	MessageInvalidID    = "Identifiant invalide : "
)

type bookRow struct {
	ID       int    `yaml:"id"`
	Title    string `yaml:"title"`
	Author   string `yaml:"author,omitempty"`
	Status   string `yaml:"status"`
	Favorite bool   `yaml:"favorite"`
}

type libraryOutput struct {
	Page       int       `yaml:"page"`
	TotalPages int       `yaml:"total_pages"`
	Total      int       `yaml:"total"`
	Books      []bookRow `yaml:"books"`
}

type noteRow struct {
	ID        int    `yaml:"id"`
	Content   string `yaml:"content"`
	CreatedAt string `yaml:"created_at,omitempty"`
}

func newBookRow(book library.Book) bookRow {
	return bookRow{
		ID:       book.ID,
		Title:    book.Title,
		Author:   book.Author,
		Status:   book.DisplayStatus(),
		Favorite: book.IsFavorite,
	}
}

func newNoteRow(note library.Note) noteRow {
	row := noteRow{ID: note.ID, Content: note.Content}
	if !note.CreatedAt.IsZero() {
		row.CreatedAt = note.CreatedAt.Format("2006-01-02 15:04")
	}
	return row
}

// parseID reads a positive identifier argument.
func parseID(value string) (int, error) {
	id, ok := convert.ToID(value)
	if !ok {
		return 0, validate.RequiredError("id", MessageInvalidID+value)
	}
	return id, nil
}

func (r *runner) libraryService() *library.Service {
	return library.NewService(library.NewRemoteGateway(r.client), r.logger)
}

func (r *runner) libraryCommand() *cobra.Command {
	command := &cobra.Command{
		Use:     "library",
		Aliases: []string{"lib"},
		Short:   "Gère les livres de ta bibliothèque",
	}

	note := &cobra.Command{
		Use:   "note",
		Short: "Notes de lecture d'un livre",
	}
	note.AddCommand(r.noteListCommand(), r.noteAddCommand(), r.noteRemoveCommand())

	command.AddCommand(
		r.libraryListCommand(),
		r.libraryStatusCommand(),
		r.libraryFavoriteCommand(),
		note,
		r.libraryRemoveCommand(),
	)
	return command
}

func (r *runner) libraryListCommand() *cobra.Command {
	var (
		paging    pageFlags
		status    string
		search    string
		favorites bool
	)

	command := &cobra.Command{
		Use:   "list",
		Short: "Liste les livres, filtrés par statut, favoris ou recherche",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := r.session()
			if err != nil {
				return err
			}

			filter := library.Filter{
				FavoritesOnly: favorites,
				Search:        strings.TrimSpace(search),
				Params:        paging.params(constants.MaxPageSize),
			}
			if status != "" {
				normalized, ok := library.NormalizeStatus(status)
				if !ok {
					return validate.RequiredError("status", library.MessageInvalidStatus+" : "+status)
				}
				filter.Status = normalized
			}

			view, err := r.libraryService().List(cmd.Context(), current, filter)
			if err != nil {
				return err
			}
			if len(view.Books) == 0 {
				r.notify(MessageEmptyLibrary)
				return nil
			}

			meta := view.Meta()
			out := libraryOutput{Page: meta.Page, TotalPages: meta.TotalPages, Total: meta.Total}
			for _, book := range view.Books {
				out.Books = append(out.Books, newBookRow(book))
			}

			return r.render(out, func(w io.Writer) {
				for _, row := range out.Books {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", row.ID, row.Title, row.Author, row.Status, mark(row.Favorite, "favori"))
				}
				fmt.Fprintf(w, "\nPage %d/%d, %d livre(s)\n", out.Page, out.TotalPages, out.Total)
			})
		},
	}

	paging.register(command, constants.DefaultPageSize)
	flags := command.Flags()
	flags.StringVarP(&status, "status", "s", "", "À lire, En cours ou Lu")
	flags.StringVarP(&search, "search", "q", "", "titre ou auteur")
	flags.BoolVarP(&favorites, "favorites", "f", false, "favoris seulement")
	return command
}

func (r *runner) libraryStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <statut>",
		Short: "Change le statut de lecture d'un livre",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := r.session()
			if err != nil {
				return err
			}

			view := library.View{Books: []library.Book{{ID: id}}}
			if err := r.libraryService().SetStatus(cmd.Context(), current, &view, id, strings.Join(args[1:], " ")); err != nil {
				return err
			}

			book, _ := view.Find(id)
			r.notify(library.MessageStatusUpdated)
			return r.render(newBookRow(book), func(w io.Writer) {
				fmt.Fprintf(w, "%d\t%s\t%s\n", book.ID, book.Title, book.DisplayStatus())
			})
		},
	}
}

func (r *runner) libraryFavoriteCommand() *cobra.Command {
	var off bool

	command := &cobra.Command{
		Use:   "favorite <id>",
		Short: "Ajoute un livre aux favoris (ou l'en retire avec --off)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := r.session()
			if err != nil {
				return err
			}

			// The toggle flips the local state, so start from the opposite
			// of the wanted flag.
			view := library.View{Books: []library.Book{{ID: id, IsFavorite: off}}}
			favorite, err := r.libraryService().ToggleFavorite(cmd.Context(), current, &view, id)
			if err != nil {
				return err
			}

			if favorite {
				r.notify(library.MessageFavoriteAdded)
			} else {
				r.notify(library.MessageFavoriteRemove)
			}
			return nil
		},
	}

	command.Flags().BoolVar(&off, "off", false, "retire le livre des favoris")
	return command
}

func (r *runner) noteListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <livre>",
		Short: "Liste les notes d'un livre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := r.session()
			if err != nil {
				return err
			}

			notes, err := r.libraryService().Notes(cmd.Context(), current, bookID)
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				r.notify(MessageNoNotes)
				return nil
			}

			rows := make([]noteRow, 0, len(notes))
			for _, note := range notes {
				rows = append(rows, newNoteRow(note))
			}
			return r.render(rows, func(w io.Writer) {
				for _, row := range rows {
					fmt.Fprintf(w, "%d\t%s\t%s\n", row.ID, row.CreatedAt, row.Content)
				}
			})
		},
	}
}

func (r *runner) noteAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <livre> <texte>",
		Short: "Ajoute une note de lecture",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := r.session()
			if err != nil {
				return err
			}

			book := library.Book{ID: bookID}
			added, err := r.libraryService().AddNote(cmd.Context(), current, &book, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if !added {
				return validate.RequiredError("content", MessageEmptyNote)
			}

			r.notify(library.MessageNoteAdded)
			row := newNoteRow(book.Notes[0])
			return r.render(row, func(w io.Writer) {
				fmt.Fprintf(w, "%d\t%s\n", row.ID, row.Content)
			})
		},
	}
}

func (r *runner) noteRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <livre> <note>",
		Short: "Supprime une note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, err := parseID(args[0])
			if err != nil {
				return err
			}
			noteID, err := parseID(args[1])
			if err != nil {
				return err
			}
			current, err := r.session()
			if err != nil {
				return err
			}

			book := library.Book{ID: bookID}
			if err := r.libraryService().DeleteNote(cmd.Context(), current, &book, noteID); err != nil {
				return err
			}

			r.notify(library.MessageNoteDeleted)
			return nil
		},
	}
}

func (r *runner) libraryRemoveCommand() *cobra.Command {
	var yes bool

	command := &cobra.Command{
		Use:   "rm <id>",
		Short: "Retire un livre de ta bibliothèque",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := r.session()
			if err != nil {
				return err
			}

			confirmed, err := r.confirm(yes, "Retirer le livre "+strconv.Itoa(id)+" de ta bibliothèque ?")
			if err != nil {
				return err
			}
			if err := r.libraryService().Delete(cmd.Context(), current, id, confirmed); err != nil {
				return err
			}

			r.notify(library.MessageDeleted)
			return nil
		},
	}

	command.Flags().BoolVarP(&yes, "yes", "y", false, "ne pas demander de confirmation")
	return command
}

// notFound reports an unknown identifier the way the API would.
func notFound(message string, id int) error {
	return apperr.NotFound(message + " (" + strconv.Itoa(id) + ")")
}
