// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"html"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/etagere/internal/manuscript"
	"github.com/taibuivan/etagere/pkg/richtext"
)

const (
	MessageNoManuscripts = "Aucun manuscrit"
	excerptLength        = 80
)

type chapterRow struct {
	ID      int    `yaml:"id"`
	Order   *int   `yaml:"order,omitempty"`
	Title   string `yaml:"title"`
	Excerpt string `yaml:"excerpt,omitempty"`
}

type manuscriptRow struct {
	ID          int          `yaml:"id"`
	Title       string       `yaml:"title"`
	Description string       `yaml:"description,omitempty"`
	Chapters    []chapterRow `yaml:"chapters"`
}

func newManuscriptRow(item manuscript.Manuscript) manuscriptRow {
	row := manuscriptRow{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Chapters:    make([]chapterRow, 0, len(item.Chapters)),
	}
	for _, chapter := range item.Chapters {
		row.Chapters = append(row.Chapters, chapterRow{
			ID:      chapter.ID,
			Order:   chapter.OrderIndex,
			Title:   chapter.Title,
			Excerpt: richtext.Excerpt(chapter.Content, excerptLength),
		})
	}
	return row
}

// paragraphs turns plain text into editor HTML: one <p> per block separated
// by a blank line, single newlines kept as <br>.
func paragraphs(text string) string {
	var builder strings.Builder
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		builder.WriteString("<p>")
		builder.WriteString(strings.ReplaceAll(html.EscapeString(block), "\n", "<br>"))
		builder.WriteString("</p>")
	}
	return builder.String()
}

func (r *runner) manuscriptService() *manuscript.Service {
	return manuscript.NewService(manuscript.NewRemoteGateway(r.client), r.logger)
}

// # Manuscripts

func (r *runner) manuscriptsCommand() *cobra.Command {
	command := &cobra.Command{
		Use:     "manuscripts",
		Aliases: []string{"ms"},
		Short:   "Gère tes manuscrits",
	}
	command.AddCommand(
		r.manuscriptListCommand(),
		r.manuscriptShowCommand(),
		r.manuscriptCreateCommand(),
		r.manuscriptRemoveCommand(),
	)
	return command
}

func (r *runner) manuscriptListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Liste tes manuscrits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := r.session()
			if err != nil {
				return err
			}

			manuscripts, err := r.manuscriptService().List(cmd.Context(), current)
			if err != nil {
				return err
			}
			if len(manuscripts) == 0 {
				r.notify(MessageNoManuscripts)
				return nil
			}

			rows := make([]manuscriptRow, 0, len(manuscripts))
			for _, item := range manuscripts {
				rows = append(rows, newManuscriptRow(item))
			}
			return r.render(rows, func(w io.Writer) {
				for _, row := range rows {
					fmt.Fprintf(w, "%d\t%s\t%d chapitre(s)\n", row.ID, row.Title, len(row.Chapters))
				}
			})
		},
	}
}

func (r *runner) manuscriptShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Affiche un manuscrit et ses chapitres dans l'ordre",
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

			item, err := r.manuscriptService().Get(cmd.Context(), current, id)
			if err != nil {
				return err
			}

			row := newManuscriptRow(item)
			return r.render(row, func(w io.Writer) {
				fmt.Fprintf(w, "%s\n", row.Title)
				if row.Description != "" {
					fmt.Fprintf(w, "%s\n", row.Description)
				}
				fmt.Fprintln(w)
				for _, chapter := range row.Chapters {
					fmt.Fprintf(w, "%d\t%s\t%s\n", chapter.ID, chapter.Title, chapter.Excerpt)
				}
			})
		},
	}
}

func (r *runner) manuscriptCreateCommand() *cobra.Command {
	var description string

	command := &cobra.Command{
		Use:   "create <titre>",
		Short: "Crée un manuscrit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := r.session()
			if err != nil {
				return err
			}

			created, err := r.manuscriptService().Create(cmd.Context(), current, manuscript.Draft{
				Title:       strings.Join(args, " "),
				Description: description,
			})
			if err != nil {
				return err
			}

			r.notify(manuscript.MessageCreated)
			row := newManuscriptRow(created)
			return r.render(row, func(w io.Writer) {
				fmt.Fprintf(w, "%d\t%s\n", row.ID, row.Title)
			})
		},
	}

	command.Flags().StringVarP(&description, "description", "d", "", "résumé du manuscrit")
	return command
}

func (r *runner) manuscriptRemoveCommand() *cobra.Command {
	var yes bool

	command := &cobra.Command{
		Use:   "rm <id>",
		Short: "Supprime un manuscrit et tous ses chapitres",
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

			confirmed, err := r.confirm(yes, "Supprimer le manuscrit "+strconv.Itoa(id)+" et tous ses chapitres ?")
			if err != nil {
				return err
			}
			if err := r.manuscriptService().Delete(cmd.Context(), current, id, confirmed); err != nil {
				return err
			}

			r.notify(manuscript.MessageDeleted)
			return nil
		},
	}

	command.Flags().BoolVarP(&yes, "yes", "y", false, "ne pas demander de confirmation")
	return command
}

// # Chapters

func (r *runner) chaptersCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "chapters",
		Short: "Ajoute ou supprime des chapitres",
	}
	command.AddCommand(r.chapterAddCommand(), r.chapterRemoveCommand())
	return command
}

func (r *runner) chapterAddCommand() *cobra.Command {
	var (
		title  string
		file   string
		asHTML bool
	)

	command := &cobra.Command{
		Use:   "add <manuscrit>",
		Short: "Ajoute un chapitre lu depuis un fichier ou l'entrée standard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manuscriptID, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := r.session()
			if err != nil {
				return err
			}

			var raw []byte
			if file == "" || file == "-" {
				raw, err = io.ReadAll(r.lines)
			} else {
				raw, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("cli: read chapter: %w", err)
			}

			content := string(raw)
			if !asHTML {
				content = paragraphs(content)
			}

			chapter, err := r.manuscriptService().SaveChapter(cmd.Context(), current, manuscriptID, 0, manuscript.ChapterDraft{
				Title:   title,
				Content: content,
			})
			if err != nil {
				return err
			}

			r.notify(manuscript.MessageChapterAdded)
			row := chapterRow{ID: chapter.ID, Order: chapter.OrderIndex, Title: chapter.Title}
			return r.render(row, func(w io.Writer) {
				fmt.Fprintf(w, "%d\t%s\n", row.ID, row.Title)
			})
		},
	}

	flags := command.Flags()
	flags.StringVarP(&title, "title", "t", "", "titre du chapitre")
	flags.StringVarP(&file, "file", "f", "", "fichier du texte (- ou vide pour l'entrée standard)")
	flags.BoolVar(&asHTML, "html", false, "le texte est déjà du HTML")
	return command
}

func (r *runner) chapterRemoveCommand() *cobra.Command {
	var yes bool

	command := &cobra.Command{
		Use:   "rm <chapitre>",
		Short: "Supprime un chapitre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chapterID, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := r.session()
			if err != nil {
				return err
			}

			confirmed, err := r.confirm(yes, "Supprimer le chapitre "+strconv.Itoa(chapterID)+" ?")
			if err != nil {
				return err
			}
			if err := r.manuscriptService().DeleteChapter(cmd.Context(), current, chapterID, confirmed); err != nil {
				return err
			}

			r.notify(manuscript.MessageChapterDeleted)
			return nil
		},
	}

	command.Flags().BoolVarP(&yes, "yes", "y", false, "ne pas demander de confirmation")
	return command
}

// # Sharing

func (r *runner) shareCommand() *cobra.Command {
	var (
		recipients string
		chapterIDs []int
		subject    string
		note       string
	)

	command := &cobra.Command{
		Use:   "share <manuscrit>",
		Short: "Envoie un manuscrit, entier ou quelques chapitres, par e-mail",
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

			service := r.manuscriptService()
			item, err := service.Get(cmd.Context(), current, id)
			if err != nil {
				return err
			}

			share, err := service.Share(cmd.Context(), current, item, manuscript.ShareInput{
				Recipients: recipients,
				Whole:      len(chapterIDs) == 0,
				ChapterIDs: chapterIDs,
				Subject:    subject,
				Message:    note,
			})
			if err != nil {
				return err
			}

			r.notify(fmt.Sprintf("%s à %d destinataire(s)", manuscript.MessageShared, len(share.Recipients)))
			return nil
		},
	}

	flags := command.Flags()
	flags.StringVar(&recipients, "to", "", "destinataires séparés par des virgules ou des espaces")
	flags.IntSliceVarP(&chapterIDs, "chapters", "c", nil, "chapitres à envoyer (tous par défaut)")
	flags.StringVarP(&subject, "subject", "s", "", "objet de l'e-mail")
	flags.StringVarP(&note, "message", "m", "", "message d'accompagnement")
	return command
}
