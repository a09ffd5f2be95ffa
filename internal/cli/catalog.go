// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/etagere/internal/catalog"
	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/constants"
	"github.com/taibuivan/etagere/internal/session"
	"github.com/taibuivan/etagere/pkg/pagination"
)

const (
	MessageNoResults  = "Aucun résultat"
	MessageIdleSearch = "Saisis une recherche"
	MessageNoSuchItem = "Aucun résultat à la position "
)

type volumeRow struct {
	Index      int    `yaml:"index"`
	ExternalID string `yaml:"external_id"`
	Title      string `yaml:"title"`
	Author     string `yaml:"author,omitempty"`
	ISBN       string `yaml:"isbn,omitempty"`
	InLibrary  bool   `yaml:"in_library"`
}

type searchOutput struct {
	Query      string      `yaml:"query"`
	Page       int         `yaml:"page"`
	TotalPages int         `yaml:"total_pages"`
	Total      int         `yaml:"total"`
	Items      []volumeRow `yaml:"items"`
}

// pageFlags are the --page and --page-size flags of a list command.
type pageFlags struct {
	page int
	size int
}

func (flags *pageFlags) register(command *cobra.Command, defaultSize int) {
	command.Flags().IntVar(&flags.page, "page", 1, "numéro de page")
	command.Flags().IntVar(&flags.size, "page-size", defaultSize, "éléments par page")
}

func (flags pageFlags) params(maxSize int) pagination.Params {
	return pagination.New(flags.page, flags.size, maxSize)
}

func (r *runner) catalogService() *catalog.Service {
	return catalog.NewService(catalog.NewRemoteGateway(r.client), catalog.NewMemoryCache(), r.cfg.CatalogCacheTTL, r.logger)
}

// search runs one catalog query for the logged-in user.
func (r *runner) search(ctx context.Context, current session.Session, text string, paging pageFlags) (catalog.Result, error) {
	return r.catalogService().Search(ctx, current, catalog.Query{
		Text:   text,
		Params: paging.params(constants.CatalogMaxPageSize),
	})
}

func (r *runner) searchCommand() *cobra.Command {
	var paging pageFlags

	command := &cobra.Command{
		Use:   "search <recherche>",
		Short: "Cherche des livres dans le catalogue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := r.session()
			if err != nil {
				return err
			}

			result, err := r.search(cmd.Context(), current, strings.Join(args, " "), paging)
			if err != nil {
				return err
			}

			switch {
			case result.Idle:
				r.notify(MessageIdleSearch)
				return nil
			case result.Empty():
				r.notify(MessageNoResults)
				return nil
			}

			out := searchOutput{
				Query:      result.Query,
				Page:       result.Meta.Page,
				TotalPages: result.Meta.TotalPages,
				Total:      result.Meta.Total,
				Items:      make([]volumeRow, 0, len(result.Items)),
			}
			for i, item := range result.Items {
				out.Items = append(out.Items, volumeRow{
					Index:      i + 1,
					ExternalID: item.ID,
					Title:      item.Title(),
					Author:     item.Author(),
					ISBN:       item.ISBN(),
					InLibrary:  item.InLibrary,
				})
			}

			return r.render(out, func(w io.Writer) {
				for _, row := range out.Items {
					fmt.Fprintf(w, "%d.\t%s\t%s\t%s\n", row.Index, row.Title, row.Author, mark(row.InLibrary, "dans ta bibliothèque"))
				}
				fmt.Fprintf(w, "\nPage %d/%d, %d résultat(s)\n", out.Page, out.TotalPages, out.Total)
			})
		},
	}

	paging.register(command, constants.DefaultPageSize)
	return command
}

func (r *runner) addCommand() *cobra.Command {
	var (
		paging pageFlags
		index  int
	)

	command := &cobra.Command{
		Use:   "add <recherche>",
		Short: "Ajoute un résultat de recherche à ta bibliothèque",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := r.session()
			if err != nil {
				return err
			}

			result, err := r.search(cmd.Context(), current, strings.Join(args, " "), paging)
			if err != nil {
				return err
			}
			if index < 1 || index > len(result.Items) {
				return apperr.NotFound(fmt.Sprintf("%s%d", MessageNoSuchItem, index))
			}

			item := result.Items[index-1]
			if item.InLibrary {
				return apperr.Conflict(catalog.MessageAlreadyInLibrary)
			}

			if err := r.catalogService().Add(cmd.Context(), current, item.ToNewBook()); err != nil {
				return err
			}

			r.notify(item.Title() + " : " + catalog.MessageAdded)
			return nil
		},
	}

	paging.register(command, constants.DefaultPageSize)
	command.Flags().IntVarP(&index, "index", "n", 1, "position du livre dans les résultats (à partir de 1)")
	return command
}
