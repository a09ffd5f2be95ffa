// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/etagere/internal/admin"
	"github.com/taibuivan/etagere/internal/platform/constants"
	"github.com/taibuivan/etagere/pkg/pagination"
)

type userRow struct {
	ID       int    `yaml:"id"`
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Role     string `yaml:"role"`
	Status   string `yaml:"status"`
}

type usersOutput struct {
	Page       int       `yaml:"page"`
	TotalPages int       `yaml:"total_pages"`
	Total      int       `yaml:"total"`
	Users      []userRow `yaml:"users"`
}

func newUserRow(user admin.User) userRow {
	return userRow{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role(),
		Status:   user.StatusLabel(),
	}
}

func (r *runner) adminService() *admin.Service {
	return admin.NewService(admin.NewRemoteGateway(r.client), r.logger)
}

func (r *runner) usersCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "users",
		Short: "Administration des comptes (administrateurs seulement)",
	}
	command.AddCommand(r.usersListCommand(), r.usersToggleCommand())
	return command
}

func (r *runner) usersListCommand() *cobra.Command {
	var (
		paging pageFlags
		search string
	)

	command := &cobra.Command{
		Use:   "list",
		Short: "Liste les comptes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := r.session()
			if err != nil {
				return err
			}

			view, err := r.adminService().List(cmd.Context(), current, admin.Filter{
				Search: strings.TrimSpace(search),
				Params: paging.params(constants.MaxPageSize),
			})
			if err != nil {
				return err
			}

			meta := view.Meta()
			out := usersOutput{Page: meta.Page, TotalPages: meta.TotalPages, Total: meta.Total, Users: []userRow{}}
			for _, user := range view.Users {
				out.Users = append(out.Users, newUserRow(user))
			}

			return r.render(out, func(w io.Writer) {
				for _, row := range out.Users {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", row.ID, row.Username, row.Email, row.Role, row.Status)
				}
				fmt.Fprintf(w, "\nPage %d/%d, %d compte(s)\n", out.Page, out.TotalPages, out.Total)
			})
		},
	}

	paging.register(command, admin.PageSize)
	command.Flags().StringVarP(&search, "search", "q", "", "nom d'utilisateur ou e-mail")
	return command
}

func (r *runner) usersToggleCommand() *cobra.Command {
	var search string

	command := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Active ou désactive un compte",
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

			service := r.adminService()
			filter := admin.Filter{
				Search: strings.TrimSpace(search),
				Params: pagination.New(1, constants.MaxPageSize, constants.MaxPageSize),
			}

			// The current state is only known from the list, so walk it
			// until the row shows up.
			for {
				view, err := service.List(cmd.Context(), current, filter)
				if err != nil {
					return err
				}

				if _, found := view.Find(id); found {
					saved, err := service.ToggleActive(cmd.Context(), current, &view, id)
					if err != nil {
						return err
					}

					if saved.IsActive {
						r.notify(admin.MessageActivated)
					} else {
						r.notify(admin.MessageDeactivated)
					}
					row := newUserRow(saved)
					return r.render(row, func(w io.Writer) {
						fmt.Fprintf(w, "%d\t%s\t%s\n", row.ID, row.Username, row.Status)
					})
				}

				if !view.Meta().HasNext() {
					return notFound(admin.MessageUserNotFound, id)
				}
				filter.Params.Page++
			}
		},
	}

	command.Flags().StringVarP(&search, "search", "q", "", "restreint la recherche du compte")
	return command
}
