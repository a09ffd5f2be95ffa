// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taibuivan/etagere/internal/app"
	"github.com/taibuivan/etagere/internal/auth"
	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/session"
)

// # Server

func (r *runner) serveCommand() *cobra.Command {
	var port string

	command := &cobra.Command{
		Use:   "serve",
		Short: "Démarre le front-end web",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != "" {
				r.cfg.ServerPort = port
			}

			log := app.NewLogger(r.cfg.Debug)
			application, err := app.New(cmd.Context(), r.cfg, log)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.Run(cmd.Context())
		},
	}

	command.Flags().StringVarP(&port, "port", "p", "", "port d'écoute (remplace SERVER_PORT)")
	return command
}

// # Account

type identityOutput struct {
	ID       int    `yaml:"id"`
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Admin    bool   `yaml:"admin"`
	Active   bool   `yaml:"active"`
}

func (r *runner) loginCommand() *cobra.Command {
	var email string

	command := &cobra.Command{
		Use:   "login",
		Short: "Se connecter et garder le jeton pour les commandes suivantes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if email == "" {
				if email, err = r.ask("E-mail : "); err != nil {
					return err
				}
			}

			password, err := r.ReadPassword("Mot de passe : ")
			if err != nil {
				return err
			}

			service := auth.NewService(auth.NewRemoteGateway(r.client), r.logger)
			token, err := service.Login(cmd.Context(), auth.Credentials{Email: email, Password: password})
			if apperr.IsUnauthorized(err) {
				// A rejected pair says nothing about the stored token.
				return apperr.ValidationError(apperr.UserMessage(err, auth.MessageInvalidCredentials))
			}
			if err != nil {
				return err
			}

			store, err := r.tokens()
			if err != nil {
				return err
			}
			if err := store.Save(token); err != nil {
				return err
			}

			r.notify(MessageLoggedIn)
			return nil
		},
	}

	command.Flags().StringVarP(&email, "email", "e", "", "adresse e-mail du compte")
	return command
}

func (r *runner) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Oublier le jeton enregistré",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := r.tokens()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}

			r.notify(MessageLoggedOut)
			return nil
		},
	}
}

func (r *runner) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Affiche le compte connecté",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := r.session()
			if err != nil {
				return err
			}

			identity, err := session.NewRemoteResolver(r.client).Me(cmd.Context(), current)
			if err != nil {
				return err
			}

			out := identityOutput{
				ID:       identity.ID,
				Username: identity.Username,
				Email:    identity.Email,
				Admin:    identity.IsAdmin,
				Active:   identity.IsActive,
			}
			return r.render(out, func(w io.Writer) {
				fmt.Fprintf(w, "%s <%s>", out.Username, out.Email)
				if out.Admin {
					fmt.Fprint(w, " (admin)")
				}
				fmt.Fprintln(w)
			})
		},
	}
}
