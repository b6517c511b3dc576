package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"residence/server/internal/content"
)

func (a *App) uploadCmd() *cobra.Command {
	var contentType string
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.session.api()
			if err != nil {
				return err
			}
			url, err := api.UploadFile(cmd.Context(), args[0], contentType)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, url)
			return nil
		},
	}
	cmd.Flags().StringVar(&contentType, "type", "", "content type, detected by the server when empty")
	return cmd
}

func (a *App) bookingsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "bookings", Short: "Show leads left on the site"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.session.api()
			if err != nil {
				return err
			}
			bookings, err := api.Bookings(cmd.Context())
			if err != nil {
				return err
			}
			w := a.table()
			fmt.Fprintln(w, "CREATED\tNAME\tPHONE\tPROJECT\tAPARTMENT")
			for _, b := range bookings {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					b.CreatedAt.Local().Format("2006-01-02 15:04"), b.Name, b.Phone, b.ProjectName, b.Number)
			}
			return w.Flush()
		},
	})
	return cmd
}

func (a *App) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push the local content to the server now",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.session.Offline {
				return errors.New("server unavailable, nothing was pushed")
			}
			a.session.Adapter.OnChange(a.session.Store.Snapshot())
			if err := a.session.Adapter.Flush(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "synced")
			return nil
		},
	}
}

func (a *App) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server and sync status",
		RunE: func(cmd *cobra.Command, args []string) error {
			if api, err := a.session.api(); err == nil && !a.session.Offline {
				if h, err := api.Health(cmd.Context()); err == nil {
					fmt.Fprintf(a.out, "server: %s (%s)\n", h.Status, h.Time.Local().Format(time.RFC3339))
				} else {
					fmt.Fprintf(a.out, "server: %v\n", err)
				}
			} else {
				fmt.Fprintln(a.out, "server: offline")
			}

			st := a.session.Adapter.Status()
			fmt.Fprintf(a.out, "sync:   %s\n", st.State)
			if st.Unsynced {
				fmt.Fprintln(a.out, "local edits not yet on the server")
			}
			if !st.LastSyncedAt.IsZero() {
				fmt.Fprintf(a.out, "last synced: %s\n", st.LastSyncedAt.Local().Format(time.RFC3339))
			}
			if st.LastError != nil {
				fmt.Fprintf(a.out, "last error: %v\n", st.LastError)
			}
			return nil
		},
	}
}

func (a *App) resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace all content with the built-in defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm := a.confirm
			if yes {
				confirm = func(string) bool { return true }
			}
			if err := a.session.Store.Reset(confirm); err != nil {
				if errors.Is(err, content.ErrResetNotConfirmed) {
					fmt.Fprintln(a.out, "reset cancelled")
					return nil
				}
				return err
			}
			fmt.Fprintln(a.out, "content reset to defaults")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "do not ask for confirmation")
	return cmd
}
