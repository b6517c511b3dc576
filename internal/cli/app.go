package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"residence/server/config"
)

// App wires the cms commands to one content session
type App struct {
	cfg     *config.ClientConfig
	logger  *logrus.Logger
	in      io.Reader
	out     io.Writer
	session *Session
}

func NewApp(cfg *config.ClientConfig, logger *logrus.Logger, in io.Reader, out io.Writer) *App {
	return &App{cfg: cfg, logger: logger, in: in, out: out}
}

// Execute runs the command line and syncs edits before returning
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.RootCmd()
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.out)

	err := root.ExecuteContext(ctx)

	if a.session != nil {
		if syncErr := a.session.Close(ctx); syncErr != nil {
			fmt.Fprintf(a.out, "warning: changes are saved locally but were not synced: %v\n", syncErr)
		} else if a.session.Offline && a.session.Client != nil && a.session.Adapter.Status().Unsynced {
			fmt.Fprintln(a.out, "changes are saved locally and will be pushed on the next run with the server reachable")
		}
	}
	return err
}

func (a *App) RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cms",
		Short:         "Manage the residential site content",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.session == nil {
				a.session = OpenSession(cmd.Context(), a.cfg, a.logger)
				if a.session.Offline && a.session.Client != nil {
					fmt.Fprintln(a.out, "server unavailable, working offline with cached content")
				}
			}
		},
	}

	root.AddCommand(
		a.projectsCmd(),
		a.plansCmd(),
		a.promosCmd(),
		a.pinsCmd(),
		a.timelineCmd(),
		a.newsCmd(),
		a.pagesCmd(),
		a.settingsCmd(),
		a.uploadCmd(),
		a.bookingsCmd(),
		a.syncCmd(),
		a.statusCmd(),
		a.resetCmd(),
	)
	return root
}

// confirm asks a yes/no question on the app's input
func (a *App) confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
