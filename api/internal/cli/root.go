package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laporan-harian/api/internal/config"
	"laporan-harian/api/internal/report"
)

// Reporter is the generation pipeline shared by every command.
type Reporter interface {
	Write(ctx context.Context, in report.ReportInput) (report.ReportData, error)
	Ready() bool
}

// App holds what the commands need. main fills it once at startup.
type App struct {
	Config   *config.Config
	Reporter Reporter
	Log      logrus.FieldLogger

	// In is where interactive forms read from; nil means os.Stdin.
	In io.Reader
}

func (a *App) input() io.Reader {
	if a.In == nil {
		return os.Stdin
	}
	return a.In
}

func (a *App) timeout() time.Duration {
	if a.Config != nil && a.Config.RequestTimeout > 0 {
		return a.Config.RequestTimeout
	}
	return 60 * time.Second
}

// NewRootCmd creates the top-level "laporan" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "laporan",
		Short:         "Penulis laporan harian berbasis Gemini",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(app),
		newServeCmd(app),
		newBotCmd(app),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the prompt version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), report.PromptVersion)
		},
	}
}
