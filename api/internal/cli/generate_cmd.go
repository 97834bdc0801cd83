package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"laporan-harian/api/internal/report"
	"laporan-harian/api/internal/session"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

type generateOptions struct {
	input   report.ReportInput
	format  string
	copy    bool
	timeout time.Duration
}

func newGenerateCmd(app *App) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Tulis laporan harian dari tiga catatan singkat",
		Long: "Kembangkan catatan aktivitas, pembelajaran dan kendala menjadi paragraf formal.\n" +
			"Isian yang tidak diberikan lewat flag ditanyakan lewat formulir.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !validFormat(opts.format) {
				return fmt.Errorf("unknown output format %q (text, json, yaml)", opts.format)
			}
			if opts.timeout <= 0 {
				opts.timeout = app.timeout()
			}
			return runGenerate(cmd.Context(), app, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.input.Activity, "activity", "", "uraian aktivitas hari ini")
	f.StringVar(&opts.input.Learning, "learning", "", "pembelajaran yang diperoleh")
	f.StringVar(&opts.input.Obstacle, "obstacle", "", "kendala yang dialami")
	f.StringVarP(&opts.format, "output", "o", formatText, "output format: text, json, yaml")
	f.BoolVar(&opts.copy, "copy", false, "salin laporan ke clipboard")
	f.DurationVar(&opts.timeout, "timeout", 0, "batas waktu pembuatan (default REQUEST_TIMEOUT)")
	return cmd
}

func runGenerate(ctx context.Context, app *App, out, errOut io.Writer, opts generateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	in := app.input()
	interactive := isTerminal(in)

	if !app.Reporter.Ready() {
		fmt.Fprintln(errOut, styleDim.Render("GEMINI_API_KEY belum diatur; pembuatan laporan akan gagal."))
	}

	input, err := collectInput(in, errOut, opts.input)
	if err != nil {
		return err
	}

	sess := session.New(app.Reporter)
	st, genErr := submit(ctx, opts.timeout, func(ctx context.Context) (session.State, error) {
		return sess.Submit(ctx, input)
	})
	if errors.Is(genErr, report.ErrInvalidInput) {
		return errors.New("activity, learning dan obstacle wajib diisi")
	}

	for st.Status == report.StatusError {
		app.log().WithError(genErr).WithField("kind", st.Kind).Debug("generation failed")
		fmt.Fprintln(errOut, st.Message)
		if !interactive || !confirmRetry(in, errOut) {
			return errors.New(st.Message)
		}
		st, genErr = submit(ctx, opts.timeout, sess.Retry)
	}
	if st.Status != report.StatusSuccess || st.Result == nil {
		return fmt.Errorf("generate: %w", genErr)
	}

	if err := writeReport(out, opts.format, *st.Result); err != nil {
		return err
	}
	if opts.copy {
		if err := copyToClipboard(st.Result.PlainText()); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(errOut, "Laporan disalin ke clipboard.")
	}
	return nil
}

func submit(ctx context.Context, d time.Duration, fn func(context.Context) (session.State, error)) (session.State, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(ctx)
}

// collectInput asks for every blank field with a huh form.
func collectInput(in io.Reader, out io.Writer, given report.ReportInput) (report.ReportInput, error) {
	var fields []huh.Field
	add := func(value *string, title, placeholder string) {
		if strings.TrimSpace(*value) != "" {
			return
		}
		fields = append(fields, huh.NewText().
			Title(title).
			Placeholder(placeholder).
			Value(value).
			Validate(notBlank))
	}

	res := given
	add(&res.Activity, "Uraian Aktivitas", "Apa yang Anda kerjakan hari ini? Siapa yang terlibat?")
	add(&res.Learning, "Pembelajaran yang Diperoleh", "Analisis baru atau keterampilan yang meningkat.")
	add(&res.Obstacle, "Kendala yang Dialami", "Tantangan spesifik dan dampaknya.")
	if len(fields) == 0 {
		return res, nil
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithInput(in).
		WithOutput(out).
		WithShowHelp(false)
	if !isTerminal(in) {
		form = form.WithAccessible(true)
	}
	if err := form.Run(); err != nil {
		return res, fmt.Errorf("form: %w", err)
	}
	return res, nil
}

func confirmRetry(in io.Reader, out io.Writer) bool {
	again := true
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Coba lagi?").
			Affirmative("Ya").
			Negative("Tidak").
			Value(&again),
	)).WithInput(in).WithOutput(out).Run()
	return err == nil && again
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("wajib diisi")
	}
	return nil
}

func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (a *App) log() logrus.FieldLogger {
	if a.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		a.Log = l
	}
	return a.Log
}
