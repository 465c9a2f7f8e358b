package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

const (
	titleWidth = 48
	dateLayout = "2006-01-02"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	hintColor    = color.New(color.FgCyan)
)

// newTable creates a borderless, left-aligned table writing to w.
func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	table.Header(headers)
	return table
}

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := newTable(w, headers...)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return table.Render()
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// truncate shortens s to width terminal columns.
func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, width, "…")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func statusLabel(s domain.ArticleStatus) string {
	label := fmt.Sprintf("%s (%s)", s, s.Label())
	switch s {
	case domain.StatusPublished:
		return successColor.Sprint(label)
	case domain.StatusDraft:
		return warnColor.Sprint(label)
	default:
		return label
	}
}

func printSuccess(cmd *cobra.Command, format string, args ...any) {
	successColor.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

// PrintError writes err and an actionable hint, if any, to w.
func PrintError(w io.Writer, err error) {
	errorColor.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
	if hint := errorHint(err); hint != "" {
		hintColor.Fprintln(w, hint)
	}
}

func errorHint(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthRequired), errors.Is(err, domain.ErrAuthInvalid):
		return "Run 'raiz auth login' to start a session."
	case errors.Is(err, domain.ErrForbidden):
		return "This action requires an admin account."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Credenciales inválidas"
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "Las contraseñas no coinciden"
	default:
		return ""
	}
}
