package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// prompter reads answers from the command's input. Passwords are read
// without echo when the input is a terminal.
type prompter struct {
	cmd    *cobra.Command
	reader *bufio.Reader
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{cmd: cmd, reader: bufio.NewReader(cmd.InOrStdin())}
}

//nolint:errcheck // CLI helper, EOF yields an empty answer
func (p *prompter) line(label string) string {
	p.cmd.Print(label)
	input, _ := p.reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func (p *prompter) password(label string) string {
	p.cmd.Print(label)
	if f, ok := p.cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		p.cmd.Println()
		if err == nil {
			return string(secret)
		}
	}
	input, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return ""
	}
	return strings.TrimRight(input, "\r\n")
}

func (p *prompter) confirm(label string) bool {
	answer := strings.ToLower(p.line(label + " [y/N]: "))
	return answer == "y" || answer == "yes" || answer == "s" || answer == "si" || answer == "sí"
}
