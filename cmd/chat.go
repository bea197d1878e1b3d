package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/varsilias/crystal/internal/chat"
	"github.com/varsilias/crystal/internal/config"
	"github.com/varsilias/crystal/internal/locale"
)

func newChatCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with Crystal in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, v)
		},
	}
}

func runChat(cmd *cobra.Command, v *viper.Viper) error {
	// Keep logs off the conversation unless asked for.
	if !cmd.Flags().Changed(config.KeyLogLevel) && os.Getenv("CRYSTAL_LOG_LEVEL") == "" {
		v.Set(config.KeyLogLevel, "error")
	}
	a, err := newApp(v, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	r := &repl{chat: a.chat, in: cmd.InOrStdin(), out: cmd.OutOrStdout(), render: plain}
	if f, ok := r.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.render = markdownRenderer()
	}
	return r.run(ctx)
}

var quitWords = map[string]bool{"sair": true, "tchau": true, "exit": true, "quit": true}

type repl struct {
	chat   *chat.Controller
	in     io.Reader
	out    io.Writer
	render func(string) string
}

func (r *repl) run(ctx context.Context) error {
	sess, err := r.chat.NewSession()
	if err != nil {
		return err
	}
	defer r.chat.EndSession(sess.ID)

	fmt.Fprintf(r.out, "Crystal: %s\n(digite 'ajuda' para dicas, 'sair' para encerrar)\n\n", r.render(chat.Greeting))

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "\u001b[94mVocê\u001b[0m: ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch folded := locale.Fold(line); {
		case line == "":
			continue
		case quitWords[folded]:
			fmt.Fprintln(r.out, "Crystal: Até logo!")
			return nil
		case folded == "ajuda":
			for _, tip := range chat.Tips {
				fmt.Fprintf(r.out, "  - %s: %s\n", tip.Topic, tip.Example)
			}
			continue
		}

		reply, err := r.chat.Respond(ctx, sess.ID, line)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "\u001b[95mCrystal\u001b[0m: %s\n", r.render(reply.Message.Content))
		if ctx.Err() != nil {
			return nil
		}
	}
}

func plain(s string) string { return s }

func markdownRenderer() func(string) string {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		width = w - 4
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return plain
	}
	return func(s string) string {
		out, err := tr.Render(s)
		if err != nil {
			return s
		}
		return strings.TrimSpace(out)
	}
}
