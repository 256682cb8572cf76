package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"hotelbot/internal/agent"
	"hotelbot/internal/bootstrap"
)

var plain bool

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Interactive chat with HotelBot.

Commands:
  quit, exit, bye   leave
  reset             start a new conversation
  history           show this conversation
  tools             list the lookups the bot can use`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		deps, err := bootstrap.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer deps.Close()
		bot, err := deps.Bot(ctx)
		if err != nil {
			return err
		}
		return runREPL(ctx, os.Stdin, cmd.OutOrStdout(), bot, newRenderer(plain))
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Ask a single question and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		deps, err := bootstrap.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer deps.Close()
		bot, err := deps.Bot(ctx)
		if err != nil {
			return err
		}
		reply, err := bot.Chat(ctx, uuid.NewString(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), newRenderer(plain)(reply))
		return nil
	},
}

func init() {
	chatCmd.Flags().BoolVar(&plain, "plain", false, "print replies without markdown rendering")
	askCmd.Flags().BoolVar(&plain, "plain", false, "print replies without markdown rendering")
}

// newRenderer returns a markdown-to-terminal renderer, or identity when plain.
func newRenderer(plain bool) func(string) string {
	if plain {
		return func(s string) string { return s }
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return func(s string) string { return s }
	}
	return func(s string) string {
		out, err := r.Render(s)
		if err != nil {
			return s
		}
		return strings.TrimRight(out, "\n")
	}
}

// chatter is the part of *agent.Bot the REPL drives.
type chatter interface {
	Chat(ctx context.Context, thread, message string) (string, error)
	History(ctx context.Context, thread string) ([]agent.Message, error)
	Reset(ctx context.Context, thread string) error
	Tools() []agent.ToolInfo
}

func runREPL(ctx context.Context, in io.Reader, out io.Writer, bot chatter, render func(string) string) error {
	thread := uuid.NewString()
	fmt.Fprintln(out, titleStyle.Render("🏨 Welcome to HotelBot!"))
	fmt.Fprintln(out, dimStyle.Render("Ask me about hotels, rooms and prices. Type 'quit' to exit, 'reset' to start over."))

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n"+promptStyle.Render("You: "))
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "bye":
			fmt.Fprintln(out, "👋 Goodbye! Have a great trip!")
			return nil
		case "reset":
			if err := bot.Reset(ctx, thread); err != nil {
				fmt.Fprintln(out, "Error clearing memory:", err)
			}
			thread = uuid.NewString()
			fmt.Fprintln(out, dimStyle.Render("🔄 Conversation reset. Starting fresh!"))
			continue
		case "history":
			msgs, err := bot.History(ctx, thread)
			if err != nil {
				fmt.Fprintln(out, "Error loading history:", err)
				continue
			}
			if len(msgs) == 0 {
				fmt.Fprintln(out, dimStyle.Render("(no messages yet)"))
			}
			for _, m := range msgs {
				who := "You"
				if m.Role != "user" {
					who = "HotelBot"
				}
				fmt.Fprintf(out, "%s: %s\n", who, m.Text)
			}
			continue
		case "tools":
			for _, t := range bot.Tools() {
				fmt.Fprintf(out, "  • %s: %s\n", t.Name, t.Description)
			}
			continue
		}

		reply, err := bot.Chat(ctx, thread, line)
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
			continue
		}
		fmt.Fprintln(out, "\n"+titleStyle.Render("HotelBot:"))
		fmt.Fprintln(out, render(reply))
		if ctx.Err() != nil {
			return nil
		}
	}
}
