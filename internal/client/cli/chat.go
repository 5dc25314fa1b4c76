package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/edupilot/edupilot/internal/client/services"
)

// Chat talks to EduBot. Without arguments it shows the conversation so
// far; "clear" deletes it.
func (a *App) Chat(ctx context.Context, args []string) error {
	if len(args) == 1 && args[0] == "clear" {
		if err := a.chatService.ClearHistory(ctx); err != nil {
			return a.fail(ctx, "clear chat", err, services.MsgClearChat)
		}
		fmt.Fprintln(a.out, "Chat history cleared")
		return nil
	}

	if len(args) == 0 {
		msgs, err := a.chatService.Load(ctx)
		if err != nil {
			return a.fail(ctx, "load chat", err, services.MsgLoadChat)
		}
		printChat(a.out, msgs)
		return nil
	}

	reply, err := a.chatService.Send(ctx, strings.Join(args, " "))
	if err != nil {
		return a.fail(ctx, "send chat message", err, services.MsgSendChat)
	}
	printChatMessage(a.out, reply)
	return nil
}
