package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkalinins/commportal/internal/client/guard"
	"github.com/mkalinins/commportal/internal/portal"
)

// openView runs the route guard for a view and, when rendering is allowed,
// hands back the bearer token for the data fetch. The guard is re-evaluated
// on every navigation; denial messages mirror the redirect targets.
func (a *App) openView(ctx context.Context, required portal.Role) (string, bool) {
	switch guard.Evaluate(a.store.Snapshot(), required) {
	case guard.ShowLoading:
		printlnFn("Session check in progress, try again in a moment.")
	case guard.RedirectLogin:
		printlnFn("Please log in first (command: login).")
	case guard.RedirectHome:
		printlnFn("You do not have access to this section.")
	case guard.Render:
		token, err := a.store.Token(ctx)
		if err != nil {
			printlnFn("Could not read session token:", err)
			return "", false
		}
		return token, true
	}
	return "", false
}

// Home shows the bulletin board. Authenticated users only.
func (a *App) Home(ctx context.Context) error {
	token, ok := a.openView(ctx, "")
	if !ok {
		return nil
	}

	news, err := a.client.News(ctx, token)
	if err != nil {
		printlnFn("Could not load announcements:", err)
		return err
	}

	printlnFn("=== Community Bulletin ===")
	for _, item := range news {
		marker := ""
		if item.Priority != portal.PriorityNormal {
			marker = fmt.Sprintf(" [%s]", strings.ToUpper(string(item.Priority)))
		}
		printlnFn(fmt.Sprintf("%s%s — %s (%s)", item.Title, marker, item.Author,
			item.Date.Format("2006-01-02")))
		printlnFn("  " + item.Content)
	}
	return nil
}

// Chat lists the community chat rooms and the messages of a chosen room.
// Authenticated users only.
func (a *App) Chat(ctx context.Context) error {
	token, ok := a.openView(ctx, "")
	if !ok {
		return nil
	}

	rooms, err := a.client.ChatRooms(ctx, token)
	if err != nil {
		printlnFn("Could not load chat rooms:", err)
		return err
	}

	printlnFn("=== Chat Rooms ===")
	for _, room := range rooms {
		unread := ""
		if room.Unread > 0 {
			unread = fmt.Sprintf(" (%d unread)", room.Unread)
		}
		printlnFn(fmt.Sprintf("[%s] %s — %s%s", room.ID, room.Name, room.Description, unread))
	}
	printlnFn("Use 'messages <room-id>' to read a room, 'say <room-id> <text>' to post.")
	return nil
}

// Messages shows the message history of one room.
func (a *App) Messages(ctx context.Context, roomID string) error {
	token, ok := a.openView(ctx, "")
	if !ok {
		return nil
	}

	msgs, err := a.client.Messages(ctx, token, roomID)
	if err != nil {
		printlnFn("Could not load messages:", err)
		return err
	}

	for _, msg := range msgs {
		printlnFn(fmt.Sprintf("[%s] %s: %s", msg.Timestamp.Format("15:04"), msg.UserName, msg.Content))
	}
	return nil
}

// Say posts a message to a room.
func (a *App) Say(ctx context.Context, roomID, content string) error {
	token, ok := a.openView(ctx, "")
	if !ok {
		return nil
	}
	if strings.TrimSpace(content) == "" {
		printlnFn("Nothing to send.")
		return nil
	}

	msg, err := a.client.PostMessage(ctx, token, roomID, content)
	if err != nil {
		printlnFn("Could not send message:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Sent to room %s: %s", roomID, msg.Content))
	return nil
}

// Board shows meeting notes and discussions. Requires the board role.
func (a *App) Board(ctx context.Context) error {
	token, ok := a.openView(ctx, portal.RoleBoard)
	if !ok {
		return nil
	}

	meetings, err := a.client.Meetings(ctx, token)
	if err != nil {
		printlnFn("Could not load meetings:", err)
		return err
	}
	discussions, err := a.client.Discussions(ctx, token)
	if err != nil {
		printlnFn("Could not load discussions:", err)
		return err
	}

	printlnFn("=== Board Meetings ===")
	for _, m := range meetings {
		printlnFn(fmt.Sprintf("%s — %s [%s]", m.Date, m.Title, m.Status))
		if m.AINotes != "" {
			printlnFn("  Notes: " + m.AINotes)
		}
	}
	printlnFn("=== Discussions ===")
	for _, d := range discussions {
		printlnFn(fmt.Sprintf("%s by %s (%d replies, last activity %s)",
			d.Title, d.Author, d.Replies, d.LastActivity))
	}
	return nil
}

// Admin shows the document archive. Requires the admin role.
func (a *App) Admin(ctx context.Context) error {
	token, ok := a.openView(ctx, portal.RoleAdmin)
	if !ok {
		return nil
	}

	docs, err := a.client.Documents(ctx, token)
	if err != nil {
		printlnFn("Could not load documents:", err)
		return err
	}

	printlnFn("=== Document Archive ===")
	for _, doc := range docs {
		printlnFn(fmt.Sprintf("%s [%s] %s (%s)", doc.Date, doc.Category, doc.Name, doc.Size))
	}
	return nil
}
