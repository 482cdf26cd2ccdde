package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/chatsync/internal/models"
)

type chatAddOptions struct {
	Name     string
	Title    string
	Source   string
	Preset   string
	File     string
	Messages []string // role:content
}

var knownSources = []string{
	models.SourceChatGPT,
	models.SourceClaude,
	models.SourceGemini,
	models.SourceDeepSeek,
}

func (c *Cli) runChatAdd(ctx context.Context, opts chatAddOptions) error {
	chat := &models.Chat{}
	if opts.File != "" {
		content, err := os.ReadFile(opts.File)
		if err != nil {
			return fmt.Errorf("failed to read chat file: %w", err)
		}
		if err := json.Unmarshal(content, chat); err != nil {
			return fmt.Errorf("failed to parse chat file: %w", err)
		}
		// Импорт создает новую сущность, идентичность из файла не переносится
		chat.SyncID = ""
	}

	if opts.Name != "" {
		chat.Name = opts.Name
	}
	if chat.Name == "" {
		return errors.New("chat name is required (--name)")
	}
	if opts.Title != "" {
		chat.Title = opts.Title
	}
	if opts.Source != "" {
		chat.Source = opts.Source
	}
	if chat.Source != "" && !isKnownSource(chat.Source) {
		return fmt.Errorf("unknown source %q: use one of %s", chat.Source, strings.Join(knownSources, ", "))
	}
	if opts.Preset != "" {
		chat.PresetName = opts.Preset
	}

	for _, m := range opts.Messages {
		role, content, ok := strings.Cut(m, ":")
		role = strings.TrimSpace(role)
		if !ok || role == "" {
			return fmt.Errorf("invalid message %q: expected role:content", m)
		}
		chat.Messages = append(chat.Messages, models.Message{Role: role, Content: strings.TrimSpace(content)})
	}
	if chat.Messages == nil {
		chat.Messages = []models.Message{}
	}

	created, err := c.data.CreateChat(ctx, chat)
	if err != nil {
		return fmt.Errorf("failed to add chat: %w", err)
	}

	c.io.Printf("✓ Chat %q added (id %d)\n", created.Name, created.LocalID)
	return nil
}

func isKnownSource(s string) bool {
	for _, known := range knownSources {
		if s == known {
			return true
		}
	}
	return false
}

func (c *Cli) runChatList(ctx context.Context) error {
	chats, err := c.data.ListChats(ctx)
	if err != nil {
		return fmt.Errorf("failed to list chats: %w", err)
	}
	return c.render(chatListTemplate, chats)
}

func (c *Cli) runChatShow(ctx context.Context, arg string, asJSON bool) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	chat, err := c.data.GetChat(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get chat %d: %w", id, err)
	}

	if asJSON {
		return c.writeJSON(chat)
	}
	return c.render(chatTemplate, chat)
}

func (c *Cli) runChatRename(ctx context.Context, arg, name string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	if err := c.data.RenameChat(ctx, id, name); err != nil {
		return fmt.Errorf("failed to rename chat %d: %w", id, err)
	}
	c.io.Printf("✓ Chat %d renamed to %q\n", id, name)
	return nil
}

func (c *Cli) runChatDuplicate(ctx context.Context, arg, name string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	dup, err := c.data.DuplicateChat(ctx, id, name)
	if err != nil {
		return fmt.Errorf("failed to duplicate chat %d: %w", id, err)
	}
	c.io.Printf("✓ Chat duplicated as %q (id %d)\n", dup.Name, dup.LocalID)
	return nil
}

func (c *Cli) runChatDelete(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	if err := c.data.DeleteChat(ctx, id); err != nil {
		return fmt.Errorf("failed to delete chat %d: %w", id, err)
	}
	c.io.Printf("✓ Chat %d deleted\n", id)
	return nil
}

func (c *Cli) writeJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	_, err = c.io.Write(append(out, '\n'))
	return err
}
