package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/chatsync/internal/client/session"
	"github.com/iudanet/chatsync/internal/client/sync"
)

// explain дополняет типовые ошибки синхронизации подсказкой
func explain(err error) error {
	switch {
	case errors.Is(err, sync.ErrSyncDisabled):
		return fmt.Errorf("%w: run 'chatsync enable' first", err)
	case errors.Is(err, session.ErrAuthRequired):
		return fmt.Errorf("%w: run 'chatsync login'", err)
	case errors.Is(err, sync.ErrSyncInProgress):
		return fmt.Errorf("%w: try again later", err)
	default:
		return err
	}
}

func (c *Cli) runEnable(ctx context.Context) error {
	if err := c.sync.Enable(ctx); err != nil {
		return explain(err)
	}
	c.io.Println("✓ Synchronization enabled")
	return nil
}

func (c *Cli) runDisable(ctx context.Context) error {
	if err := c.sync.Disable(ctx); err != nil {
		return err
	}
	c.io.Println("✓ Synchronization disabled. Local data and session are kept.")
	return nil
}

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")

	result, err := c.sync.SyncAll(ctx)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", explain(err))
	}
	return c.render(syncResultTemplate, result)
}

func (c *Cli) runRestore(ctx context.Context) error {
	c.io.Println("Restoring from the remote store...")

	result, err := c.sync.RestoreFromCloud(ctx)
	if err != nil {
		return fmt.Errorf("restore failed: %w", explain(err))
	}
	return c.render(restoreResultTemplate, result)
}

func (c *Cli) runWipeRemote(ctx context.Context, yes bool) error {
	if !yes {
		ok, err := c.confirm("Delete all chats, presets and deletion records from the remote store?")
		if err != nil {
			return err
		}
		if !ok {
			c.io.Println("Aborted.")
			return nil
		}
	}

	if err := c.sync.DeleteAllData(ctx); err != nil {
		return fmt.Errorf("failed to delete remote data: %w", explain(err))
	}
	c.io.Println("✓ Remote data deleted. Local chats and presets are kept.")
	return nil
}
