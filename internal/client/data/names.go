package data

import (
	"context"
	"fmt"

	"github.com/iudanet/chatsync/internal/client/storage"
	"github.com/iudanet/chatsync/internal/models"
	"github.com/iudanet/chatsync/internal/validation"
)

// checkName проверяет формат имени и его уникальность в коллекции
func checkName[T models.Entity](ctx context.Context, coll storage.Collection[T], name string, excludeID uint64) error {
	if err := validation.ValidateName(name); err != nil {
		return err
	}

	taken, err := coll.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check name: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: %q", ErrNameTaken, name)
	}
	return nil
}

// copyName подбирает свободное имя вида "name (copy)", "name (copy 2)", ...
func copyName[T models.Entity](ctx context.Context, coll storage.Collection[T], base string) (string, error) {
	candidate := base + " (copy)"
	for n := 2; ; n++ {
		taken, err := coll.ExistsByName(ctx, candidate, 0)
		if err != nil {
			return "", fmt.Errorf("failed to check name: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s (copy %d)", base, n)
	}
}
