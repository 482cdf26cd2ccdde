package sealed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/chatsync/internal/client/remote"
)

// ErrPassphraseRequired документ зашифрован, а парольная фраза не задана
var ErrPassphraseRequired = errors.New("remote document is encrypted: set encryption.passphrase")

// Guard обертка для клиента без шифрования. Зашифрованный документ
// не разбирается как пустой и не перезаписывается открытым текстом.
type Guard struct {
	remote.DocumentStore
}

var _ remote.DocumentStore = (*Guard)(nil)

// NewGuard оборачивает inner
func NewGuard(inner remote.DocumentStore) *Guard {
	return &Guard{DocumentStore: inner}
}

// Download отказывает в чтении конверта
func (g *Guard) Download(ctx context.Context, handle *remote.Handle) ([]byte, error) {
	raw, err := g.DocumentStore.Download(ctx, handle)
	if err != nil {
		return nil, err
	}
	if IsSealed(raw) {
		return nil, fmt.Errorf("%s: %w", handle.Name, ErrPassphraseRequired)
	}
	return raw, nil
}

// IsSealed сообщает, является ли content конвертом этого пакета
func IsSealed(content []byte) bool {
	var env envelope
	return json.Unmarshal(content, &env) == nil && env.Format == Format
}
