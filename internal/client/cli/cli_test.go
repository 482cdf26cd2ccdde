package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatsync/internal/client/data"
	"github.com/iudanet/chatsync/internal/client/iocli"
	"github.com/iudanet/chatsync/internal/client/storage/boltdb"
	"github.com/iudanet/chatsync/internal/client/sync"
	"github.com/iudanet/chatsync/internal/crdt"
	"github.com/iudanet/chatsync/internal/models"
)

// fakeIO выдает заготовленные ответы и собирает весь вывод
type fakeIO struct {
	*iocli.IOMock
	out    *strings.Builder
	inputs []string
}

func newFakeIO(inputs ...string) *fakeIO {
	f := &fakeIO{out: &strings.Builder{}, inputs: inputs}
	next := func(string) (string, error) {
		if len(f.inputs) == 0 {
			return "", io.EOF
		}
		v := f.inputs[0]
		f.inputs = f.inputs[1:]
		return v, nil
	}
	f.IOMock = &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			fmt.Fprintln(f.out, a...)
		},
		PrintfFunc: func(format string, a ...any) {
			fmt.Fprintf(f.out, format, a...)
		},
		WriteFunc: func(p []byte) (int, error) {
			return f.out.Write(p)
		},
		ReadInputFunc:    next,
		ReadPasswordFunc: next,
	}
	return f
}

func (f *fakeIO) String() string {
	return f.out.String()
}

type statusFunc func() models.SyncStatus

func (f statusFunc) Get() models.SyncStatus { return f() }

// serverAccount аккаунт сервера документов: пароль и сессия
type serverAccount struct {
	*AccountMock
	*PasswordAccountMock
}

type driveAccount struct {
	*AccountMock
	*CodeAccountMock
}

type staticAccount struct {
	*AccountMock
	*StaticAccountMock
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newDataService настоящий сервис данных поверх временной bbolt базы
func newDataService(t *testing.T) data.Service {
	t.Helper()
	db, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return data.NewService(db.Chats(), db.Presets(), crdt.NewClock(), nil, discardLogger)
}

type testCli struct {
	*Cli
	io   *fakeIO
	sync *sync.ServiceMock
}

func newTestCli(t *testing.T, account Account, inputs ...string) *testCli {
	t.Helper()
	fio := newFakeIO(inputs...)
	syncMock := &sync.ServiceMock{}
	st := statusFunc(func() models.SyncStatus { return models.SyncStatus{} })
	return &testCli{
		Cli:  New(fio, newDataService(t), syncMock, st, account, "server"),
		io:   fio,
		sync: syncMock,
	}
}
