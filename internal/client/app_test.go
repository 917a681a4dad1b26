package client

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MKhiriev/merlin-client/internal/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder собирает порядок вызовов жизненного цикла.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type fakeConnection struct {
	rec      *recorder
	startErr error
}

func (c *fakeConnection) Start() error {
	c.rec.add("connection.start")
	return c.startErr
}

func (c *fakeConnection) Close() { c.rec.add("connection.close") }

type fakeUI struct {
	rec *recorder
	// quit ends MainLoop without waiting for ctx
	quit bool
	err  error
}

func (u *fakeUI) MainLoop(ctx context.Context) error {
	u.rec.add("ui.start")
	if !u.quit {
		<-ctx.Done()
	}
	u.rec.add("ui.stop")
	return u.err
}

type fakeBridge struct {
	rec *recorder
	err error
}

func (b *fakeBridge) RunServer(ctx context.Context) error {
	if b.err != nil {
		return b.err
	}
	<-ctx.Done()
	b.rec.add("bridge.stop")
	return nil
}

type closer struct {
	rec  *recorder
	name string
	err  error
}

func (c closer) Close() error {
	c.rec.add(c.name + ".close")
	return c.err
}

type stopper struct {
	rec  *recorder
	name string
}

func (s stopper) Stop()  { s.rec.add(s.name + ".stop") }
func (s stopper) Close() { s.rec.add(s.name + ".close") }

func TestNewApp_RequiresConnectionAndUI(t *testing.T) {
	rec := &recorder{}

	_, err := NewApp(Components{UI: &fakeUI{rec: rec}}, logger.Nop())
	assert.Error(t, err)

	_, err = NewApp(Components{Connection: &fakeConnection{rec: rec}}, logger.Nop())
	assert.Error(t, err)
}

func TestApp_Run_QuitStopsEverything(t *testing.T) {
	rec := &recorder{}
	app, err := NewApp(Components{
		Connection: &fakeConnection{rec: rec},
		UI:         &fakeUI{rec: rec, quit: true},
		Bridge:     &fakeBridge{rec: rec},
		Wallet:     stopper{rec: rec, name: "wallet"},
		Workers:    stopper{rec: rec, name: "workers"},
		Storage:    closer{rec: rec, name: "storage"},
	}, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, app.Run(context.Background()))

	calls := rec.list()
	assert.Equal(t, "connection.start", calls[0])
	assert.Contains(t, calls, "bridge.stop")
	assert.Equal(t, []string{"connection.close", "wallet.close", "workers.stop", "storage.close"}, calls[len(calls)-4:])
}

func TestApp_Run_ContextCancel(t *testing.T) {
	rec := &recorder{}
	app, err := NewApp(Components{
		Connection: &fakeConnection{rec: rec},
		UI:         &fakeUI{rec: rec},
	}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, app.Run(ctx))
	assert.Contains(t, rec.list(), "ui.stop")
}

func TestApp_Run_BridgeFailureEndsUI(t *testing.T) {
	rec := &recorder{}
	bindErr := errors.New("address already in use")
	app, err := NewApp(Components{
		Connection: &fakeConnection{rec: rec},
		UI:         &fakeUI{rec: rec},
		Bridge:     &fakeBridge{rec: rec, err: bindErr},
	}, logger.Nop())
	require.NoError(t, err)

	err = app.Run(context.Background())
	require.ErrorIs(t, err, bindErr)
	assert.Contains(t, rec.list(), "ui.stop")
	assert.Contains(t, rec.list(), "connection.close")
}

func TestApp_Run_StartFailure(t *testing.T) {
	rec := &recorder{}
	startErr := errors.New("closed")
	app, err := NewApp(Components{
		Connection: &fakeConnection{rec: rec, startErr: startErr},
		UI:         &fakeUI{rec: rec, quit: true},
	}, logger.Nop())
	require.NoError(t, err)

	require.ErrorIs(t, app.Run(context.Background()), startErr)
	assert.NotContains(t, rec.list(), "ui.start")
}

func TestApp_Run_JoinsErrors(t *testing.T) {
	rec := &recorder{}
	uiErr := errors.New("tty lost")
	closeErr := errors.New("database is locked")
	app, err := NewApp(Components{
		Connection: &fakeConnection{rec: rec},
		UI:         &fakeUI{rec: rec, quit: true, err: uiErr},
		Storage:    closer{rec: rec, name: "storage", err: closeErr},
	}, logger.Nop())
	require.NoError(t, err)

	err = app.Run(context.Background())
	assert.ErrorIs(t, err, uiErr)
	assert.ErrorIs(t, err, closeErr)
}
