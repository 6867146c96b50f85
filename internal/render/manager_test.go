package render_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartscout/internal/errors"
	"chartscout/internal/render"
	"chartscout/pkg/contracts/domain"
)

type fakeInstance struct {
	mu         sync.Mutex
	destroyed  int
	destroyErr error
	spec       *domain.ChartSpec
}

func (f *fakeInstance) UpdateOptions(spec *domain.ChartSpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spec = spec
	return nil
}

func (f *fakeInstance) Destroy() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed++
	return f.destroyErr
}

func (f *fakeInstance) destroyCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destroyed
}

type fakeEngine struct {
	mu        sync.Mutex
	created   []*fakeInstance
	createErr error
	nextErr   error
}

func (e *fakeEngine) Create(_ context.Context, surfaceID string, spec *domain.ChartSpec) (render.Instance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.createErr != nil {
		return nil, e.createErr
	}
	inst := &fakeInstance{spec: spec, destroyErr: e.nextErr}
	e.nextErr = nil
	e.created = append(e.created, inst)
	return inst, nil
}

func lineSpec() *domain.ChartSpec {
	return &domain.ChartSpec{
		Kind:   domain.KindLine,
		Series: []domain.Series{{Name: "S", Points: []domain.Point{domain.Scalar(1)}}},
	}
}

func TestBindCreatesSingleBinding(t *testing.T) {
	engine := &fakeEngine{}
	m := render.NewManager(engine, slog.Default())

	token := m.NextToken("surface-1")
	b, err := m.Bind(context.Background(), "surface-1", token, lineSpec())
	require.NoError(t, err)
	assert.Equal(t, "surface-1", b.SurfaceID)
	assert.Equal(t, 1, m.Count())
}

func TestRebindDestroysOldInstanceExactlyOnce(t *testing.T) {
	engine := &fakeEngine{}
	m := render.NewManager(engine, slog.Default())

	_, err := m.Bind(context.Background(), "s", m.NextToken("s"), lineSpec())
	require.NoError(t, err)
	_, err = m.Bind(context.Background(), "s", m.NextToken("s"), lineSpec())
	require.NoError(t, err)
	_, err = m.Bind(context.Background(), "s", m.NextToken("s"), lineSpec())
	require.NoError(t, err)

	require.Len(t, engine.created, 3)
	assert.Equal(t, 1, engine.created[0].destroyCount())
	assert.Equal(t, 1, engine.created[1].destroyCount())
	assert.Equal(t, 0, engine.created[2].destroyCount(), "live instance must not be destroyed")
	assert.Equal(t, 1, m.Count(), "at most one binding per surface")
}

func TestStaleTokenRefused(t *testing.T) {
	engine := &fakeEngine{}
	m := render.NewManager(engine, slog.Default())

	older := m.NextToken("s")
	newer := m.NextToken("s")

	// The newer request's fetch resolves first and binds.
	_, err := m.Bind(context.Background(), "s", newer, lineSpec())
	require.NoError(t, err)

	// The older request resolves late; it must be discarded, not layered.
	_, err = m.Bind(context.Background(), "s", older, lineSpec())
	require.Error(t, err)
	assert.True(t, errors.IsResourceConflict(err))

	require.Len(t, engine.created, 1)
	assert.Equal(t, 0, engine.created[0].destroyCount(), "newer binding must survive")

	b, ok := m.Binding("s")
	require.True(t, ok)
	assert.Equal(t, newer, b.Token)
}

func TestDestroyFailureDoesNotWedgeSurface(t *testing.T) {
	engine := &fakeEngine{nextErr: fmt.Errorf("engine exploded during teardown")}
	m := render.NewManager(engine, slog.Default())

	_, err := m.Bind(context.Background(), "s", m.NextToken("s"), lineSpec())
	require.NoError(t, err)

	// The old instance's Destroy fails, but the rebind must still work.
	_, err = m.Bind(context.Background(), "s", m.NextToken("s"), lineSpec())
	require.NoError(t, err)
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, 1, engine.created[0].destroyCount())
}

func TestCreateFailureLeavesTableClean(t *testing.T) {
	engine := &fakeEngine{createErr: fmt.Errorf("container missing")}
	m := render.NewManager(engine, slog.Default())

	_, err := m.Bind(context.Background(), "s", m.NextToken("s"), lineSpec())
	require.Error(t, err)
	assert.True(t, errors.IsRender(err))
	assert.Equal(t, 0, m.Count())

	// Surface recovers once the engine does.
	engine.createErr = nil
	_, err = m.Bind(context.Background(), "s", m.NextToken("s"), lineSpec())
	require.NoError(t, err)
}

func TestTeardownAndShutdown(t *testing.T) {
	engine := &fakeEngine{}
	m := render.NewManager(engine, slog.Default())

	_, err := m.Bind(context.Background(), "a", m.NextToken("a"), lineSpec())
	require.NoError(t, err)
	_, err = m.Bind(context.Background(), "b", m.NextToken("b"), lineSpec())
	require.NoError(t, err)

	assert.True(t, m.Teardown(context.Background(), "a"))
	assert.False(t, m.Teardown(context.Background(), "a"), "second teardown is a no-op")
	assert.Equal(t, 1, m.Count())

	m.Shutdown(context.Background())
	assert.Equal(t, 0, m.Count())
	for _, inst := range engine.created {
		assert.Equal(t, 1, inst.destroyCount(), "every handle destroyed exactly once")
	}
}
