package splitview

import (
	"bytes"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type testHost struct {
	mu   sync.Mutex
	size Size
}

func newTestHost(width, height int) *testHost {
	return &testHost{size: Size{Width: width, Height: height}}
}

func (h *testHost) Size() Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

func (h *testHost) Set(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.size = Size{Width: width, Height: height}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fixture struct {
	c     *Container
	host  *testHost
	sched *ManualScheduler
	views []*View
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newFixture mounts a row container of the given width with one view per
// option set.
func newFixture(t *testing.T, width int, views ...[]ViewOption) *fixture {
	t.Helper()

	f := &fixture{
		host:  newTestHost(width, 24),
		sched: NewManualScheduler(),
	}
	f.c = New(WithScheduler(f.sched), WithLogger(quietLogger()))
	require.NoError(t, f.c.Mount(f.host))

	for _, opts := range views {
		v, err := f.c.CreateView(opts...)
		require.NoError(t, err)
		_, err = f.c.AppendView(v)
		require.NoError(t, err)
		f.views = append(f.views, v)
	}
	t.Cleanup(f.c.Destroy)
	return f
}

func defaults(n int) [][]ViewOption {
	return make([][]ViewOption, n)
}

func (f *fixture) sizes() []int {
	out := make([]int, 0, len(f.views))
	for _, v := range f.c.Views() {
		out = append(out, v.Size())
	}
	return out
}

func (f *fixture) total() int {
	sum := 0
	for _, s := range f.sizes() {
		sum += s
	}
	return sum
}

func (f *fixture) requireBounds(t *testing.T) {
	t.Helper()
	for _, v := range f.c.Views() {
		require.GreaterOrEqual(t, v.Size(), v.Min(), "view %s below min", v)
		require.LessOrEqual(t, v.Size(), v.Max(), "view %s above max", v)
	}
}
