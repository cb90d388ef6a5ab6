package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/iafilius/InteractiveDashboard/src/metrics"
	"github.com/iafilius/InteractiveDashboard/src/types"
)

func TestParseCSV(t *testing.T) {
	in := "id,x,y\n1,100,200\n2, 500 ,50\n3,abc,10\n4,10,\n5.0,1,2\n"
	res, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, types.Dataset{
		{ID: 1, X: 100, Y: 200},
		{ID: 2, X: 500, Y: 50},
		{ID: 5, X: 1, Y: 2},
	}, res.Records)
	require.Len(t, res.Skipped, 2)
	assert.Equal(t, 4, res.Skipped[0].Line)
	assert.Contains(t, res.Skipped[0].Reason, "x:")
	assert.Equal(t, 5, res.Skipped[1].Line)
	assert.Contains(t, res.Skipped[1].Reason, "y:")
}

func TestParseCSV_HeaderOrderAndCase(t *testing.T) {
	res, err := ParseCSV(strings.NewReader("Y,ID,X\n7,3,9\n"))
	require.NoError(t, err)
	assert.Equal(t, types.Dataset{{ID: 3, X: 9, Y: 7}}, res.Records)
}

func TestParseCSV_ContractViolations(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"missing id", "x,y\n1,2\n", ErrMissingID},
		{"missing y", "id,x\n1,2\n", ErrMissingColumn},
		{"duplicate id", "id,x,y\n1,1,1\n1,2,2\n", ErrDuplicateID},
		{"empty", "", ErrEmptyFile},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tc.in))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseCSV_HeaderOnlyIsEmptyDataset(t *testing.T) {
	res, err := ParseCSV(strings.NewReader("id,x,y\n"))
	require.NoError(t, err)
	assert.Empty(t, res.Records)
}

func TestLoadFile_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"id", "x", "y"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1, 100, 200}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{2, 500, 50}))
	p := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(p))
	require.NoError(t, f.Close())

	res, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, types.Dataset{{ID: 1, X: 100, Y: 200}, {ID: 2, X: 500, Y: 50}}, res.Records)
}

func TestLoadFile_Unsupported(t *testing.T) {
	_, err := LoadFile("data.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type snapLog struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (l *snapLog) add(s Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snaps = append(l.snaps, s)
}

func (l *snapLog) get() []Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Snapshot(nil), l.snaps...)
}

func TestSource_LoadingThenReady(t *testing.T) {
	release := make(chan struct{})
	c := metrics.NewCollector("test")
	src := NewSource("data.csv",
		WithLogger(zap.NewNop().Sugar()),
		WithMetrics(c),
		WithLoader(func(string) (Result, error) {
			<-release
			return Result{Records: types.Dataset{{ID: 1}}}, nil
		}))
	var log snapLog
	src.Subscribe(log.add)
	src.Load(context.Background())

	got := log.get()
	require.Len(t, got, 2)
	assert.Equal(t, StatusLoading, got[0].Status)
	assert.Equal(t, StatusLoading, got[1].Status)

	close(release)
	require.Eventually(t, func() bool { return src.Current().Status == StatusReady }, time.Second, 5*time.Millisecond)
	final := log.get()
	assert.Equal(t, types.Dataset{{ID: 1}}, final[len(final)-1].Data)
}

func TestSource_ErrorSnapshot(t *testing.T) {
	boom := errors.New("boom")
	src := NewSource("data.csv",
		WithLogger(zap.NewNop().Sugar()),
		WithLoader(func(string) (Result, error) { return Result{}, boom }))
	src.Load(context.Background())
	require.Eventually(t, func() bool { return src.Current().Status == StatusError }, time.Second, 5*time.Millisecond)
	snap := src.Current()
	assert.ErrorIs(t, snap.Err, boom)
	assert.Nil(t, snap.Data)
}

func TestSource_NewerLoadWins(t *testing.T) {
	slow := make(chan struct{})
	src := NewSource("a.csv",
		WithLogger(zap.NewNop().Sugar()),
		WithLoader(func(p string) (Result, error) {
			if p == "a.csv" {
				<-slow
				return Result{Records: types.Dataset{{ID: 1}}}, nil
			}
			return Result{Records: types.Dataset{{ID: 2}}}, nil
		}))
	src.Load(context.Background())
	src.SetPath(context.Background(), "b.csv")
	require.Eventually(t, func() bool { return src.Current().Status == StatusReady }, time.Second, 5*time.Millisecond)
	close(slow)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, types.Dataset{{ID: 2}}, src.Current().Data)
	assert.Equal(t, "b.csv", src.Current().Path)
}

func TestSource_CancelledContextPublishesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := NewSource("a.csv", WithDelay(time.Hour), WithLogger(zap.NewNop().Sugar()))
	src.Load(ctx)
	cancel()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, StatusLoading, src.Current().Status)
}

func TestWatcher_DebouncedReload(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(p, []byte("id,x,y\n"), 0o644))

	var mu sync.Mutex
	fired := 0
	w, err := Watch(p, 50*time.Millisecond, func() {
		mu.Lock()
		fired++
		mu.Unlock()
	}, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(p, []byte("id,x,y\n1,2,3\n"), 0o644))
	}
	// unrelated files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fired >= 1
	}, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, 1, fired)
	mu.Unlock()

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
