package staging

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngData = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)
	svgData = `<svg xmlns="http://www.w3.org/2000/svg"><script>fetch('/employees/1/delete',{method:'POST'})</script></svg>`
	pdfData = []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")
)

func newStager(t *testing.T, opts Options) *Stager {
	t.Helper()
	s := New(opts)
	t.Cleanup(s.Close)
	return s
}

func TestStageRunsProgressToCompletion(t *testing.T) {
	var (
		mu        sync.Mutex
		completed []File
	)
	s := newStager(t, Options{
		Tick: time.Millisecond,
		OnComplete: func(f File) {
			mu.Lock()
			completed = append(completed, f)
			mu.Unlock()
		},
	})

	f, err := s.Stage("2", "p1", "IMG_0001.png", bytes.NewReader(pngData))
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.MIME)
	assert.True(t, f.HasPreview)
	assert.Equal(t, int64(len(pngData)), f.Size)
	assert.Equal(t, 0, f.Progress)

	require.Eventually(t, func() bool {
		got, err := s.Get(f.ID)
		return err == nil && got.Done()
	}, time.Second, time.Millisecond)

	got, err := s.Get(f.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(completed) == 1
	}, time.Second, time.Millisecond)

	mu.Lock()
	assert.Equal(t, "p1", completed[0].ProjectID)
	mu.Unlock()
}

func TestAdvanceStepsByTen(t *testing.T) {
	s := newStager(t, Options{Tick: time.Hour})

	f, err := s.Stage("2", "", "scan.pdf", bytes.NewReader(pdfData))
	require.NoError(t, err)

	for i := 1; i <= 9; i++ {
		_, done := s.advance(f.ID)
		require.False(t, done)
		got, _ := s.Get(f.ID)
		assert.Equal(t, i*10, got.Progress)
	}
	done, ok := s.advance(f.ID)
	require.True(t, ok)
	assert.Equal(t, 100, done.Progress)
	assert.False(t, done.CompletedAt.IsZero())
}

func TestRemoveReleasesPreview(t *testing.T) {
	s := newStager(t, Options{Tick: time.Hour})

	f, err := s.Stage("2", "", "photo.png", bytes.NewReader(pngData))
	require.NoError(t, err)

	data, mimeType, err := s.Preview(f.ID)
	require.NoError(t, err)
	assert.Equal(t, pngData, data)
	assert.Equal(t, "image/png", mimeType)

	require.NoError(t, s.Remove(f.ID))

	_, _, err = s.Preview(f.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
	_, err = s.Get(f.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.ErrorIs(t, s.Remove(f.ID), ErrFileNotFound)
}

func TestNonImageHasNoPreview(t *testing.T) {
	s := newStager(t, Options{Tick: time.Hour})

	f, err := s.Stage("2", "", "contract.pdf", bytes.NewReader(pdfData))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", f.MIME)
	assert.False(t, f.HasPreview)

	_, _, err = s.Preview(f.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestPreviewSizeCap(t *testing.T) {
	s := newStager(t, Options{Tick: time.Hour, MaxPreview: 16})

	f, err := s.Stage("2", "", "big.png", bytes.NewReader(pngData))
	require.NoError(t, err)
	assert.False(t, f.HasPreview)
}

func TestZeroMaxPreviewUsesDefault(t *testing.T) {
	s := newStager(t, Options{Tick: time.Hour})
	assert.Equal(t, DefaultOptions().MaxPreview, s.opts.MaxPreview)

	f, err := s.Stage("2", "", "photo.png", bytes.NewReader(pngData))
	require.NoError(t, err)
	assert.True(t, f.HasPreview)

	off := newStager(t, Options{Tick: time.Hour, MaxPreview: -1})
	f, err = off.Stage("2", "", "photo.png", bytes.NewReader(pngData))
	require.NoError(t, err)
	assert.False(t, f.HasPreview)
}

func TestRejectsSVG(t *testing.T) {
	s := newStager(t, Options{Tick: time.Hour})

	_, err := s.Stage("2", "", "cute.png", strings.NewReader(svgData))
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Empty(t, s.List(""))
}

func TestRejectsUnsupportedAndOversized(t *testing.T) {
	s := newStager(t, Options{Tick: time.Hour, MaxSize: 32})

	_, err := s.Stage("2", "", "notes.txt", strings.NewReader("просто текст"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = s.Stage("2", "", "photo.png", bytes.NewReader(pngData))
	assert.ErrorIs(t, err, ErrTooLarge)

	assert.Empty(t, s.List(""))
}

func TestListByOwnerKeepsOrder(t *testing.T) {
	s := newStager(t, Options{Tick: time.Hour})

	a, err := s.Stage("2", "", "a.png", bytes.NewReader(pngData))
	require.NoError(t, err)
	_, err = s.Stage("3", "", "b.pdf", bytes.NewReader(pdfData))
	require.NoError(t, err)
	c, err := s.Stage("2", "", "c.pdf", bytes.NewReader(pdfData))
	require.NoError(t, err)

	mine := s.List("2")
	require.Len(t, mine, 2)
	assert.Equal(t, a.ID, mine[0].ID)
	assert.Equal(t, c.ID, mine[1].ID)
	assert.Len(t, s.List(""), 3)
}

func TestSweepRemovesOnlyOldCompleted(t *testing.T) {
	s := newStager(t, Options{Tick: time.Hour})
	clock := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	done, err := s.Stage("2", "", "done.pdf", bytes.NewReader(pdfData))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		s.advance(done.ID)
	}
	pending, err := s.Stage("2", "", "pending.pdf", bytes.NewReader(pdfData))
	require.NoError(t, err)

	assert.Zero(t, s.Sweep(time.Minute))

	clock = clock.Add(2 * time.Minute)
	assert.Equal(t, 1, s.Sweep(time.Minute))

	_, err = s.Get(done.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
	_, err = s.Get(pending.ID)
	assert.NoError(t, err)
}

func TestCloseStopsTickers(t *testing.T) {
	s := New(Options{Tick: time.Hour})
	_, err := s.Stage("2", "", "a.pdf", bytes.NewReader(pdfData))
	require.NoError(t, err)

	finished := make(chan struct{})
	go func() {
		s.Close()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Close did not return")
	}
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 Bytes", FormatSize(0))
	assert.Equal(t, "500 Bytes", FormatSize(500))
	assert.Equal(t, "1 KB", FormatSize(1024))
	assert.Equal(t, "1.5 KB", FormatSize(1536))
	assert.Equal(t, "2.5 MB", FormatSize(5*1024*1024/2))
	assert.Equal(t, "2048 GB", FormatSize(2<<40))
}
