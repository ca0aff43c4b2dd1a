package staging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileNotFound    = errors.New("file not found")
	ErrTooLarge        = errors.New("file too large")
)

// sniffLen: сколько байт нужно mimetype для распознавания.
const sniffLen = 3072

// svg может содержать скрипты, такие файлы не принимаем
const svgMIME = "image/svg+xml"

var allowedExact = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type File struct {
	ID          string    `json:"id"`
	Owner       string    `json:"-"`
	ProjectID   string    `json:"projectId,omitempty"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	SizeLabel   string    `json:"sizeLabel"`
	MIME        string    `json:"type"`
	HasPreview  bool      `json:"hasPreview"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"createdAt"`
	CompletedAt time.Time `json:"-"`
}

func (f File) Done() bool {
	return f.Progress >= 100
}

func (f File) IsImage() bool {
	return strings.HasPrefix(f.MIME, "image/")
}

func (f File) IsVideo() bool {
	return strings.HasPrefix(f.MIME, "video/")
}

type Options struct {
	Tick       time.Duration // интервал шага прогресса
	Step       int           // прирост за шаг, %
	MaxSize    int64
	MaxPreview int64
	// OnComplete вызывается один раз, когда прогресс дошёл до 100.
	OnComplete func(File)
}

func DefaultOptions() Options {
	return Options{
		Tick:       200 * time.Millisecond,
		Step:       10,
		MaxSize:    64 << 20,
		MaxPreview: 10 << 20,
	}
}

type entry struct {
	file    File
	seq     uint64
	preview []byte
	cancel  context.CancelFunc
}

type Stager struct {
	opts Options
	now  func() time.Time

	mu    sync.Mutex
	files map[string]*entry
	seq   uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(opts Options) *Stager {
	def := DefaultOptions()
	if opts.Tick <= 0 {
		opts.Tick = def.Tick
	}
	if opts.Step <= 0 {
		opts.Step = def.Step
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = def.MaxSize
	}
	// 0 означает значение по умолчанию, отрицательное отключает превью
	if opts.MaxPreview == 0 {
		opts.MaxPreview = def.MaxPreview
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Stager{
		opts:   opts,
		now:    time.Now,
		files:  map[string]*entry{},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Stage читает файл, определяет тип по содержимому и запускает прогресс.
func (s *Stager) Stage(owner, projectID, name string, r io.Reader) (File, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return File{}, fmt.Errorf("stage %s: %w", name, err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !allowed(mt) {
		return File{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}
	mimeType := strings.TrimSpace(strings.SplitN(mt.String(), ";", 2)[0])

	var (
		size    int64
		preview []byte
	)
	rest := io.LimitReader(r, s.opts.MaxSize-int64(n)+1)
	if strings.HasPrefix(mimeType, "image/") && s.opts.MaxPreview > 0 {
		var buf bytes.Buffer
		buf.Write(head)
		if _, err := io.Copy(&buf, rest); err != nil {
			return File{}, fmt.Errorf("stage %s: %w", name, err)
		}
		size = int64(buf.Len())
		if size <= s.opts.MaxPreview {
			preview = buf.Bytes()
		}
	} else {
		copied, err := io.Copy(io.Discard, rest)
		if err != nil {
			return File{}, fmt.Errorf("stage %s: %w", name, err)
		}
		size = int64(n) + copied
	}
	if size > s.opts.MaxSize {
		return File{}, fmt.Errorf("%w: %s", ErrTooLarge, name)
	}

	ctx, cancel := context.WithCancel(s.ctx)
	f := File{
		ID:         uuid.NewString(),
		Owner:      owner,
		ProjectID:  projectID,
		Name:       name,
		Size:       size,
		SizeLabel:  FormatSize(size),
		MIME:       mimeType,
		HasPreview: preview != nil,
		CreatedAt:  s.now(),
	}

	s.mu.Lock()
	s.seq++
	s.files[f.ID] = &entry{file: f, seq: s.seq, preview: preview, cancel: cancel}
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx, f.ID)

	return f, nil
}

func (s *Stager) run(ctx context.Context, id string) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.opts.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f, done := s.advance(id)
			if !done {
				continue
			}
			if f != nil && s.opts.OnComplete != nil {
				s.opts.OnComplete(*f)
			}
			return
		}
	}
}

// advance делает один шаг; при done=true тикать дальше не нужно.
func (s *Stager) advance(id string) (*File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.files[id]
	if !ok {
		return nil, true
	}
	e.file.Progress = min(e.file.Progress+s.opts.Step, 100)
	if e.file.Progress < 100 {
		return nil, false
	}
	e.file.CompletedAt = s.now()
	e.cancel()
	f := e.file
	return &f, true
}

// Remove останавливает прогресс и освобождает превью.
func (s *Stager) Remove(id string) error {
	s.mu.Lock()
	e, ok := s.files[id]
	if ok {
		delete(s.files, id)
		e.preview = nil
	}
	s.mu.Unlock()

	if !ok {
		return ErrFileNotFound
	}
	e.cancel()
	return nil
}

func (s *Stager) Get(id string) (File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.files[id]
	if !ok {
		return File{}, ErrFileNotFound
	}
	return e.file, nil
}

// Preview возвращает копию байтов превью и MIME-тип.
func (s *Stager) Preview(id string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.files[id]
	if !ok || e.preview == nil {
		return nil, "", ErrFileNotFound
	}
	return bytes.Clone(e.preview), e.file.MIME, nil
}

// List: файлы владельца в порядке добавления; пустой owner возвращает все файлы.
func (s *Stager) List(owner string) []File {
	s.mu.Lock()
	entries := make([]*entry, 0, len(s.files))
	for _, e := range s.files {
		if owner == "" || e.file.Owner == owner {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]File, len(entries))
	for i, e := range entries {
		out[i] = e.file
	}
	s.mu.Unlock()
	return out
}

// Sweep удаляет завершённые записи старше maxAge и возвращает их число.
func (s *Stager) Sweep(maxAge time.Duration) int {
	cutoff := s.now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.files {
		if !e.file.Done() || e.file.CompletedAt.After(cutoff) {
			continue
		}
		e.preview = nil
		e.cancel()
		delete(s.files, id)
		removed++
	}
	return removed
}

// Close останавливает все тикеры и ждёт их завершения.
func (s *Stager) Close() {
	s.cancel()
	s.wg.Wait()
}

func allowed(mt *mimetype.MIME) bool {
	if mt.Is(svgMIME) {
		return false
	}
	for m := mt; m != nil; m = m.Parent() {
		name := m.String()
		if strings.HasPrefix(name, "image/") || strings.HasPrefix(name, "video/") {
			return true
		}
		for _, a := range allowedExact {
			if m.Is(a) {
				return true
			}
		}
	}
	return false
}

// FormatSize: 0 -> "0 Bytes", 1536 -> "1.5 KB".
func FormatSize(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(size)) / math.Log(1024)))
	i = min(i, len(units)-1)
	v := float64(size) / math.Pow(1024, float64(i))
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + " " + units[i]
}
