package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ytget/tube/internal/extractor"
	"github.com/ytget/tube/internal/model"
)

type fakeExtractor struct {
	mu            sync.Mutex
	title         string
	metaErr       error
	downloadErr   error
	downloadExt   string // extension of the file written by Download; empty writes nothing
	metaCalls     int
	downloadCalls int
	lastOpts      extractor.Options
	block         chan struct{}
	progress      []extractor.Progress
}

func (f *fakeExtractor) Metadata(ctx context.Context, url string) (*extractor.Metadata, error) {
	f.mu.Lock()
	f.metaCalls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.metaErr != nil {
		return nil, f.metaErr
	}
	return &extractor.Metadata{Title: f.title}, nil
}

func (f *fakeExtractor) Download(_ context.Context, _ string, opts extractor.Options, onProgress func(extractor.Progress)) error {
	f.mu.Lock()
	f.downloadCalls++
	f.lastOpts = opts
	f.mu.Unlock()

	for _, p := range f.progress {
		onProgress(p)
	}
	if f.downloadErr != nil {
		return f.downloadErr
	}
	if f.downloadExt != "" {
		path := strings.ReplaceAll(opts.OutputTemplate, ".%(ext)s", f.downloadExt)
		path = strings.ReplaceAll(path, "%%", "%")
		if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

type fakeProber struct {
	available bool
	location  string
	localDir  string
	probes    int
}

func (p *fakeProber) Probe() bool {
	p.probes++
	return p.available
}
func (p *fakeProber) Location() string { return p.location }
func (p *fakeProber) LocalDir() string { return p.localDir }

type converterCall struct {
	op     string
	binary string
	input  string
	output string
}

// fakeConverter writes the output file on success; ops listed in fail return
// an error whose text is the op's stderr.
type fakeConverter struct {
	mu    sync.Mutex
	calls []converterCall
	fail  map[string]string
}

func (c *fakeConverter) record(op, binary, input, output string) error {
	c.mu.Lock()
	c.calls = append(c.calls, converterCall{op: op, binary: binary, input: input, output: output})
	c.mu.Unlock()

	if stderr, ok := c.fail[op]; ok {
		_ = os.WriteFile(output, []byte("partial"), 0o644)
		return errors.New(stderr)
	}
	return os.WriteFile(output, []byte("converted"), 0o644)
}

func (c *fakeConverter) TranscodeAudio(_ context.Context, binary, input, output string) error {
	return c.record("primary", binary, input, output)
}

func (c *fakeConverter) TranscodeAudioFallback(_ context.Context, binary, input, output string) error {
	return c.record("fallback", binary, input, output)
}

func (c *fakeConverter) ReencodeAudioTrack(_ context.Context, binary, input, output string) error {
	return c.record("reencode", binary, input, output)
}

func (c *fakeConverter) ops() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ops := make([]string, 0, len(c.calls))
	for _, call := range c.calls {
		ops = append(ops, call.op)
	}
	return ops
}

type recordingObserver struct {
	mu       sync.Mutex
	stages   []model.Stage
	progress []model.Progress
}

func (o *recordingObserver) OnStage(stage model.Stage) {
	o.mu.Lock()
	o.stages = append(o.stages, stage)
	o.mu.Unlock()
}

func (o *recordingObserver) OnProgress(p model.Progress) {
	o.mu.Lock()
	o.progress = append(o.progress, p)
	o.mu.Unlock()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func join(dir, name string) string {
	return filepath.Join(dir, name)
}
