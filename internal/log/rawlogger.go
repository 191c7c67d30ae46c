package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// RawLogger records the raw C# input and TypeScript output of each
// conversion, for reproducing scanner problems.
type RawLogger interface {
	Input(source string, data []byte)
	Output(source string, data []byte)
}

type rawLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewRaw creates a new RawLogger. If w is nil, the logger discards everything.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w, now: time.Now}
}

func (r *rawLogger) Input(source string, data []byte)  { r.log("<<", source, data) }
func (r *rawLogger) Output(source string, data []byte) { r.log(">>", source, data) }

// log writes a header line followed by the blob, each line indented by a
// tab so blobs stay visually separated.
func (r *rawLogger) log(dir, source string, data []byte) {
	if r.w == nil || len(data) == 0 {
		return
	}
	if source == "" {
		source = "<stdin>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s: %d bytes\n", r.now().Format("2006/01/02 15:04:05"), dir, source, len(data))
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		b.WriteString("\t")
		b.WriteString(line)
		b.WriteString("\n")
	}

	r.mu.Lock()
	_, _ = io.WriteString(r.w, b.String())
	r.mu.Unlock()
}
