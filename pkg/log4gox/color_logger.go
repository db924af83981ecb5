// Package log4gox adds an ANSI-colored console writer for log4go.
package log4gox

import (
	"fmt"
	"io"
	"os"

	l4g "github.com/alecthomas/log4go"
)

var stdout io.Writer = os.Stdout

// ANSI foreground color per log4go level.
var (
	levelColor   = [...]int{30, 30, 32, 37, 37, 33, 31, 34}
	levelStrings = [...]string{"FNST", "FINE", "DEBG", "TRAC", "INFO", "WARN", "EROR", "CRIT"}
)

const colorSymbol = 0x1B

// ConsoleLogWriter prints colored records to standard output.
type ConsoleLogWriter chan *l4g.LogRecord

// NewColorConsoleLogWriter creates a running writer.
func NewColorConsoleLogWriter() ConsoleLogWriter {
	records := make(ConsoleLogWriter, l4g.LogBufferLength)
	go records.run(stdout)
	return records
}

func (w ConsoleLogWriter) run(out io.Writer) {
	var timestr string
	var timestrAt int64

	for rec := range w {
		if at := rec.Created.UnixNano() / 1e9; at != timestrAt {
			timestr, timestrAt = rec.Created.Format("01/02/06 15:04:05"), at
		}
		fmt.Fprintf(out, "%c[%dm[%s] [%s] (%s) %s\n%c[0m",
			colorSymbol,
			levelColor[rec.Level],
			timestr,
			levelStrings[rec.Level],
			rec.Source,
			rec.Message,
			colorSymbol)
	}
}

// LogWrite queues a record; blocks when the buffer is full.
func (w ConsoleLogWriter) LogWrite(rec *l4g.LogRecord) {
	w <- rec
}

// Close stops the writer. Logging afterwards is undefined.
func (w ConsoleLogWriter) Close() {
	close(w)
}
