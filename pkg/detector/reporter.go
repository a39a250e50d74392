package detector

import "github.com/charmbracelet/log"

// Metadata describes where a stage failure happened
type Metadata struct {
	BaseDir string
	Root    string
	Stage   string
}

// ErrorReporter receives stage failures. Report must not block or panic.
type ErrorReporter interface {
	Report(err error, meta Metadata)
}

// ReporterFunc adapts a function to ErrorReporter
type ReporterFunc func(err error, meta Metadata)

func (f ReporterFunc) Report(err error, meta Metadata) {
	f(err, meta)
}

// LogReporter writes stage failures to a logger at warn level
type LogReporter struct {
	logger *log.Logger
}

func NewLogReporter(logger *log.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Report(err error, meta Metadata) {
	r.logger.Warn("detection stage failed",
		"stage", meta.Stage,
		"baseDir", meta.BaseDir,
		"root", meta.Root,
		"err", err,
	)
}
