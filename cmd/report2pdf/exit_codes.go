package main

import (
	"errors"

	report2pdf "github.com/jfeld/go-report2pdf"
)

// Process exit codes, one per failure stage.
const (
	exitSuccess     = 0
	exitBindError   = 1 // data or template binding failure
	exitRenderError = 2 // rendering engine failure
	exitWriteError  = 3 // output write failure
)

// exitCodeFor maps a pipeline error to the process exit code via the failed
// stage. Errors without stage attribution (flag parsing, config) count as
// binding-stage failures: nothing reached the engine.
func exitCodeFor(err error) int {
	if err == nil {
		return exitSuccess
	}

	var stageErr *report2pdf.StageError
	if errors.As(err, &stageErr) {
		switch stageErr.Stage {
		case report2pdf.StageRendering:
			return exitRenderError
		case report2pdf.StageWriting:
			return exitWriteError
		}
	}
	return exitBindError
}
