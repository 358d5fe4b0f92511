package report2pdf

import (
	"fmt"
	"os"

	"github.com/jfeld/go-report2pdf/internal/fileutil"
)

// WriteResult describes a successfully written report.
type WriteResult struct {
	Path  string // destination the artifact was written to
	Bytes int    // bytes written, verified against the artifact length
	Pages int    // estimated page count of the document
}

// WriteArtifact persists the artifact atomically: the bytes land in a
// uniquely named temp file in the destination directory and are renamed
// into place, so a concurrent reader never observes a partial file. The
// write is verified afterwards: the file must exist with exactly the
// artifact's byte length. Failures surface as ErrDestinationUnwritable and
// are never retried here.
func WriteArtifact(artifact *RenderedArtifact, destPath string) (*WriteResult, error) {
	if artifact == nil || len(artifact.PDF) == 0 {
		return nil, fmt.Errorf("%w: nothing to write", ErrRenderFailed)
	}

	if err := fileutil.AtomicWrite(destPath, artifact.PDF, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDestinationUnwritable, destPath, err)
	}

	info, err := os.Stat(destPath)
	if err != nil {
		return nil, fmt.Errorf("%w: verifying %s: %v", ErrDestinationUnwritable, destPath, err)
	}
	if info.Size() != int64(len(artifact.PDF)) {
		return nil, fmt.Errorf("%w: %s: wrote %d bytes, found %d", ErrDestinationUnwritable, destPath, len(artifact.PDF), info.Size())
	}

	return &WriteResult{
		Path:  destPath,
		Bytes: len(artifact.PDF),
		Pages: artifact.Pages,
	}, nil
}
