// Package download implements resumable file transfers on top of the
// raw output stream: Content-Range negotiation, output file
// placement, and a background progress reporter fed from per-chunk
// completion callbacks.
package download

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/karthik-H/httpcat/internal/logging"
	"github.com/karthik-H/httpcat/internal/message"
	"github.com/karthik-H/httpcat/internal/stream"
)

const downloadChunkSize = 1024 * 8

// Download orchestrates one resumable file transfer. It mutates the
// outgoing headers before the request (PreRequest), fixes the output
// file and total size once the response arrives (Start), and is told
// about the outcome exactly once (Finish or Failed).
type Download struct {
	outputFile  *os.File
	resume      bool
	resumedFrom int64
	finished    bool

	Status      *Status
	reporter    *Reporter
	progressOut io.Writer
}

// New creates a download. outputFile may be nil, in which case the
// filename is derived from the response once it arrives. progressOut
// receives the banner, the live progress line, and the summary.
func New(outputFile *os.File, resume bool, progressOut io.Writer) *Download {
	d := &Download{
		outputFile:  outputFile,
		resume:      resume,
		progressOut: progressOut,
		Status:      NewStatus(),
	}
	d.reporter = NewReporter(d.Status, progressOut)
	return d
}

// PreRequest prepares the outgoing headers: content-encoding
// negotiation is disabled unconditionally (resuming a compressed
// stream is not meaningful), and a Range header is set when resuming
// onto a nonzero partial file.
func (d *Download) PreRequest(headers http.Header) {
	headers.Set("Accept-Encoding", "identity")
	if d.resume && d.outputFile != nil {
		if info, err := d.outputFile.Stat(); err == nil && info.Size() > 0 {
			headers.Set("Range", fmt.Sprintf("bytes=%d-", info.Size()))
			d.resumedFrom = info.Size()
			logger := logging.GetLogger("download")
			logger.Debug().
				Int64("offset", d.resumedFrom).Msg("resuming from partial file")
		}
	}
}

// Start fixes the output file and total size from the response and
// returns the raw body stream (8 KiB chunks, body only) wired into
// the shared status, plus the open file handle the caller writes to.
func (d *Download) Start(resp *http.Response) (*stream.Stream, *os.File, error) {
	if !d.Status.TimeStarted().IsZero() {
		panic("download: started twice")
	}

	totalSize := int64(-1)
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if parsed, err := strconv.ParseInt(cl, 10, 64); err == nil {
			totalSize = parsed
		}
	}

	if d.outputFile != nil {
		if d.resume && resp.StatusCode == http.StatusPartialContent {
			validated, err := ParseContentRange(resp.Header.Get("Content-Range"), d.resumedFrom)
			if err != nil {
				return nil, nil, err
			}
			totalSize = validated
		} else {
			d.resumedFrom = 0
			// Truncation fails on non-seekable targets such as
			// standard output; that is expected and ignored.
			if _, err := d.outputFile.Seek(0, io.SeekStart); err == nil {
				d.outputFile.Truncate(0)
			}
		}
	} else {
		var filename string
		if cd := resp.Header.Get("Content-Disposition"); cd != "" {
			filename = FilenameFromContentDisposition(cd)
		}
		if filename == "" {
			filename = FilenameFromURL(resp.Request.URL, resp.Header.Get("Content-Type"))
		}
		file, err := os.OpenFile(GetUniqueFilename(filename, nil),
			os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening output file: %w", err)
		}
		d.outputFile = file
	}

	d.Status.Started(d.resumedFrom, totalSize)

	body := stream.NewRaw(message.NewResponse(resp), stream.Settings{
		WithBody:    true,
		OnBodyChunk: func(chunk []byte) { d.Status.ChunkDownloaded(int64(len(chunk))) },
	}, downloadChunkSize)

	sizeText := ""
	if totalSize >= 0 {
		sizeText = HumanizeBytes(float64(totalSize)) + " "
	}
	fmt.Fprintf(d.progressOut, "Downloading %sto \"%s\"\n", sizeText, d.outputFile.Name())
	d.reporter.Start()

	return body, d.outputFile, nil
}

// Finish marks the transfer finished. Calling it twice is a
// programmer error.
func (d *Download) Finish() {
	if d.finished {
		panic("download: finished twice")
	}
	d.finished = true
	d.Status.Finished()
	d.reporter.wait()
}

// Failed stops the progress reporter without marking the transfer
// finished.
func (d *Download) Failed() {
	d.reporter.Stop()
}

// Interrupted reports whether the transfer finished short of a known
// total size.
func (d *Download) Interrupted() bool {
	total, known := d.Status.TotalSize()
	return d.finished && known && d.Status.Downloaded() != total
}
