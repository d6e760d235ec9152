package core

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/juju/ratelimit"
)

const (
	fdStdin  = 0
	fdStdout = 1
	fdStderr = 2
)

// TranscriptEvent is one recorded read or write on a session stream,
// stored as newline delimited JSON.
type TranscriptEvent struct {
	// Microseconds since the UNIX epoch when the data moved.
	TimestampMicros int64 `json:"timestamp_micros"`
	// Fd is 0 for shell input, 1 for stdout, 2 for stderr.
	Fd int `json:"fd"`
	// Data is the raw bytes, base64 coded by encoding/json.
	Data []byte `json:"data"`
}

// Recorder wraps a session's streams so every read and write is
// appended to a transcript. Writes from concurrent siblings in a batch
// are serialized by the recorder's mutex.
type Recorder struct {
	mutex  sync.Mutex
	output io.Writer

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRecorder wraps the given streams, logging all traffic to output.
func NewRecorder(stdin io.Reader, stdout, stderr io.Writer, output io.Writer) *Recorder {
	recorder := &Recorder{output: output}
	recorder.Stdin = &recorderReader{r: recorder, fd: fdStdin, wrapped: stdin}
	recorder.Stdout = &recorderWriter{r: recorder, fd: fdStdout, wrapped: stdout}
	recorder.Stderr = &recorderWriter{r: recorder, fd: fdStderr, wrapped: stderr}
	return recorder
}

func (r *Recorder) logEvent(timestamp time.Time, fd int, data []byte) error {
	entry, err := json.Marshal(&TranscriptEvent{
		TimestampMicros: timestamp.UnixNano() / int64(time.Microsecond),
		Fd:              fd,
		Data:            data,
	})
	if err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	_, err = fmt.Fprintln(r.output, string(entry))
	return err
}

type recorderReader struct {
	r       *Recorder
	fd      int
	wrapped io.Reader
}

func (rc *recorderReader) Read(p []byte) (int, error) {
	amount, err := rc.wrapped.Read(p)
	if amount > 0 {
		rc.r.logEvent(time.Now(), rc.fd, p[:amount])
	}
	return amount, err
}

type recorderWriter struct {
	r       *Recorder
	fd      int
	wrapped io.Writer
}

func (rc *recorderWriter) Write(p []byte) (int, error) {
	amount, err := rc.wrapped.Write(p)
	if amount > 0 {
		rc.r.logEvent(time.Now(), rc.fd, p[:amount])
	}
	return amount, err
}

type replayOpts struct {
	maxSleep time.Duration
	byteRate int64
}

// ReplayOpt changes options for playback.
type ReplayOpt func(*replayOpts)

// MaxSleep sets the maximum duration that Replay will sleep between
// events.
func MaxSleep(duration time.Duration) ReplayOpt {
	return func(r *replayOpts) {
		r.maxSleep = duration
	}
}

// ByteRate caps playback at the given bytes per second. Zero means
// unlimited.
func ByteRate(bytesPerSecond int64) ReplayOpt {
	return func(r *replayOpts) {
		r.byteRate = bytesPerSecond
	}
}

// Replay plays the output events of a transcript to destination,
// pacing them by their recorded timing.
func Replay(recording io.Reader, destination io.Writer, opts ...ReplayOpt) error {
	options := &replayOpts{
		maxSleep: 3 * time.Second,
	}
	for _, o := range opts {
		o(options)
	}

	if options.byteRate > 0 {
		bucket := ratelimit.NewBucketWithRate(float64(options.byteRate), options.byteRate)
		destination = ratelimit.Writer(destination, bucket)
	}

	var prevTime time.Time
	decoder := json.NewDecoder(recording)
	for decoder.More() {
		var event TranscriptEvent
		if err := decoder.Decode(&event); err != nil {
			return err
		}

		currTime := time.Unix(0, event.TimestampMicros*int64(time.Microsecond))
		if !prevTime.IsZero() {
			sleepDuration := currTime.Sub(prevTime)
			if sleepDuration > options.maxSleep {
				sleepDuration = options.maxSleep
			}
			if sleepDuration > 0 {
				time.Sleep(sleepDuration)
			}
		}
		prevTime = currTime

		// Input events are kept in transcripts but not played back.
		if event.Fd == fdStdin {
			continue
		}
		if _, err := destination.Write(event.Data); err != nil {
			return err
		}
	}
	return nil
}

// ReplayCallback reads a stream of transcript events to a callback.
func ReplayCallback(recording io.Reader, callback func(*TranscriptEvent) error) error {
	decoder := json.NewDecoder(recording)
	for decoder.More() {
		var event TranscriptEvent
		if err := decoder.Decode(&event); err != nil {
			return err
		}
		if err := callback(&event); err != nil {
			return err
		}
	}
	return nil
}
