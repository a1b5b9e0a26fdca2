// Package audio handles linking audio files to projects: probing their
// duration and watching the linked file for removal.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupported means the container format could not be probed; the caller
// falls back to asking the user for a duration.
var ErrUnsupported = errors.New("unsupported audio format")

// ProbeDuration returns the duration in seconds of the audio file at path.
// Only WAV containers are parsed; other formats return ErrUnsupported.
func ProbeDuration(path string) (float64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return wavDuration(path)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
}

// wavDuration walks the RIFF chunks for the fmt byte rate and the data chunk
// size. Duration = data bytes / byte rate.
func wavDuration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var header [12]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return 0, fmt.Errorf("not a RIFF file: %w", err)
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return 0, fmt.Errorf("not a WAV file")
	}

	var byteRate uint32
	var dataSize uint32
	var chunk [8]byte
	for {
		if _, err := io.ReadFull(f, chunk[:]); err != nil {
			break
		}
		id := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			var fmtChunk [16]byte
			if _, err := io.ReadFull(f, fmtChunk[:]); err != nil {
				return 0, fmt.Errorf("truncated fmt chunk: %w", err)
			}
			byteRate = binary.LittleEndian.Uint32(fmtChunk[8:12])
			if size > 16 {
				if _, err := f.Seek(int64(size-16), io.SeekCurrent); err != nil {
					return 0, err
				}
			}
		case "data":
			dataSize = size
			if _, err := f.Seek(int64(size), io.SeekCurrent); err != nil {
				return 0, err
			}
		default:
			// Chunks are word-aligned; odd sizes carry a pad byte.
			skip := int64(size)
			if size%2 == 1 {
				skip++
			}
			if _, err := f.Seek(skip, io.SeekCurrent); err != nil {
				return 0, err
			}
		}

		if byteRate != 0 && dataSize != 0 {
			break
		}
	}

	if byteRate == 0 || dataSize == 0 {
		return 0, fmt.Errorf("missing fmt or data chunk")
	}
	return float64(dataSize) / float64(byteRate), nil
}
