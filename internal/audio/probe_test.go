package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeWAV builds a minimal RIFF/WAVE file whose duration is
// dataSize/byteRate seconds.
func writeWAV(t *testing.T, path string, byteRate, dataSize uint32, extraChunk bool) {
	t.Helper()

	var body bytes.Buffer
	body.WriteString("WAVE")

	if extraChunk {
		// An unknown odd-sized chunk ahead of fmt, with its pad byte.
		body.WriteString("LIST")
		binary.Write(&body, binary.LittleEndian, uint32(5))
		body.Write([]byte("INFOx"))
		body.WriteByte(0)
	}

	fmtPayload := make([]byte, 16)
	binary.LittleEndian.PutUint16(fmtPayload[0:2], 1) // PCM
	binary.LittleEndian.PutUint16(fmtPayload[2:4], 2) // channels
	binary.LittleEndian.PutUint32(fmtPayload[4:8], 44100)
	binary.LittleEndian.PutUint32(fmtPayload[8:12], byteRate)

	body.WriteString("fmt ")
	binary.Write(&body, binary.LittleEndian, uint32(len(fmtPayload)))
	body.Write(fmtPayload)
	body.WriteString("data")
	binary.Write(&body, binary.LittleEndian, dataSize)
	body.Write(make([]byte, dataSize))

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(body.Len()))
	buf.Write(body.Bytes())

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestProbeDuration_WAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.wav")
	writeWAV(t, path, 176400, 352800, false) // 2 seconds at 44.1kHz stereo 16-bit

	d, err := ProbeDuration(path)
	if err != nil {
		t.Fatalf("ProbeDuration failed: %v", err)
	}
	if d != 2.0 {
		t.Errorf("duration = %v, want 2.0", d)
	}
}

func TestProbeDuration_SkipsUnknownChunks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.wav")
	writeWAV(t, path, 176400, 88200, true) // 0.5 seconds behind a LIST chunk

	d, err := ProbeDuration(path)
	if err != nil {
		t.Fatalf("ProbeDuration failed: %v", err)
	}
	if d != 0.5 {
		t.Errorf("duration = %v, want 0.5", d)
	}
}

func TestProbeDuration_UnsupportedExtension(t *testing.T) {
	_, err := ProbeDuration("music.mp3")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestProbeDuration_NotAWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.wav")
	if err := os.WriteFile(path, []byte("this is not RIFF data at all"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := ProbeDuration(path); err == nil {
		t.Error("expected error for a non-WAV file")
	}
}

func TestProbeDuration_MissingFile(t *testing.T) {
	if _, err := ProbeDuration(filepath.Join(t.TempDir(), "absent.wav")); err == nil {
		t.Error("expected error for a missing file")
	}
}
