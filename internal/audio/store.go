package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"
)

// Params are the WAV header parameters relevant for merge compatibility.
type Params struct {
	NumChannels int
	SampleRate  int
	BitDepth    int
}

func (p Params) String() string {
	return fmt.Sprintf("%d ch, %d Hz, %d bit", p.NumChannels, p.SampleRate, p.BitDepth)
}

// FormatMismatchError reports a take whose audio parameters differ from
// the first take of a session.
type FormatMismatchError struct {
	Ref  string
	Want Params
	Got  Params
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("audio format mismatch in %s: expected %s, got %s", e.Ref, e.Want, e.Got)
}

// Store keeps canonical meeting recordings in one directory and merges
// recorded WAV takes into them.
type Store struct {
	dir string
}

// NewStore returns a store writing canonical recordings into dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Exists reports whether the referenced take is readable.
func (s *Store) Exists(ref string) bool {
	_, err := os.Stat(ref)
	return err == nil
}

// Probe reads the WAV header parameters of a take.
func (s *Store) Probe(ref string) (Params, error) {
	f, err := os.Open(ref)
	if err != nil {
		return Params{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if dec.Err() != nil {
		return Params{}, fmt.Errorf("reading %s: %w", ref, dec.Err())
	}
	return Params{
		NumChannels: int(dec.NumChans),
		SampleRate:  int(dec.SampleRate),
		BitDepth:    int(dec.BitDepth),
	}, nil
}

// Merge combines the takes, in insertion order, into one canonical
// recording. A single take is copied byte-for-byte rather than
// re-encoded. Multiple takes are concatenated at the frame level with
// the header parameters of the first take; any take with differing
// parameters aborts the merge before anything is written.
func (s *Store) Merge(refs []string) (string, error) {
	if len(refs) == 0 {
		return "", fmt.Errorf("no audio segments to merge")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	target := filepath.Join(s.dir, fmt.Sprintf("recording_%s.wav", uuid.NewString()))

	if len(refs) == 1 {
		if err := copyFile(refs[0], target); err != nil {
			return "", err
		}
		return target, nil
	}

	buffers, params, err := s.decodeAll(refs)
	if err != nil {
		return "", err
	}

	out, err := os.Create(target)
	if err != nil {
		return "", err
	}
	enc := wav.NewEncoder(out, params.SampleRate, params.BitDepth, params.NumChannels, 1)
	for _, buf := range buffers {
		if err := enc.Write(buf); err != nil {
			out.Close()
			os.Remove(target)
			return "", fmt.Errorf("writing merged recording: %w", err)
		}
	}
	if err := enc.Close(); err != nil {
		out.Close()
		os.Remove(target)
		return "", fmt.Errorf("finalizing merged recording: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return target, nil
}

// decodeAll loads every take and validates it against the first take's
// parameters before any output is produced.
func (s *Store) decodeAll(refs []string) ([]*audio.IntBuffer, Params, error) {
	var first Params
	buffers := make([]*audio.IntBuffer, 0, len(refs))
	for i, ref := range refs {
		buf, params, err := decodeTake(ref)
		if err != nil {
			return nil, Params{}, err
		}
		if i == 0 {
			first = params
		} else if params != first {
			return nil, Params{}, &FormatMismatchError{Ref: ref, Want: first, Got: params}
		}
		buffers = append(buffers, buf)
	}
	return buffers, first, nil
}

func decodeTake(ref string) (*audio.IntBuffer, Params, error) {
	f, err := os.Open(ref)
	if err != nil {
		return nil, Params{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, Params{}, fmt.Errorf("%s is not a valid WAV file", ref)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, Params{}, fmt.Errorf("decoding %s: %w", ref, err)
	}
	params := Params{
		NumChannels: int(dec.NumChans),
		SampleRate:  int(dec.SampleRate),
		BitDepth:    int(dec.BitDepth),
	}
	return buf, params, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
