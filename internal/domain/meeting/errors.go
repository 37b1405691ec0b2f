package meeting

import "fmt"

// ConfigurationError reports a missing or incomplete credential. It is
// returned before any network call is attempted.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return e.Msg
}

// SubmissionError reports that the transcription service rejected the
// upload or the job creation request.
type SubmissionError struct {
	Op  string
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// TranscriptionError reports that a transcription job ended in the error
// state or became unreachable while polling.
type TranscriptionError struct {
	Detail string
}

func (e *TranscriptionError) Error() string {
	return "transcription failed: " + e.Detail
}
