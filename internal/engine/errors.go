package engine

import (
	"errors"
	"fmt"
)

// ErrorKind tags a stage failure so callers can branch without matching text.
type ErrorKind string

const (
	KindEmptyInput            ErrorKind = "empty_input"
	KindExtractionFailed      ErrorKind = "extraction_failed"
	KindTranscriptUnavailable ErrorKind = "transcript_unavailable"
	KindInvalidMode           ErrorKind = "invalid_mode"
	KindGenerationFailed      ErrorKind = "generation_failed"
	KindSynthesisFailed       ErrorKind = "synthesis_failed"
	KindPartialChunkFailure   ErrorKind = "partial_chunk_failure"
)

// User-facing messages. These are shown verbatim, so they keep their capitals.
const (
	MsgEmptyURL             = "URL is empty"
	MsgNoSummaryContent     = "No content provided for summarization"
	MsgNoAudioText          = "No text provided for audio generation"
	MsgTranscriptsDisabled  = "Transcripts are disabled for this video"
	msgExtractFailedPrefix  = "Failed to extract content: "
	msgSummaryFailedPrefix  = "Failed to generate summary: "
	msgAudioFailedPrefix    = "Failed to generate audio: "
	msgInvalidSummaryPrefix = "Invalid summary type: "
)

// Error is the terminal outcome of a pipeline stage.
// Error() returns the message meant for the user.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a stage error, or "" if err is not one.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// NewError builds a stage error with a fixed message.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// ExtractionError wraps a fetch/parse failure.
func ExtractionError(err error) *Error {
	return &Error{Kind: KindExtractionFailed, Msg: msgExtractFailedPrefix + err.Error(), Err: err}
}

// TranscriptUnavailable reports disabled or missing captions.
func TranscriptUnavailable(err error) *Error {
	return &Error{Kind: KindTranscriptUnavailable, Msg: MsgTranscriptsDisabled, Err: err}
}

// GenerationError wraps a failed or unparseable summary call.
func GenerationError(err error) *Error {
	return &Error{Kind: KindGenerationFailed, Msg: msgSummaryFailedPrefix + err.Error(), Err: err}
}

// InvalidModeError reports a summary type outside the four known modes.
func InvalidModeError(mode string) *Error {
	return &Error{Kind: KindInvalidMode, Msg: msgInvalidSummaryPrefix + mode}
}

// SynthesisError wraps a failed speech call.
func SynthesisError(err error) *Error {
	return &Error{Kind: KindSynthesisFailed, Msg: msgAudioFailedPrefix + err.Error(), Err: err}
}

// ChunkError reports that chunk i of n failed and the whole run was aborted.
func ChunkError(i, n int, err error) *Error {
	wrapped := fmt.Errorf("chunk %d/%d: %w", i+1, n, err)
	return &Error{Kind: KindPartialChunkFailure, Msg: msgAudioFailedPrefix + wrapped.Error(), Err: wrapped}
}
