package handlers

const (
	// Response headers on binary composition downloads
	headerCompositionID = "X-Composition-ID"
	headerNoteCount     = "X-Note-Count"
	headerTruncated     = "X-Truncated"

	contentTypeMIDI = "audio/midi"
	formatJSON      = "json"

	defaultHistoryPageSize = 20
	maxHistoryPageSize     = 100 // Maximum page size for composition history
)
