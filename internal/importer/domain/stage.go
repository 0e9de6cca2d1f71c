package domain

// Stage is a caller-visible lifecycle marker for one import call.
// Stages only move forward, Success and Error are terminal.
type Stage string

const (
	StageIdle      Stage = "idle"
	StageUploading Stage = "uploading"
	StageImporting Stage = "importing"
	StageSuccess   Stage = "success"
	StageError     Stage = "error"
)
