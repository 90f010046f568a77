package model

type ErrorResponse struct {
	Error string `json:"detail"`
}

type AnalyzeResponse struct {
	Chords []ChordEvent `json:"chords"`
}
