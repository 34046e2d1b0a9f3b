package types

// Shared types used across dataio, extract and compareops.

// TableData is the uniform row/column shape every loader produces.
// Cells are string-rendered at load time; matching and comparison work
// on the rendered text only.
type TableData struct {
	HasHeader bool       `json:"hasHeader"`
	Header    []string   `json:"header"`
	Rows      [][]string `json:"rows"`
}

// ResultSummary reports the outcome counts of one comparison operation.
type ResultSummary struct {
	Processed  int   `json:"processed"`
	Matched    int   `json:"matched"`
	Missing    int   `json:"missing"`
	DurationMS int64 `json:"durationMs"`
}
