package heatmapdto

import "time"

type Piece struct {
	Index  int     `json:"index"`
	Kind   string  `json:"kind"`
	Side   string  `json:"side"`
	Square string  `json:"square"`
	Share  float64 `json:"share"`
}

type SlotShare struct {
	Piece int     `json:"piece"`
	Share float64 `json:"share"`
}

type Square struct {
	Name       string      `json:"name"`
	Row        int         `json:"row"`
	Col        int         `json:"col"`
	SumWhite   float64     `json:"sum_white"`
	SumBlack   float64     `json:"sum_black"`
	SumTotal   float64     `json:"sum_total"`
	EmptyShare float64     `json:"empty_share"`
	Shares     []SlotShare `json:"shares,omitempty"`
}

// Snapshot is the exported result of one heatmap run.
type Snapshot struct {
	RunID      string    `json:"run_id"`
	ComputedAt time.Time `json:"computed_at"`
	Pieces     []Piece   `json:"pieces"`
	Squares    []Square  `json:"squares"`
	BoardImage []byte    `json:"-"`
}
