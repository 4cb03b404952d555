package model

type HistoryMatch struct {
	Index  int // position in the metrics slice
	Metric Metric
}

type HistoryQuery struct {
	Pattern       string
	IsRegex       bool
	CaseSensitive bool
	ErrorsOnly    bool
	TypePattern   string
}

type HistoryResults struct {
	Query      HistoryQuery
	Matches    []HistoryMatch
	TypeCounts map[string]int // metric type -> match count
	TotalCount int
}
