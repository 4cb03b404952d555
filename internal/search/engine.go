package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/altinukshini/batch-tui/internal/model"
)

// ErrorType is the metric type the server uses for failures.
const ErrorType = "ERROR"

type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// Search scans a job instance's history and returns matching entries in
// their original order.
func (e *Engine) Search(metrics []model.Metric, query model.HistoryQuery) (*model.HistoryResults, error) {
	results := &model.HistoryResults{
		Query:      query,
		TypeCounts: make(map[string]int),
	}

	matcher, err := buildMatcher(query)
	if err != nil {
		return results, err
	}
	var typeRE *regexp.Regexp
	if query.TypePattern != "" {
		typeRE, err = regexp.Compile("(?i)" + query.TypePattern)
		if err != nil {
			return results, fmt.Errorf("invalid type pattern: %w", err)
		}
	}

	for i, m := range metrics {
		if query.ErrorsOnly && !strings.EqualFold(m.Type, ErrorType) {
			continue
		}
		if typeRE != nil && !typeRE.MatchString(m.Type) {
			continue
		}
		if matcher(m.Message) {
			results.Matches = append(results.Matches, model.HistoryMatch{Index: i, Metric: m})
			results.TypeCounts[m.Type]++
			results.TotalCount++
		}
	}

	return results, nil
}

func buildMatcher(query model.HistoryQuery) (func(string) bool, error) {
	if query.IsRegex {
		flags := ""
		if !query.CaseSensitive {
			flags = "(?i)"
		}
		re, err := regexp.Compile(flags + query.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		return func(line string) bool { return re.MatchString(line) }, nil
	}

	pattern := query.Pattern
	if !query.CaseSensitive {
		pattern = strings.ToLower(pattern)
	}
	return func(line string) bool {
		if !query.CaseSensitive {
			line = strings.ToLower(line)
		}
		return strings.Contains(line, pattern)
	}, nil
}
