package parser

import (
	"fmt"

	"lanefall/internal/game"
)

type Parser interface {
	Parse(file string) ([]*game.Chart, error)
}

// ParseError is fatal to session start: the orchestrator must never
// begin play with a partial chart.
type ParseError struct {
	File  string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %v: %v: %v", e.File, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SelectDifficulty finds a chart by difficulty name, or the first chart
// when name is empty. An unknown name is a ParseError.
func SelectDifficulty(file string, charts []*game.Chart, name string) (*game.Chart, error) {
	if len(charts) == 0 {
		return nil, &ParseError{File: file, Field: "NOTES", Err: errNoCharts}
	}
	if name == "" {
		return charts[0], nil
	}
	for _, c := range charts {
		if c.Difficulty.Name == name {
			return c, nil
		}
	}
	return nil, &ParseError{File: file, Field: "NOTES", Err: fmt.Errorf("no difficulty named %q", name)}
}
