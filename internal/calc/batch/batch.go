package batch

import (
	"errors"
	"fmt"

	colebrook "Pipeflow/internal/calc/colebrook"
)

var ErrInvalidInput = errors.New("batch: invalid input")

type Input struct {
	Items []colebrook.Input `json:"items"`
}

type Result struct {
	Results []colebrook.Result `json:"results"`
}

// MaxItems bounds one request.
const MaxItems = 1000

// Calculate solves every item in order. A failing item fails the batch.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("%w: no items", ErrInvalidInput)
	}
	if len(in.Items) > MaxItems {
		return Result{}, fmt.Errorf("%w: too many items: %d > %d", ErrInvalidInput, len(in.Items), MaxItems)
	}
	out := Result{Results: make([]colebrook.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := colebrook.Calculate(item)
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
