package video

import (
	"context"
	"errors"
	"time"
)

const pollInterval = 5 * time.Second

// GenerateAndWait starts a generation and polls until the operation completes.
// The loop is bound to ctx: cancelling the request abandons the poll instead
// of leaving it running in the background.
func GenerateAndWait(ctx context.Context, provider Provider, req Request) (Operation, error) {
	op, err := provider.Start(ctx, req)
	if err != nil {
		return Operation{}, err
	}

	for !op.Done {
		select {
		case <-ctx.Done():
			return Operation{}, ctx.Err()
		case <-time.After(pollInterval):
		}

		op, err = provider.Poll(ctx, op.ID)
		if err != nil {
			return Operation{}, err
		}
	}

	if op.Error != "" {
		return Operation{}, errors.New(op.Error)
	}
	return op, nil
}
