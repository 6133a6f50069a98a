package domain

import (
	"context"
	"errors"
)

type AppendRequest struct {
	Title   string
	Message string
	Type    string
}

type Service interface {
	Append(ctx context.Context, req AppendRequest) (Notification, error)
	List(ctx context.Context) ([]Notification, error)
	MarkAllRead(ctx context.Context) (int64, error)
}

var (
	ErrInvalidTitle = errors.New("invalid_title")
	ErrInvalidType  = errors.New("invalid_type")
)
