package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"warbler/internal/models"
)

func TestMessageServicePostValidation(t *testing.T) {
	svc := NewMessageService(noopMessageRepo(), noopUserRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		text string
	}{
		{"Empty", ""},
		{"Whitespace only", "   \n\t"},
		{"Too long", strings.Repeat("x", 141)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Post(ctx, 1, tt.text)
			var appErr *models.AppError
			if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
				t.Fatalf("expected validation app error, got %#v", err)
			}
		})
	}
}

func TestMessageServicePostTrimsAndCreates(t *testing.T) {
	var created *models.Message
	messages := noopMessageRepo()
	messages.createFn = func(_ context.Context, m *models.Message) error {
		created = m
		m.ID = 10
		return nil
	}

	svc := NewMessageService(messages, noopUserRepo())
	message, err := svc.Post(context.Background(), 1, "  hello world  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.Text != "hello world" {
		t.Fatalf("expected trimmed text, got %#v", created)
	}
	if message.ID != 10 || message.UserID != 1 {
		t.Fatalf("unexpected message: %#v", message)
	}
}

func TestMessageServicePostBoundaryLength(t *testing.T) {
	svc := NewMessageService(noopMessageRepo(), noopUserRepo())
	if _, err := svc.Post(context.Background(), 1, strings.Repeat("x", 140)); err != nil {
		t.Fatalf("140-char warble should be accepted: %v", err)
	}
}

func TestMessageServiceDeleteNotOwner(t *testing.T) {
	messages := noopMessageRepo()
	messages.getByIDFn = func(_ context.Context, id, _ uint) (*models.Message, error) {
		return &models.Message{ID: id, UserID: 1}, nil
	}

	svc := NewMessageService(messages, noopUserRepo())
	err := svc.Delete(context.Background(), 2, 10)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "UNAUTHORIZED" {
		t.Fatalf("expected unauthorized app error, got %#v", err)
	}
}

func TestMessageServiceDeleteOwner(t *testing.T) {
	var deletedID, deletedAuthor uint
	messages := noopMessageRepo()
	messages.getByIDFn = func(_ context.Context, id, _ uint) (*models.Message, error) {
		return &models.Message{ID: id, UserID: 1}, nil
	}
	messages.deleteFn = func(_ context.Context, id, authorID uint) error {
		deletedID, deletedAuthor = id, authorID
		return nil
	}

	svc := NewMessageService(messages, noopUserRepo())
	if err := svc.Delete(context.Background(), 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != 10 || deletedAuthor != 1 {
		t.Fatalf("expected delete(10, 1), got delete(%d, %d)", deletedID, deletedAuthor)
	}
}

func TestMessageServiceTimelineMissingUser(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewMessageService(noopMessageRepo(), users)
	_, err := svc.Timeline(context.Background(), 99, 20, 0, 0)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}
