package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/keiko-dev/keiko/internal/chat"
	"github.com/keiko-dev/keiko/internal/models"
)

// ValidateModels smoke-tests that every configured model answers a minimal
// request on the configured provider. Failures are collected so the error
// names every unavailable model, not just the first.
func ValidateModels(ctx context.Context, gateway chat.Gateway, modelIDs []string) error {
	var failed []error

	for _, id := range modelIDs {
		_, err := gateway.Send(ctx, chat.Request{
			Model:     id,
			Messages:  []models.Message{{Role: models.RoleUser, Content: "hi"}},
			MaxTokens: 1,
		})
		if err != nil {
			slog.Error("model unavailable", "model", id, "error", err)
			failed = append(failed, fmt.Errorf("model %s: %w", id, err))
			continue
		}
		slog.Info("model ok", "model", id)
	}

	if len(failed) > 0 {
		return fmt.Errorf("model validation failed: %w", errors.Join(failed...))
	}
	return nil
}
