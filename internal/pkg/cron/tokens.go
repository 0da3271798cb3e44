package cron

import (
	"context"
	"log/slog"

	"github.com/rotaworks/rota-backend-go/internal/repository/postgresql"
)

// RefreshTokenPurge returns a job that deletes refresh tokens whose
// expiry passed more than a day ago. Rows are kept briefly past expiry
// so a rejected refresh can still be told apart from an unknown token.
func RefreshTokenPurge(jwtRepo postgresql.JWTRepository) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		removed, err := jwtRepo.DeleteExpiredRefreshTokens(ctx)
		if err != nil {
			return err
		}
		if removed > 0 {
			slog.Info("Purged expired refresh tokens", "count", removed)
		}
		return nil
	}
}
