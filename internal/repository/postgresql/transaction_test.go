package postgresql

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/hadirhq/hadir-backend-go/internal/pkg/database"
)

type stubTx struct {
	pgx.Tx
}

func TestGetQuerierPrefersAmbientTransaction(t *testing.T) {
	db := &database.DB{}
	tx := stubTx{}

	q := GetQuerier(ContextWithTx(context.Background(), tx), db)
	assert.Equal(t, tx, q)
}

func TestGetQuerierFallsBackToPool(t *testing.T) {
	db := &database.DB{}

	q := GetQuerier(context.Background(), db)
	assert.Equal(t, db.Pool, q)
}
