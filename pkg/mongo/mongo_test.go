package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brightpath/authkit/pkg/mongo"
)

func TestNewWithDatabaseUnreachableServer(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	db, err := mongo.NewWithDatabase(ctx, mongo.Config{
		ConnectionURL:  "mongodb://127.0.0.1:1",
		Database:       "app",
		ConnectTimeout: 100 * time.Millisecond,
		RetryAttempts:  1,
		RetryInterval:  time.Millisecond,
	})
	assert.Nil(t, db)
	assert.ErrorIs(t, err, mongo.ErrFailedToConnect)
}
