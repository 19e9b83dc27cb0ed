package publisher

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublishNothing(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	pub := NewGitPublisher("Update release feeds", log)

	require.NoError(t, pub.Publish(context.Background(), nil), "an unchanged run must not touch git")
}
