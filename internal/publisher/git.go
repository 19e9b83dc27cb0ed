package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// GitPublisher stages and commits regenerated feed files. It runs
// after generation and stays disabled outside the scheduled automation
// environment.
type GitPublisher struct {
	commitMessage string
	log           *slog.Logger
}

func NewGitPublisher(commitMessage string, log *slog.Logger) *GitPublisher {
	return &GitPublisher{
		commitMessage: commitMessage,
		log:           log.With(slog.String("item", "GitPublisher")),
	}
}

// Publish stages the given files and commits them. A run that changed
// nothing publishes nothing.
func (p *GitPublisher) Publish(ctx context.Context, files []string) error {
	if len(files) == 0 {
		p.log.Info("Nothing to publish")

		return nil
	}

	args := append([]string{"add", "--"}, files...)
	if out, err := p.git(ctx, args...); err != nil {
		return fmt.Errorf("cannot stage feeds: %s: %w", out, err)
	}

	msg := fmt.Sprintf("%s (%s)", p.commitMessage, time.Now().UTC().Format(time.RFC3339))
	if out, err := p.git(ctx, "commit", "-m", msg); err != nil {
		return fmt.Errorf("cannot commit feeds: %s: %w", out, err)
	}

	p.log.Info("Committed feeds", slog.Int("files", len(files)))

	return nil
}

func (p *GitPublisher) git(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "git", args...).CombinedOutput()

	return strings.TrimSpace(string(out)), err
}
