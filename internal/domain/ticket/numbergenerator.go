package ticket

import (
	"context"
	"fmt"
	"sync"
)

// MaxNumberReader is the part of Repository the generator needs.
type MaxNumberReader interface {
	MaxNumber(ctx context.Context, guildID string) (int, error)
}

// GuildNumberGenerator hands out max+1 per guild. Numbers are not monotonic
// forever: deleting the highest ticket frees its number for reuse.
//
// Callers hold Lock for the guild across Next and the insert so two creates
// in one process never read the same maximum. The unique (guild_id, number)
// constraint covers writers in other processes.
type GuildNumberGenerator struct {
	repo  MaxNumberReader
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewGuildNumberGenerator(repo MaxNumberReader) *GuildNumberGenerator {
	return &GuildNumberGenerator{
		repo:  repo,
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the guild's allocation lock and returns its release func.
func (g *GuildNumberGenerator) Lock(guildID string) func() {
	g.mu.Lock()
	l, ok := g.locks[guildID]
	if !ok {
		l = &sync.Mutex{}
		g.locks[guildID] = l
	}
	g.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (g *GuildNumberGenerator) Next(ctx context.Context, guildID string) (int, error) {
	maxNumber, err := g.repo.MaxNumber(ctx, guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to read max ticket number: %w", err)
	}
	return maxNumber + 1, nil
}
