// Package middleware holds interaction router middleware.
package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction"
	"github.com/corporatewarfare/cwbot/internal/shared/config"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

const (
	DefaultCommandCooldown   = 3 * time.Second
	DefaultComponentCooldown = time.Second
	DefaultSweepInterval     = time.Minute
)

// Cooldown enforces a minimum spacing per user and interaction class. State
// is in memory only and starts empty on every restart.
type Cooldown struct {
	mu      sync.Mutex
	last    map[string]map[interaction.Class]time.Time
	command time.Duration
	other   time.Duration
	now     func() time.Time
	logger  logger.Interface
}

// NewCooldown applies cfg.Command to slash commands and cfg.Component to every
// other class.
func NewCooldown(cfg config.CooldownConfig, logger logger.Interface) *Cooldown {
	if cfg.Command <= 0 {
		cfg.Command = DefaultCommandCooldown
	}
	if cfg.Component <= 0 {
		cfg.Component = DefaultComponentCooldown
	}
	return &Cooldown{
		last:    make(map[string]map[interaction.Class]time.Time),
		command: cfg.Command,
		other:   cfg.Component,
		now:     time.Now,
		logger:  logger,
	}
}

// Window is the cooldown for class.
func (c *Cooldown) Window(class interaction.Class) time.Duration {
	if class == interaction.ClassCommand {
		return c.command
	}
	return c.other
}

// Middleware rejects an event that arrives inside its user's window for the
// class. Accepted events are stamped before the chain continues, so a
// failing handler still counts.
func (c *Cooldown) Middleware() interaction.Middleware {
	return func(req *interaction.Request, next interaction.Next) error {
		userID := req.Base().User.ID
		if userID == "" {
			return next()
		}

		remaining, ok := c.acquire(userID, req.Class)
		if ok {
			return next()
		}

		req.Logger.Debugw("interaction rejected by cooldown", "remaining", remaining)

		resp := req.Base().Responder
		if resp != nil && resp.CanReply() && !resp.Replied() && !resp.Deferred() {
			if err := resp.Reply(req.Ctx, interaction.Response{
				Content:   WaitMessage(remaining),
				Ephemeral: true,
			}); err != nil {
				req.Logger.Debugw("failed to send cooldown notice", "error", err)
			}
		}
		return nil
	}
}

// acquire stamps the user's class when its window has passed and otherwise
// returns the time left.
func (c *Cooldown) acquire(userID string, class interaction.Class) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	classes, ok := c.last[userID]
	if !ok {
		classes = make(map[interaction.Class]time.Time)
		c.last[userID] = classes
	}

	window := c.Window(class)
	if last, seen := classes[class]; seen {
		if elapsed := now.Sub(last); elapsed < window {
			return window - elapsed, false
		}
	}

	classes[class] = now
	return 0, true
}

func (c *Cooldown) IsOnCooldown(userID string, class interaction.Class) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, ok := c.last[userID][class]
	return ok && c.now().Sub(last) < c.Window(class)
}

// Clear resets the given classes for the user, or all of them when none are
// given.
func (c *Cooldown) Clear(userID string, classes ...interaction.Class) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(classes) == 0 {
		delete(c.last, userID)
		return
	}
	entries, ok := c.last[userID]
	if !ok {
		return
	}
	for _, class := range classes {
		delete(entries, class)
	}
	if len(entries) == 0 {
		delete(c.last, userID)
	}
}

// Sweep drops entries older than twice their class window and users left
// with none. It returns the number of entries removed.
func (c *Cooldown) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for userID, classes := range c.last {
		for class, last := range classes {
			if now.Sub(last) > 2*c.Window(class) {
				delete(classes, class)
				removed++
			}
		}
		if len(classes) == 0 {
			delete(c.last, userID)
		}
	}
	if removed > 0 {
		c.logger.Debugw("swept cooldown entries", "removed", removed, "users", len(c.last))
	}
	return removed
}

// Users is the number of users with at least one entry.
func (c *Cooldown) Users() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.last)
}

// RemainingSeconds rounds d up to whole seconds.
func RemainingSeconds(d time.Duration) int {
	ms := d.Milliseconds()
	secs := int((ms + 999) / 1000)
	if secs < 1 {
		secs = 1
	}
	return secs
}

func WaitMessage(remaining time.Duration) string {
	n := RemainingSeconds(remaining)
	unit := "seconds"
	if n == 1 {
		unit = "second"
	}
	return fmt.Sprintf("⚠️ Please wait %d %s before trying again.", n, unit)
}
