package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shajghor/shajghor-backend/internal/app/service"
	"github.com/shajghor/shajghor-backend/pkg/logger"
)

// CartSweeper drops in-memory carts that have idled past their TTL so
// abandoned guest sessions do not accumulate for the life of the
// process.
type CartSweeper struct {
	cron        *cron.Cron
	cartService service.CartService
	maxIdle     time.Duration
}

func NewCartSweeper(cartService service.CartService, maxIdle time.Duration) *CartSweeper {
	return &CartSweeper{
		cron:        cron.New(),
		cartService: cartService,
		maxIdle:     maxIdle,
	}
}

func (s *CartSweeper) Start() error {
	_, err := s.cron.AddFunc("*/30 * * * *", func() {
		purged := s.cartService.PurgeExpired(s.maxIdle)
		logger.Debug("Cart sweep completed", map[string]interface{}{
			"purged": purged,
		})
	})
	if err != nil {
		logger.Error("Failed to schedule cart sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cart sweeper started (every 30 minutes)", map[string]interface{}{
		"max_idle": s.maxIdle.String(),
	})
	return nil
}

func (s *CartSweeper) Stop() {
	s.cron.Stop()
	logger.Info("Cart sweeper stopped", nil)
}
