package bot

import (
	"log"
	"time"
)

// orderScheduler kicks one automation run per day once the wall clock passes
// the configured order time.
type orderScheduler struct {
	bot       *Bot
	orderTime string // HH:MM, validated by config
	stopChan  chan struct{}
	ticker    *time.Ticker
	interval  time.Duration
	lastDay   string
}

func newOrderScheduler(bot *Bot, orderTime string) *orderScheduler {
	return &orderScheduler{
		bot:       bot,
		orderTime: orderTime,
		stopChan:  make(chan struct{}),
		interval:  30 * time.Second,
	}
}

func (w *orderScheduler) start() {
	if w == nil {
		return
	}
	w.ticker = time.NewTicker(w.interval)
	go w.loop()
}

func (w *orderScheduler) stop() {
	if w == nil {
		return
	}
	close(w.stopChan)
	if w.ticker != nil {
		w.ticker.Stop()
	}
}

func (w *orderScheduler) loop() {
	for {
		select {
		case <-w.ticker.C:
			w.tick(time.Now())
		case <-w.stopChan:
			return
		}
	}
}

// due reports whether the daily run should fire at now, and marks the day
// consumed when it does.
func (w *orderScheduler) due(now time.Time) bool {
	day := now.Format("2006-01-02")
	if w.lastDay == day {
		return false
	}
	if now.Format("15:04") < w.orderTime {
		return false
	}
	w.lastDay = day
	return true
}

func (w *orderScheduler) tick(now time.Time) {
	if !w.due(now) {
		return
	}

	channelID := w.bot.cfg.OrderChannelID
	if channelID == "" {
		log.Printf("scheduler: ORDER_CHANNEL_ID is not set; skipping the daily run")
		return
	}
	log.Printf("scheduler: starting the daily order run")
	go w.bot.triggerRun(channelID)
}
