package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/ajay-gandhi/alfred4.0/internal/config"
	"github.com/ajay-gandhi/alfred4.0/internal/db"
	"github.com/ajay-gandhi/alfred4.0/internal/order"
)

// RunFunc performs one full automation run and returns its results.
type RunFunc func(ctx context.Context) (order.RunResult, error)

// ScrapeFunc refreshes the menu catalog and reports how many restaurants it
// stored.
type ScrapeFunc func(ctx context.Context) (int, error)

type Bot struct {
	session *discordgo.Session
	db      *db.DB
	cfg     *config.Config

	runOrders RunFunc
	scrape    ScrapeFunc

	// The ordering site is one browser session; runs and scrapes must never
	// overlap.
	runMu sync.Mutex

	scheduler *orderScheduler
}

func New(cfg *config.Config, database *db.DB, runOrders RunFunc, scrape ScrapeFunc) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	bot := &Bot{
		session:   session,
		db:        database,
		cfg:       cfg,
		runOrders: runOrders,
		scrape:    scrape,
	}
	bot.scheduler = newOrderScheduler(bot, cfg.OrderTime)

	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onMessageCreate)
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	return bot, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	b.scheduler.start()
	log.Println("Alfred is running")
	return nil
}

func (b *Bot) Stop() error {
	b.scheduler.stop()
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("%s is connected!", event.User.Username)
}

// commandText strips the "!alfred" prefix or a leading bot mention; ok is
// false for messages that are not addressed to the bot.
func (b *Bot) commandText(m *discordgo.MessageCreate) (string, bool) {
	content := strings.TrimSpace(m.Content)
	if rest, found := strings.CutPrefix(content, "!alfred"); found {
		return strings.TrimSpace(rest), true
	}
	if b.session.State.User != nil {
		for _, prefix := range []string{
			"<@" + b.session.State.User.ID + ">",
			"<@!" + b.session.State.User.ID + ">",
		} {
			if rest, found := strings.CutPrefix(content, prefix); found {
				return strings.TrimSpace(rest), true
			}
		}
	}
	return "", false
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.Bot {
		return
	}
	text, ok := b.commandText(m)
	if !ok {
		return
	}

	cmd, err := Parse(text)
	if err != nil {
		b.reply(m.ChannelID, err.Error())
		return
	}

	ctx := context.Background()
	switch cmd.Kind {
	case CmdOrder:
		b.handleOrder(ctx, m, cmd)
	case CmdChipIn:
		b.handleChipIn(ctx, m, cmd)
	case CmdForget:
		b.handleForget(ctx, m)
	case CmdStatus:
		b.handleStatus(ctx, m)
	case CmdInfo:
		b.handleInfo(ctx, m, cmd)
	case CmdStats:
		b.handleStats(ctx, m)
	case CmdScrape:
		b.handleScrape(m)
	case CmdRun:
		b.handleRun(m)
	case CmdHelp:
		b.reply(m.ChannelID, helpText)
	}
}

const helpText = "I can take lunch orders:\n" +
	"`order <item> [option, option] from <restaurant>` — add an item\n" +
	"`chip in for <restaurant>` — pay into an order without eating\n" +
	"`forget` — drop everything you ordered today\n" +
	"`status` — show today's pending orders\n" +
	"`info <display name> <phone>` — register yourself\n" +
	"`stats` — your ordering history\n" +
	"`scrape` — refresh the menus\n" +
	"`run` — place today's orders now"

func (b *Bot) reply(channelID, content string) {
	if _, err := b.session.ChannelMessageSend(channelID, content); err != nil {
		log.Printf("bot: failed to send message to %s: %v", channelID, err)
	}
}

func (b *Bot) handleOrder(ctx context.Context, m *discordgo.MessageCreate, cmd Command) {
	if _, err := b.db.GetUser(ctx, m.Author.ID); err != nil {
		b.reply(m.ChannelID, "I don't know you yet — register with `info <display name> <phone>` first.")
		return
	}
	if err := b.db.AddOrder(ctx, m.Author.ID, cmd.Restaurant, cmd.Item.Name, cmd.Item.Options); err != nil {
		log.Printf("bot: failed to add order for %s: %v", m.Author.ID, err)
		b.reply(m.ChannelID, "Something went wrong saving that order.")
		return
	}
	b.reply(m.ChannelID, fmt.Sprintf("Got it — %s from %s.", cmd.Item.Name, cmd.Restaurant))
}

func (b *Bot) handleChipIn(ctx context.Context, m *discordgo.MessageCreate, cmd Command) {
	if _, err := b.db.GetUser(ctx, m.Author.ID); err != nil {
		b.reply(m.ChannelID, "I don't know you yet — register with `info <display name> <phone>` first.")
		return
	}
	if err := b.db.AddDonor(ctx, m.Author.ID, cmd.Restaurant); err != nil {
		log.Printf("bot: failed to add donor for %s: %v", m.Author.ID, err)
		b.reply(m.ChannelID, "Something went wrong saving that.")
		return
	}
	b.reply(m.ChannelID, fmt.Sprintf("Noted — you're chipping in for %s.", cmd.Restaurant))
}

func (b *Bot) handleForget(ctx context.Context, m *discordgo.MessageCreate) {
	n, err := b.db.ForgetOrders(ctx, m.Author.ID)
	if err != nil {
		log.Printf("bot: failed to forget orders for %s: %v", m.Author.ID, err)
		b.reply(m.ChannelID, "Something went wrong.")
		return
	}
	if n == 0 {
		b.reply(m.ChannelID, "You had nothing pending.")
		return
	}
	b.reply(m.ChannelID, fmt.Sprintf("Forgot %d pending line(s).", n))
}

func (b *Bot) handleStatus(ctx context.Context, m *discordgo.MessageCreate) {
	lines, err := b.db.ListPendingOrders(ctx)
	if err != nil {
		log.Printf("bot: failed to list pending orders: %v", err)
		b.reply(m.ChannelID, "Something went wrong.")
		return
	}
	if len(lines) == 0 {
		b.reply(m.ChannelID, "Nothing is pending for today.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Pending for today:\n")
	for _, l := range lines {
		if l.IsDonor {
			fmt.Fprintf(&sb, "• <@%s> chips in for %s\n", l.UserID, l.Restaurant)
			continue
		}
		fmt.Fprintf(&sb, "• <@%s>: %s from %s", l.UserID, l.Item, l.Restaurant)
		if len(l.Options) > 0 {
			fmt.Fprintf(&sb, " [%s]", strings.Join(l.Options, ", "))
		}
		sb.WriteString("\n")
	}
	b.reply(m.ChannelID, strings.TrimRight(sb.String(), "\n"))
}

func (b *Bot) handleInfo(ctx context.Context, m *discordgo.MessageCreate, cmd Command) {
	if err := b.db.UpsertUser(ctx, m.Author.ID, cmd.DisplayName, cmd.Phone); err != nil {
		log.Printf("bot: failed to upsert user %s: %v", m.Author.ID, err)
		b.reply(m.ChannelID, "Something went wrong saving your info.")
		return
	}
	b.reply(m.ChannelID, fmt.Sprintf("Registered %s (%s).", cmd.DisplayName, cmd.Phone))
}

func (b *Bot) handleStats(ctx context.Context, m *discordgo.MessageCreate) {
	stats, err := b.db.GetUserStats(ctx, m.Author.ID)
	if err != nil {
		log.Printf("bot: failed to load stats for %s: %v", m.Author.ID, err)
		b.reply(m.ChannelID, "Something went wrong.")
		return
	}
	if stats.OrderCount == 0 {
		b.reply(m.ChannelID, "No orders on record for you yet.")
		return
	}
	msg := fmt.Sprintf("You've been in %d order(s) totalling %s and took the delivery call %d time(s).",
		stats.OrderCount, order.Money(stats.TotalCents), stats.CalleeCount)
	if len(stats.TopItems) > 0 {
		msg += "\nUsual suspects: " + strings.Join(stats.TopItems, ", ")
	}
	b.reply(m.ChannelID, msg)
}

func (b *Bot) handleScrape(m *discordgo.MessageCreate) {
	if !b.runMu.TryLock() {
		b.reply(m.ChannelID, "A run or scrape is already in progress; try again later.")
		return
	}
	b.reply(m.ChannelID, "Scraping menus — this takes a while.")
	go func() {
		defer b.runMu.Unlock()
		n, err := b.scrape(context.Background())
		if err != nil {
			log.Printf("bot: scrape failed: %v", err)
			b.reply(m.ChannelID, fmt.Sprintf("Scrape failed after %d restaurant(s): %v", n, err))
			return
		}
		b.reply(m.ChannelID, fmt.Sprintf("Menus refreshed for %d restaurant(s).", n))
	}()
}

func (b *Bot) handleRun(m *discordgo.MessageCreate) {
	b.reply(m.ChannelID, "Placing today's orders now.")
	go b.triggerRun(m.ChannelID)
}

// RunNow starts a run and publishes results to the configured order
// channel; used by the HTTP API trigger.
func (b *Bot) RunNow() {
	if b.cfg.OrderChannelID == "" {
		log.Printf("bot: ORDER_CHANNEL_ID is not set; cannot publish run results")
		return
	}
	b.triggerRun(b.cfg.OrderChannelID)
}

// triggerRun performs one automation run and publishes the results to the
// channel. Used by both the manual run command and the daily scheduler.
func (b *Bot) triggerRun(channelID string) {
	if !b.runMu.TryLock() {
		b.reply(channelID, "A run or scrape is already in progress.")
		return
	}
	defer b.runMu.Unlock()

	res, err := b.runOrders(context.Background())
	if err != nil {
		log.Printf("bot: run failed before producing results: %v", err)
		b.reply(channelID, "The order run failed to start: "+err.Error())
		return
	}
	b.reply(channelID, FormatRunResult(res))
}
