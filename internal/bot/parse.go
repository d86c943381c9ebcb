package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ajay-gandhi/alfred4.0/internal/order"
)

type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdOrder
	CmdForget
	CmdStatus
	CmdInfo
	CmdChipIn
	CmdStats
	CmdScrape
	CmdRun
	CmdHelp
)

// Command is one parsed chat instruction. Item and restaurant names stay as
// free text; nothing is resolved against the catalog until submission.
type Command struct {
	Kind        CommandKind
	Item        order.ItemSelection
	Restaurant  string
	DisplayName string
	Phone       string
}

var errEmptyCommand = errors.New("empty command")

// Parse reads one instruction, already stripped of the bot mention/prefix.
//
//	order <item> [option, option] from <restaurant>
//	chip in for <restaurant>
//	info <display name> <phone>
//	forget | status | stats | scrape | run | help
func Parse(text string) (Command, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Command{}, errEmptyCommand
	}
	word := text
	rest := ""
	if i := strings.IndexByte(text, ' '); i >= 0 {
		word, rest = text[:i], strings.TrimSpace(text[i+1:])
	}

	switch strings.ToLower(word) {
	case "order":
		return parseOrder(rest)
	case "forget":
		return Command{Kind: CmdForget}, nil
	case "status":
		return Command{Kind: CmdStatus}, nil
	case "stats":
		return Command{Kind: CmdStats}, nil
	case "scrape":
		return Command{Kind: CmdScrape}, nil
	case "run":
		return Command{Kind: CmdRun}, nil
	case "help":
		return Command{Kind: CmdHelp}, nil
	case "info":
		return parseInfo(rest)
	case "chip":
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "in"))
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "for"))
		if rest == "" {
			return Command{}, fmt.Errorf("chip in for which restaurant?")
		}
		return Command{Kind: CmdChipIn, Restaurant: rest}, nil
	}
	return Command{}, fmt.Errorf("unknown command %q; try help", word)
}

// parseOrder splits "<item> [opt, opt] from <restaurant>". The last " from "
// wins so dishes like "bacon from heaven" still parse when quoted with a
// restaurant after them.
func parseOrder(rest string) (Command, error) {
	idx := strings.LastIndex(strings.ToLower(rest), " from ")
	if idx < 0 {
		return Command{}, fmt.Errorf("order what from where? (order <item> from <restaurant>)")
	}
	itemPart := strings.TrimSpace(rest[:idx])
	restaurant := strings.TrimSpace(rest[idx+len(" from "):])
	if itemPart == "" || restaurant == "" {
		return Command{}, fmt.Errorf("order what from where? (order <item> from <restaurant>)")
	}

	item := order.ItemSelection{Name: itemPart}
	if open := strings.IndexByte(itemPart, '['); open >= 0 {
		closeIdx := strings.IndexByte(itemPart, ']')
		if closeIdx < open {
			return Command{}, fmt.Errorf("unclosed option list; use [option, option]")
		}
		for _, opt := range strings.Split(itemPart[open+1:closeIdx], ",") {
			if opt = strings.TrimSpace(opt); opt != "" {
				item.Options = append(item.Options, opt)
			}
		}
		item.Name = strings.TrimSpace(itemPart[:open] + itemPart[closeIdx+1:])
	}
	if item.Name == "" {
		return Command{}, fmt.Errorf("order what from where? (order <item> from <restaurant>)")
	}
	return Command{Kind: CmdOrder, Item: item, Restaurant: restaurant}, nil
}

func parseInfo(rest string) (Command, error) {
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return Command{}, fmt.Errorf("usage: info <display name> <phone>")
	}
	phone := fields[len(fields)-1]
	name := strings.Join(fields[:len(fields)-1], " ")
	if !looksLikePhone(phone) {
		return Command{}, fmt.Errorf("%q does not look like a phone number", phone)
	}
	return Command{Kind: CmdInfo, DisplayName: name, Phone: phone}, nil
}

func looksLikePhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '-' || r == '.' || r == '+' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 7
}
