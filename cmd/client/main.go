package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/hezgame/hez/internal/client"
	"github.com/hezgame/hez/internal/game"
	"github.com/hezgame/hez/internal/game/card"
	"github.com/hezgame/hez/internal/logger"
	"github.com/hezgame/hez/internal/protocol"
)

func main() {
	serverAddr := flag.String("server", "localhost:12345", "server address")
	key := flag.String("key", "", "game key")
	name := flag.String("name", "Player", "display name")
	local := flag.Bool("local", false, "play a local match against the AI")
	flag.Parse()

	if err := logger.Init(); err != nil {
		log.Printf("logger init failed: %v", err)
	}
	defer logger.Close()

	if *local {
		runLocal(*name)
		return
	}
	runOnline(*serverAddr, *key, *name)
}

// runOnline mirrors the authoritative server state and routes every typed
// command out as a message; nothing is applied locally.
func runOnline(addr, key, name string) {
	serverURL := fmt.Sprintf("ws://%s/ws", addr)
	mirror := client.NewMirror()

	c := client.NewClient(serverURL, name)
	done := make(chan struct{})
	c.OnMessage = func(msg *protocol.Message) {
		handleServerMessage(mirror, name, msg, done)
	}
	c.OnClose = func() {
		fmt.Println("connection closed")
		close(done)
	}

	if err := c.Connect(); err != nil {
		log.Fatalf("failed to connect to %s: %v", serverURL, err)
	}
	defer c.Close()

	if err := c.Join(key); err != nil {
		log.Fatalf("failed to join: %v", err)
	}
	fmt.Printf("joined %s as %q, waiting for the match...\n", serverURL, name)
	fmt.Println(`commands: "play <suit> <rank>", "draw", "suit <suit>", "quit"`)

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "quit" {
				c.Close()
				return
			}
			intent, err := parseIntent(line)
			if err != nil {
				fmt.Println(err)
				continue
			}
			switch intent.Kind {
			case game.IntentPlayCard:
				err = c.PlayCard(intent.Card)
			case game.IntentDrawCard:
				err = c.DrawCard()
			case game.IntentChooseSuit:
				err = c.ChooseSuit(intent.Suit)
			}
			if err != nil {
				fmt.Println("send failed:", err)
			}
		}
	}()

	<-done
}

func handleServerMessage(mirror *client.Mirror, name string, msg *protocol.Message, done chan struct{}) {
	switch msg.Type {
	case protocol.MsgStateUpdate:
		payload, err := protocol.DecodePayload[protocol.StateUpdatePayload](msg)
		if err != nil {
			logger.LogError("state update: %v", err)
			return
		}
		mirror.Apply(payload.State)
		printState(mirror, name)

	case protocol.MsgMatchStart:
		payload, _ := protocol.DecodePayload[protocol.MatchStartPayload](msg)
		fmt.Printf("match started: %s\n", strings.Join(payload.Players, " vs "))

	case protocol.MsgPlayerJoined:
		payload, _ := protocol.DecodePayload[protocol.PlayerJoinedPayload](msg)
		fmt.Printf("%s joined\n", payload.Name)

	case protocol.MsgPlayerLeft:
		payload, _ := protocol.DecodePayload[protocol.PlayerLeftPayload](msg)
		fmt.Printf("%s left\n", payload.Name)

	case protocol.MsgMatchOver:
		payload, _ := protocol.DecodePayload[protocol.MatchOverPayload](msg)
		if payload.Winner != "" {
			fmt.Printf("match over, winner: %s\n", payload.Winner)
		} else {
			fmt.Printf("match over: %s\n", payload.Reason)
		}
		close(done)

	case protocol.MsgInvalidMove, protocol.MsgError:
		payload, _ := protocol.DecodePayload[protocol.ErrorPayload](msg)
		fmt.Printf("rejected: %s\n", payload.Message)
	}
}

func printState(mirror *client.Mirror, name string) {
	if chooser := mirror.PendingSuitChooser(); chooser >= 0 {
		who := mirror.Snapshot().Players[chooser].Name
		if who == name {
			fmt.Println("you played a 7, choose a suit")
		} else {
			fmt.Printf("waiting for %s to choose a suit\n", who)
		}
		return
	}
	fmt.Printf("top card: %s", mirror.TopCard())
	if forced := mirror.ForcedSuit(); forced != card.NoSuit {
		fmt.Printf(" (forced suit: %s)", forced)
	}
	fmt.Println()
	if mirror.MustDraw() {
		fmt.Printf("rank-2 chain active: %d cards owed\n", mirror.AccumulatedDraw())
	}
	fmt.Print("your hand:")
	for _, c := range mirror.Hand(name) {
		fmt.Printf(" [%s]", c)
	}
	fmt.Println()
	if current := mirror.CurrentPlayer(); current == name {
		fmt.Println("your turn")
	} else {
		fmt.Printf("waiting for %s\n", current)
	}
}

// runLocal plays a two-seat match in process: the human seat feeds an
// intent queue from stdin, the opponent is the AI policy.
func runLocal(name string) {
	eng, err := game.New([]string{name, "AI"}, game.WithAutomated(1))
	if err != nil {
		log.Fatalf("failed to start match: %v", err)
	}

	queue := game.NewHumanIntentQueue()
	defer queue.Close()
	sources := []game.MoveSource{queue, game.NewAIPolicy()}

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "quit" {
				queue.Close()
				return
			}
			intent, err := parseIntent(line)
			if err != nil {
				fmt.Println(err)
				continue
			}
			queue.Push(intent)
		}
	}()

	fmt.Println(`commands: "play <suit> <rank>", "draw", "suit <suit>", "quit"`)
	ctx := context.Background()
	for !eng.IsOver() {
		seat := eng.CurrentPlayerIndex()
		if eng.Phase() == game.PhasePendingSuit {
			seat = eng.PendingSuitChooser()
		}
		if seat == 0 {
			printLocalState(eng, name)
		}

		intent, err := sources[seat].NextIntent(ctx, eng)
		if err != nil {
			fmt.Println("match aborted")
			return
		}
		if err := eng.Apply(intent); err != nil {
			fmt.Println("rejected:", err)
			continue
		}
		if seat == 1 {
			printAIMove(intent)
		}
	}

	fmt.Printf("match over, winner: %s\n", eng.Winner().Name)
}

func printLocalState(eng *game.Engine, name string) {
	if eng.Phase() == game.PhasePendingSuit {
		fmt.Println("you played a 7, choose a suit")
		return
	}
	fmt.Printf("top card: %s", eng.TopCard())
	if forced := eng.ForcedSuit(); forced != card.NoSuit {
		fmt.Printf(" (forced suit: %s)", forced)
	}
	fmt.Println()
	if eng.MustDraw() {
		fmt.Printf("rank-2 chain active: %d cards owed\n", eng.AccumulatedDraw())
	}
	fmt.Print("your hand:")
	for _, c := range eng.Players()[0].Hand {
		fmt.Printf(" [%s]", c)
	}
	fmt.Printf("\ndeck: %d cards\n", eng.DeckSize())
}

func printAIMove(intent game.Intent) {
	switch intent.Kind {
	case game.IntentPlayCard:
		fmt.Printf("AI played %s\n", intent.Card)
	case game.IntentDrawCard:
		fmt.Println("AI drew")
	case game.IntentChooseSuit:
		fmt.Printf("AI chose suit %s\n", intent.Suit)
	}
}

// parseIntent 解析命令行指令
func parseIntent(line string) (game.Intent, error) {
	fields := strings.Fields(strings.ToLower(line))
	switch fields[0] {
	case "draw":
		return game.Intent{Kind: game.IntentDrawCard}, nil

	case "play":
		if len(fields) != 3 {
			return game.Intent{}, fmt.Errorf(`usage: play <suit> <rank>`)
		}
		suit, err := card.SuitFromName(fields[1])
		if err != nil {
			return game.Intent{}, err
		}
		rank, err := strconv.Atoi(fields[2])
		if err != nil {
			return game.Intent{}, fmt.Errorf("bad rank: %q", fields[2])
		}
		return game.Intent{
			Kind: game.IntentPlayCard,
			Card: card.Card{Suit: suit, Rank: card.Rank(rank)},
		}, nil

	case "suit":
		if len(fields) != 2 {
			return game.Intent{}, fmt.Errorf(`usage: suit <suit>`)
		}
		suit, err := card.SuitFromName(fields[1])
		if err != nil {
			return game.Intent{}, err
		}
		return game.Intent{Kind: game.IntentChooseSuit, Suit: suit}, nil
	}
	return game.Intent{}, fmt.Errorf("unknown command: %q", fields[0])
}
