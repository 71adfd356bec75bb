// README: Interactive console demo of the dialogue engine (no external services).
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"courier/internal/ai"
	"courier/internal/docstore"
	"courier/internal/maps"
	"courier/internal/modules/chat"
	"courier/internal/modules/dialogue"
	"courier/internal/modules/order"
)

func main() {
	ctx := context.Background()
	store := docstore.NewMemory()
	orders := order.NewService(order.NewStore(store))
	chats := chat.NewService(chat.NewStore(store))
	svc := dialogue.NewService(dialogue.Deps{
		Extractor:       ai.NewDemoExtractor(),
		Places:          maps.NewDemoPlaces(),
		Orders:          orders,
		Chats:           chats,
		DefaultLocation: "downtown Toronto",
	})

	fmt.Println("courier chat demo. Type a message, or 'select <suggestionType> <text>' to pick a chip. Ctrl-D quits.")

	var orderID, sessionID string

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		req := dialogue.TurnRequest{
			UserID:      "demo_user",
			Message:     line,
			MessageType: dialogue.MessageTypeText,
			OrderID:     orderID,
			SessionID:   sessionID,
		}
		if rest, ok := strings.CutPrefix(line, "select "); ok {
			parts := strings.SplitN(rest, " ", 2)
			if len(parts) == 2 {
				req.MessageType = dialogue.MessageTypeSelection
				req.SuggestionType = dialogue.SuggestionType(parts[0])
				req.Message = parts[1]
			}
		}

		resp, err := svc.HandleTurn(ctx, req)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}

		fmt.Printf("assistant: %s\n", resp.Reply)
		for _, sug := range resp.Suggestions {
			if sug.Address != "" {
				fmt.Printf("  [%s] %s (%s)\n", resp.SuggestionType, sug.Name, sug.Address)
			} else {
				fmt.Printf("  [%s] %s\n", resp.SuggestionType, sug.Name)
			}
		}

		orderID = resp.OrderID
		sessionID = resp.SessionID
	}
}
