// README: Entry point; loads config, wires infra and module services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"courier/internal/ai"
	"courier/internal/config"
	"courier/internal/docstore"
	httptransport "courier/internal/http"
	"courier/internal/infra"
	"courier/internal/maps"
	"courier/internal/modules/chat"
	"courier/internal/modules/dialogue"
	"courier/internal/modules/order"
	"courier/internal/modules/usage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Firebase gives us both the token verifier and the Firestore-backed
	// document store. Without a project id the API runs in demo mode:
	// in-memory documents and header-based identity.
	var store docstore.Store = docstore.NewMemory()
	var verifier infra.TokenVerifier
	if cfg.Firebase.ProjectID != "" {
		app, err := infra.NewFirebaseApp(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Fatalf("firebase init: %v", err)
		}
		verifier, err = app.Verifier(ctx)
		if err != nil {
			log.Fatalf("firebase auth: %v", err)
		}
		fsClient, err := app.Firestore(ctx)
		if err != nil {
			log.Fatalf("firestore init: %v", err)
		}
		defer fsClient.Close()
		store = docstore.NewFirestore(fsClient)
	} else {
		log.Print("no firebase project configured; running in demo mode")
	}

	var extractor ai.Extractor
	switch cfg.AI.Provider {
	case "demo":
		extractor = ai.NewDemoExtractor()
	default:
		gemini, err := ai.NewGeminiExtractor(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		extractor = gemini
	}

	var places dialogue.PlaceSearcher = maps.NewDemoPlaces()
	if cfg.Maps.APIKey != "" {
		var cache *redis.Client
		if cfg.Redis.Addr != "" {
			cache = infra.NewRedis(cfg.Redis.Addr)
		}
		svc, err := maps.NewPlacesService(cfg.Maps.APIKey, cache)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		places = svc
	}

	// The call quota only runs when postgres is configured.
	var quota dialogue.QuotaConsumer
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		quota = usage.NewService(usage.NewStore(dbPool))
	}

	orderSvc := order.NewService(order.NewStore(store))
	chatSvc := chat.NewService(chat.NewStore(store))
	dialogueSvc := dialogue.NewService(dialogue.Deps{
		Extractor:       extractor,
		Places:          places,
		Orders:          orderSvc,
		Chats:           chatSvc,
		Quota:           quota,
		DefaultLocation: cfg.Chat.DefaultLocation,
	})

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Dialogue: dialogueSvc,
		Chats:    chatSvc,
		Verifier: verifier,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
