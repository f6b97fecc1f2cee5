package main

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/mockdraft/go/internal/ai/decision"
	"github.com/mcdev12/mockdraft/go/internal/ai/profiles"
	"github.com/mcdev12/mockdraft/go/internal/config"
	"github.com/mcdev12/mockdraft/go/internal/draft/events"
	"github.com/mcdev12/mockdraft/go/internal/draft/orchestrator"
	"github.com/mcdev12/mockdraft/go/internal/draft/service"
	"github.com/mcdev12/mockdraft/go/internal/draft/store"
	"github.com/mcdev12/mockdraft/go/internal/models"
	"github.com/mcdev12/mockdraft/go/internal/player"
	"github.com/mcdev12/mockdraft/go/internal/randutil"
)

type Services struct {
	Drafts    *service.Service
	Publisher events.Publisher
}

// Close releases broker connections.
func (s *Services) Close() {
	if err := s.Publisher.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close event publisher")
	}
}

func setupServices(ctx context.Context, cfg config.Config) (*Services, error) {
	// Wire up dependency injection chain
	// Profiles + player pool → Engine → Orchestrator → Service

	registry := profiles.NewRegistry()
	if cfg.AIProfilesFile != "" {
		n, err := registry.LoadCustomProfiles(cfg.AIProfilesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load AI profiles: %w", err)
		}
		log.Info().Int("count", n).Str("file", cfg.AIProfilesFile).Msg("loaded custom AI profiles")
	}

	rng := randutil.New(cfg.AISeed)

	players, err := loadPlayers(ctx, cfg, rng)
	if err != nil {
		return nil, err
	}

	publisher, err := setupPublisher(ctx, cfg)
	if err != nil {
		return nil, err
	}

	clock := clockwork.NewRealClock()
	eng := decision.NewEngine(decision.Config{
		Seed:     cfg.AISeed,
		Clock:    clock,
		ThinkMin: cfg.AIThinkMin,
		ThinkMax: cfg.AIThinkMax,
	})

	var strat orchestrator.AutoPickStrategy = orchestrator.NewAIStrategy(eng)
	if cfg.AutoPickStrategy == config.StrategyBestAvailable {
		strat = orchestrator.BestAvailableStrategy{}
	}

	orch := orchestrator.NewOrchestrator(store.NewMemory(), registry, eng, strat, publisher, clock, rng)

	return &Services{
		Drafts:    service.NewService(orch, registry, players),
		Publisher: publisher,
	}, nil
}

func loadPlayers(ctx context.Context, cfg config.Config, rng *rand.Rand) ([]models.Player, error) {
	if cfg.PlayerPoolURL != "" {
		players, err := player.NewRemoteSource("").FetchPool(ctx, cfg.PlayerPoolURL)
		if err != nil {
			return nil, fmt.Errorf("failed to load player pool: %w", err)
		}
		log.Info().Int("count", len(players)).Str("url", cfg.PlayerPoolURL).Msg("fetched player pool")
		return players, nil
	}

	if cfg.PlayerPoolFile == "" {
		players := player.MockPool(rng)
		log.Info().Int("count", len(players)).Msg("using mock player pool")
		return players, nil
	}

	players, err := player.LoadPool(cfg.PlayerPoolFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load player pool: %w", err)
	}
	log.Info().Int("count", len(players)).Str("file", cfg.PlayerPoolFile).Msg("loaded player pool")
	return players, nil
}

func setupPublisher(ctx context.Context, cfg config.Config) (events.Publisher, error) {
	if cfg.NATSURL == "" {
		log.Info().Msg("NATS_URL not set, logging draft events")
		return events.NewLogPublisher(), nil
	}

	natsCfg := events.DefaultNATSConfig()
	natsCfg.URL = cfg.NATSURL
	natsCfg.SubjectPrefix = cfg.NATSSubjectPrefix

	pub, err := events.NewNATSPublisher(ctx, natsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect event publisher: %w", err)
	}
	log.Info().Str("url", cfg.NATSURL).Str("prefix", cfg.NATSSubjectPrefix).Msg("publishing draft events to NATS")
	return pub, nil
}
