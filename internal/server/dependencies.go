package server

import (
	"context"
	"os"
	"time"

	"go.uber.org/fx"

	"github.com/neuromux/neuromux/conf"
	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/conversation"
	"github.com/neuromux/neuromux/internal/log"
	"github.com/neuromux/neuromux/internal/pkg/xcache"
	"github.com/neuromux/neuromux/internal/pkg/xredis"
	"github.com/neuromux/neuromux/internal/provider"
	"github.com/neuromux/neuromux/internal/provider/custom"
	"github.com/neuromux/neuromux/internal/provider/gemini"
	"github.com/neuromux/neuromux/internal/provider/openai"
	"github.com/neuromux/neuromux/internal/provider/openrouter"
	"github.com/neuromux/neuromux/internal/restriction"
	"github.com/neuromux/neuromux/internal/tools"
)

// Module assembles everything between the loaded configuration and the MCP
// surface. The caller supplies conf.Config (usually via fx.Provide(conf.Load)).
var Module = fx.Module("neuromux",
	fx.Provide(
		ProvideRestrictions,
		ProvideProviders,
		ProvideRegistry,
		ProvideThreadCache,
		ProvideStore,
		ProvideKernel,
		ProvideServer,
	),
)

func ProvideRestrictions(cfg conf.Config) *restriction.Service {
	return restriction.Parse(context.Background(), map[catalog.ProviderType]string{
		catalog.ProviderGoogle:     cfg.Gemini.AllowedModels,
		catalog.ProviderOpenAI:     cfg.OpenAI.AllowedModels,
		catalog.ProviderOpenRouter: cfg.OpenRouter.AllowedModels,
	})
}

// ProvideProviders builds one adapter per configured credential. Order does
// not matter here; the registry sorts by priority.
func ProvideProviders(cfg conf.Config, restrictions *restriction.Service) ([]provider.Provider, error) {
	var providers []provider.Provider

	if cfg.Gemini.Configured() {
		p, err := gemini.New(gemini.Config{APIKey: cfg.Gemini.APIKey}, restrictions)
		if err != nil {
			return nil, err
		}

		providers = append(providers, p)
	}

	if cfg.OpenAI.Configured() {
		p, err := openai.New(openai.Config{APIKey: cfg.OpenAI.APIKey}, restrictions)
		if err != nil {
			return nil, err
		}

		providers = append(providers, p)
	}

	if cfg.Custom.Configured() {
		p, err := custom.New(custom.Config{
			BaseURL:   cfg.Custom.BaseURL,
			APIKey:    cfg.Custom.APIKey,
			ModelName: cfg.Custom.ModelName,
		}, restrictions)
		if err != nil {
			return nil, err
		}

		providers = append(providers, p)
	}

	if cfg.OpenRouter.Configured() {
		p, err := openrouter.New(openrouter.Config{APIKey: cfg.OpenRouter.APIKey}, restrictions)
		if err != nil {
			return nil, err
		}

		providers = append(providers, p)
	}

	return providers, nil
}

func ProvideRegistry(cfg conf.Config, providers []provider.Provider) (*provider.Registry, error) {
	var opts []provider.RegistryOption
	if cfg.DefaultVisionModel != "" {
		opts = append(opts, provider.WithDefaultVisionModel(cfg.DefaultVisionModel))
	}

	return provider.NewRegistry(context.Background(), providers, opts...)
}

// ProvideThreadCache picks redis when REDIS_URL is set, memory otherwise. An
// unreachable configured redis is a startup failure, not a silent fallback.
func ProvideThreadCache(cfg conf.Config) (xcache.Cache[conversation.Thread], error) {
	xcfg := xcache.Config{Mode: xcache.ModeMemory}
	if cfg.RedisURL != "" {
		xcfg = xcache.Config{
			Mode:  xcache.ModeRedis,
			Redis: xredis.Config{URL: cfg.RedisURL},
		}
	}

	ttl := time.Duration(cfg.Conversation.TTLHours) * time.Hour
	xcfg.Memory = xcache.MemoryConfig{Expiration: ttl, CleanupInterval: ttl / 2}

	return xcache.NewFromConfig[conversation.Thread](context.Background(), xcfg)
}

func ProvideStore(cfg conf.Config, cache xcache.Cache[conversation.Thread]) *conversation.Store {
	return conversation.NewStore(cache,
		time.Duration(cfg.Conversation.TTLHours)*time.Hour,
		cfg.Conversation.MaxTurns)
}

func ProvideKernel(cfg conf.Config, registry *provider.Registry, store *conversation.Store) *tools.Kernel {
	return tools.NewKernel(registry, store, tools.Config{
		DefaultModel:        cfg.DefaultModel,
		DefaultThinkingMode: cfg.DefaultThinkingMode,
		PromptSizeLimit:     cfg.PromptSizeLimit,
	})
}

func ProvideServer(cfg conf.Config, kernel *tools.Kernel) (*Server, error) {
	return New(kernel, Config{MaxConcurrency: cfg.MaxConcurrency})
}

// Run starts the fx application and serves MCP on stdio until the client
// disconnects or the process is signaled.
func Run(opts ...fx.Option) {
	app := fx.New(
		append([]fx.Option{
			fx.NopLogger,
			Module,
			fx.Invoke(func(cfg conf.Config) error {
				log.New(cfg.Log)
				return conf.Validate(cfg)
			}),
			fx.Invoke(func(lc fx.Lifecycle, srv *Server, shutdowner fx.Shutdowner) {
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						go func() {
							if err := srv.Run(context.Background()); err != nil {
								log.Error(context.Background(), "mcp server stopped", log.Cause(err))
								os.Exit(1)
							}

							// Client closed the stream; wind down cleanly.
							_ = shutdowner.Shutdown()
						}()

						return nil
					},
					OnStop: func(context.Context) error {
						_ = log.Sync()
						return nil
					},
				})
			}),
		}, opts...)...,
	)
	app.Run()
}
