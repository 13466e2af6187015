// Package server exposes the tool kernel over the Model Context Protocol on
// stdio. Nothing here may write to stdout except the protocol stream; logs go
// to stderr via the log package.
package server

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/semaphore"

	"github.com/neuromux/neuromux/internal/build"
	"github.com/neuromux/neuromux/internal/log"
	"github.com/neuromux/neuromux/internal/tools"
)

const instructions = "This server brokers requests to AI model providers. " +
	"Model-backed tools accept a continuation_id to keep talking in an existing " +
	"conversation; responses end with a block naming the id and remaining " +
	"turns. Pass model: \"auto\" (or configure DEFAULT_MODEL=auto) to let the " +
	"server pick a model per tool. Use listmodels to see what is available."

// Server owns the MCP session and the tool registrations.
type Server struct {
	mcp    *mcp.Server
	sem    *semaphore.Weighted
	kernel *tools.Kernel
}

// New builds the MCP server and registers every tool.
func New(kernel *tools.Kernel, cfg Config) (*Server, error) {
	cfg = cfg.withDefaults()

	srv := &Server{
		mcp: mcp.NewServer(
			&mcp.Implementation{Name: cfg.Name, Version: build.Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
		sem:    semaphore.NewWeighted(int64(cfg.MaxConcurrency)),
		kernel: kernel,
	}

	if err := srv.registerTools(); err != nil {
		return nil, err
	}

	return srv, nil
}

// Run serves the stdio transport until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context) error {
	log.Info(ctx, "serving MCP on stdio",
		log.String("version", build.Version),
		log.Int("providers", len(s.kernel.Registry().Providers())))

	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

type emptyInput struct{}

func (s *Server) registerTools() error {
	k := s.kernel

	regs := []func() error{
		func() error {
			return register(s, "chat",
				"Collaborative chat with an AI model: questions, brainstorming, second opinions.",
				k.Chat)
		},
		func() error {
			return register(s, "thinkdeep",
				"Extended reasoning on a hard problem, with optional context and focus areas.",
				k.ThinkDeep)
		},
		func() error {
			return register(s, "codereview",
				"Professional review of the given files: bugs, security, performance, style.",
				k.CodeReview)
		},
		func() error {
			return register(s, "debug",
				"Root-cause analysis from an error description, stack trace and relevant files.",
				k.Debug)
		},
		func() error {
			return register(s, "analyze",
				"General code and architecture analysis of the given files.",
				k.Analyze)
		},
		func() error {
			return register(s, "precommit",
				"Validation of pending changes against their stated intent before committing.",
				k.Precommit)
		},
		func() error {
			return register(s, "testgen",
				"Test generation for the given code, following provided test conventions.",
				k.TestGen)
		},
		func() error {
			return register(s, "refactor",
				"Refactoring analysis: code smells, decomposition, modernization, organization.",
				k.Refactor)
		},
		func() error {
			return register(s, "tracer",
				"Call-path or dependency tracing for a named function, class or module.",
				k.Tracer)
		},
		func() error {
			return register(s, "consensus",
				"Ask several models the same question and get a per-model report.",
				k.Consensus)
		},
		func() error {
			return register(s, "planner",
				"Record sequential planning steps into a continuable conversation. No model call.",
				k.Planner)
		},
		func() error {
			return register(s, "seer",
				"Dedicated image analysis with a vision-capable model.",
				k.Seer)
		},
		func() error {
			return register(s, "listmodels",
				"List configured providers, their models, aliases and capabilities.",
				func(ctx context.Context, _ *emptyInput) (*tools.Result, error) {
					return k.ListModels(ctx)
				})
		},
		func() error {
			return register(s, "version",
				"Report server version, build information and configuration summary.",
				func(ctx context.Context, _ *emptyInput) (*tools.Result, error) {
					return k.Version(ctx)
				})
		},
	}

	for _, reg := range regs {
		if err := reg(); err != nil {
			return err
		}
	}

	return nil
}

// register wires one kernel method as an MCP tool with an explicit input
// schema. The semaphore bounds concurrent execution across all tools.
func register[In any](s *Server, name, description string, run func(context.Context, *In) (*tools.Result, error)) error {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		return fmt.Errorf("input schema for %s: %w", name, err)
	}

	mcp.AddTool(s.mcp,
		&mcp.Tool{Name: name, Description: description, InputSchema: schema},
		func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
			if err := s.sem.Acquire(ctx, 1); err != nil {
				return nil, nil, err
			}
			defer s.sem.Release(1)

			result, err := run(ctx, &in)
			if err != nil {
				log.Error(ctx, "tool failed", log.String("tool", name), log.Cause(err))

				return errorResult(name, err), nil, nil
			}

			return toCallToolResult(result), nil, nil
		})

	return nil
}
