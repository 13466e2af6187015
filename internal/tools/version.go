package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/neuromux/neuromux/internal/build"
)

// Version reports the server build and its effective configuration. No
// upstream call.
func (k *Kernel) Version(_ context.Context) (*Result, error) {
	info := build.GetBuildInfo()

	var sb strings.Builder

	sb.WriteString("neuromux\n")
	sb.WriteString(info.String())
	fmt.Fprintf(&sb, "Providers: %d\n", len(k.registry.Providers()))
	fmt.Fprintf(&sb, "Default model: %s\n", k.cfg.DefaultModel)

	return &Result{
		Status:      StatusSuccess,
		Content:     sb.String(),
		ContentType: "text",
		Metadata: map[string]any{
			"version":       info.Version,
			"go_version":    info.GoVersion,
			"platform":      info.Platform,
			"providers":     len(k.registry.Providers()),
			"default_model": k.cfg.DefaultModel,
		},
	}, nil
}
