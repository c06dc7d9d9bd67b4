package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/mutant/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

// FormatEnv selects the log format. The value "json" enables JSON output.
const FormatEnv = "MUTANT_LOG_FORMAT"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			lg := New()
			if os.Getenv(FormatEnv) == "json" {
				lg.(*Logger).SetJSON(true)
			}
			return lg, nil
		},
	})
}
