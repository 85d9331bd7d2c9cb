package tool

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	"github.com/claraeverett/Sierra-Agent/agent/prompt"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// Deps carries every external boundary a tool may need. Nil members are
// allowed; tools that need a missing dependency fail gracefully with a
// user-facing template instead of panicking.
type Deps struct {
	Catalog contractx.Catalog
	Model   contractx.TextModel
	Weather contractx.WeatherService
	Mailer  contractx.Mailer
	Search  contractx.VectorSearcher

	// Now supplies the clock; defaults to time.Now. Injected so time-window
	// promotions are testable.
	Now func() time.Time
}

type registry struct {
	tools   map[string]contractx.Tool
	general contractx.Tool
}

// NewRegistry builds the immutable intent-to-tool table. Lookup keys are
// lowercased tool names, so classification output is matched
// case-insensitively.
func NewRegistry(deps Deps) contractx.Registry {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	general := &generalTool{}
	all := []contractx.Tool{
		general,
		&orderStatusTool{catalog: deps.Catalog},
		&resolveOrderIssueTool{},
		&earlyRisersTool{now: deps.Now},
		&hikingTool{model: deps.Model, weather: deps.Weather},
		&productInventoryTool{catalog: deps.Catalog},
		&productRecommendationTool{catalog: deps.Catalog, model: deps.Model, search: deps.Search},
		&faqTool{search: deps.Search},
		&humanHelpTool{model: deps.Model, mailer: deps.Mailer},
	}

	tools := make(map[string]contractx.Tool, len(all))
	for _, t := range all {
		tools[strings.ToLower(t.Name())] = guarded{t}
	}
	return &registry{tools: tools, general: guarded{general}}
}

func (r *registry) Lookup(intent statex.Intent) (contractx.Tool, bool) {
	t, ok := r.tools[strings.ToLower(string(intent))]
	return t, ok
}

func (r *registry) General() contractx.Tool {
	return r.general
}

// guarded converts a tool panic into a failed ToolResult so one faulty tool
// cannot take down the whole turn.
type guarded struct {
	contractx.Tool
}

func (g guarded) Execute(ctx context.Context, params contractx.ToolParams, sess *statex.Session) (result contractx.ToolResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("tool", g.Name()).Any("panic", r).Msg("tool panicked")
			result = contractx.ToolResult{
				Success:        false,
				PromptTemplate: prompt.GeneralResponse,
			}
		}
	}()
	return g.Tool.Execute(ctx, params, sess)
}
