package styleprops

import (
	"log/slog"

	"github.com/goliatone/go-styleprops/pkg/activity"
)

// PropertyOption configures a property at construction time.
type PropertyOption func(*propertyConfig)

type propertyConfig struct {
	logger          *slog.Logger
	translator      Translator
	evaluator       Evaluator
	programCache    ProgramCache
	functions       *FunctionRegistry
	evaluatorLogger EvaluatorLogger
	activityHooks   activity.Hooks
	activityConfig  activity.Config
}

func applyPropertyOptions(opts []PropertyOption) propertyConfig {
	cfg := propertyConfig{
		activityConfig: activity.Config{Enabled: true},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithLogger routes property diagnostics to logger.
func WithLogger(logger *slog.Logger) PropertyOption {
	return func(cfg *propertyConfig) {
		cfg.logger = logger
	}
}

// WithTranslator sets the localization lookup used for option labels.
func WithTranslator(translator Translator) PropertyOption {
	return func(cfg *propertyConfig) {
		cfg.translator = translator
	}
}

// WithEvaluator configures the evaluator used for `condition` expressions.
func WithEvaluator(e Evaluator) PropertyOption {
	return func(cfg *propertyConfig) {
		cfg.evaluator = e
	}
}

// WithProgramCache registers a program cache for the default evaluator.
func WithProgramCache(cache ProgramCache) PropertyOption {
	return func(cfg *propertyConfig) {
		cfg.programCache = cache
	}
}

// WithEvaluatorLogger attaches an evaluator logger to the property.
func WithEvaluatorLogger(logger EvaluatorLogger) PropertyOption {
	return func(cfg *propertyConfig) {
		if logger == nil {
			cfg.evaluatorLogger = noopEvaluatorLogger{}
			return
		}
		cfg.evaluatorLogger = logger
	}
}

func (p *Property) evaluatorLogger() EvaluatorLogger {
	if p.cfg.evaluatorLogger != nil {
		return p.cfg.evaluatorLogger
	}
	return noopEvaluatorLogger{}
}
