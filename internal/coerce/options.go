package coerce

// DefaultMaxDepth bounds how deep coercion descends into nested values,
// defaults and literals.
const DefaultMaxDepth = 64

type Options struct {
	// MaxDepth bounds nesting. Self-referential input types with defaults
	// can otherwise expand without end.
	MaxDepth int

	// Suggest proposes declared names close to an unknown one. nil disables
	// suggestions.
	Suggest SuggestFunc

	// OnError, if set, receives each error as it is recorded.
	OnError func(*Error)
}

type Option func(*Options)

// WithMaxDepth sets Options.MaxDepth. Values below 1 restore
// DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = DefaultMaxDepth
		}
		o.MaxDepth = n
	}
}

func WithSuggestions(fn SuggestFunc) Option   { return func(o *Options) { o.Suggest = fn } }
func WithErrorHandler(fn func(*Error)) Option { return func(o *Options) { o.OnError = fn } }

func defaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth, Suggest: SuggestionList}
}
