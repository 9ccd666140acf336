// parser.go defines the public parsing pipeline: tokenize, then build the tree.
package bbcode

import "github.com/rs/zerolog"

// DefaultMaxDepth is the nesting limit applied when no WithMaxDepth option is given.
const DefaultMaxDepth = 64

// Document contains the parsed output: the top-level nodes in reading order
// and any structural warnings raised while building them.
type Document struct {
	Nodes    []Node
	Warnings []string
}

// Option configures a parse.
type Option func(*options)

type options struct {
	maxDepth int
	logger   zerolog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		maxDepth: DefaultMaxDepth,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxDepth limits how deeply containers may nest. Opening tags beyond the
// limit are kept as literal text. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithLogger sets the logger that receives structural warnings at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Parse tokenizes input and builds its node tree. Malformed markup never
// produces an error; only internal invariant violations (ErrInternal) do.
func Parse(input string) ([]Node, error) {
	doc, err := ParseDocument(input)
	if err != nil {
		return nil, err
	}
	return doc.Nodes, nil
}

// ParseDocument is Parse with options, also returning structural warnings.
func ParseDocument(input string, opts ...Option) (*Document, error) {
	return Build(NewTokenizer(input).All(), opts...)
}
