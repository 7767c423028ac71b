package catalog

import (
	_ "embed"
	"sync"

	"github.com/goliatone/go-styleprops/internal/hydrate"
)

//go:embed builtin.yaml
var builtinYAML []byte

var loadBuiltin = sync.OnceValues(func() (*Catalog, error) {
	return parse(hydrate.Context{Source: "builtin.yaml", Format: string(FormatYAML)}, builtinYAML, nil)
})

// Builtin returns the catalog of common select properties shipped with the
// module.
func Builtin(opts ...Option) (*Catalog, error) {
	base, err := loadBuiltin()
	if err != nil {
		return nil, err
	}
	return New(base.Definitions(), opts...)
}
