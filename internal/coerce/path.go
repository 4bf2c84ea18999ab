package coerce

import language "github.com/hanpama/gqlcoerce/internal/language"

// Path is a persistent list of path segments. Extending a path never
// modifies it, so sibling branches can share their common prefix. The nil
// *Path is the root.
type Path struct {
	prev *Path
	key  language.PathElement
}

func (p *Path) WithKey(name string) *Path {
	return &Path{prev: p, key: language.PathName(name)}
}

func (p *Path) WithIndex(i int) *Path {
	return &Path{prev: p, key: language.PathIndex(i)}
}

func (p *Path) Len() int {
	n := 0
	for cur := p; cur != nil; cur = cur.prev {
		n++
	}
	return n
}

// AsAST flattens the path, root first.
func (p *Path) AsAST() language.Path {
	n := p.Len()
	if n == 0 {
		return nil
	}
	out := make(language.Path, n)
	for cur := p; cur != nil; cur = cur.prev {
		n--
		out[n] = cur.key
	}
	return out
}

func (p *Path) String() string {
	return p.AsAST().String()
}
