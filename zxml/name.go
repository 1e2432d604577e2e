package zxml

// Name is a raw XML name as it appeared in the source: an optional prefix
// and a local part, split only syntactically on ':'. The core parser does
// not resolve namespaces; package ns layers QName resolution on top (see
// ns.QName).
type Name struct {
	Prefix string
	Local  string
}

// String renders the name the way it appeared in the source.
func (n Name) String() string {
	if n.Prefix == "" {
		return n.Local
	}
	return n.Prefix + ":" + n.Local
}

// parseName splits a raw name token on its first ':'. Adapted from the
// teacher's parseName (fastxml.go): bored-engineer/fastxml always treats
// everything before the first ':' as the namespace "Space" regardless of
// whether it is a legal NCName; zxml does the same split here and leaves
// NCName-legality checking to the caller, since the Name production itself
// allows ':' as an ordinary NameChar in XML 1.0 (namespaces are a separate,
// optional convention layered on top - see ns).
func parseName(s string) Name {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return Name{Prefix: s[:i], Local: s[i+1:]}
		}
	}
	return Name{Local: s}
}
