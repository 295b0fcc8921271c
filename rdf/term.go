// Package rdf is the RDF term model used by the SPARQL driver: IRIs, blank nodes
// and literals, their canonical N-Triples encoding and a strict parser for it.
package rdf

// TermKind identifies the variant of a Term.
type TermKind uint8

const (
	// KindIRI is an absolute IRI reference.
	KindIRI TermKind = iota + 1
	// KindBlankNode is a blank node, scoped to one query result.
	KindBlankNode
	// KindLiteral is a typed or language-tagged literal.
	KindLiteral
)

func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "IRI"
	case KindBlankNode:
		return "BlankNode"
	case KindLiteral:
		return "Literal"
	}
	return "Unknown"
}

// Term is an immutable RDF value. Implementations are comparable value types, so
// two terms are equal exactly when a == b.
type Term interface {
	Kind() TermKind
	// String returns the canonical N-Triples form of the term.
	String() string
	isTerm()
}

// IRI is an IRI reference.
type IRI struct {
	Value string
}

// NewIRI returns an IRI term.
func NewIRI(value string) IRI {
	return IRI{Value: value}
}

// Kind returns KindIRI.
func (i IRI) Kind() TermKind { return KindIRI }

// String returns the IRI enclosed in angle brackets.
func (i IRI) String() string { return formatIRI(i.Value) }

func (IRI) isTerm() {}

// BlankNode is an opaque local node identifier.
type BlankNode struct {
	Label string
}

// NewBlankNode returns a blank node term. Runes a blank node label cannot
// hold are replaced with _xHEX_, so "nodeID://b1" becomes
// "nodeID_x3A__x2F__x2F_b1".
func NewBlankNode(label string) BlankNode {
	return BlankNode{Label: normalizeBlankLabel(label)}
}

// Kind returns KindBlankNode.
func (b BlankNode) Kind() TermKind { return KindBlankNode }

// String returns the label prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.Label }

func (BlankNode) isTerm() {}

// Literal is a lexical form with either a datatype or a language tag. Datatype is
// never empty: plain literals carry xsd:string and language-tagged literals carry
// rdf:langString.
type Literal struct {
	Lexical  string
	Datatype IRI
	Lang     string
}

// NewLiteral returns an xsd:string literal.
func NewLiteral(lexical string) Literal {
	return Literal{Lexical: lexical, Datatype: XSDString}
}

// NewTypedLiteral returns a literal of the given datatype. An empty datatype
// means xsd:string and rdf:langString without a tag is treated the same way.
func NewTypedLiteral(lexical string, datatype IRI) Literal {
	if datatype.Value == "" || datatype == RDFLangString {
		datatype = XSDString
	}
	return Literal{Lexical: lexical, Datatype: datatype}
}

// NewLangLiteral returns a language-tagged literal. The tag is normalized to
// its N-Triples form ("en_US" becomes "en-US"); a tag that is empty after
// normalization yields a plain xsd:string literal.
func NewLangLiteral(lexical, lang string) Literal {
	lang = normalizeLangTag(lang)
	if lang == "" {
		return NewLiteral(lexical)
	}
	return Literal{Lexical: lexical, Datatype: RDFLangString, Lang: lang}
}

// Kind returns KindLiteral.
func (l Literal) Kind() TermKind { return KindLiteral }

// String returns the quoted lexical form with its language tag or datatype suffix.
func (l Literal) String() string { return formatLiteral(l) }

// HasLang reports whether the literal is language-tagged.
func (l Literal) HasLang() bool { return l.Lang != "" }

func (Literal) isTerm() {}

// Triple is one statement of a graph result.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// String returns the N-Triples statement, terminated by " .".
func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}

// Equal reports whether two possibly nil terms are structurally equal.
func Equal(a, b Term) bool {
	return a == b
}
