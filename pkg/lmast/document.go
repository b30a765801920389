package lmast

import (
	"github.com/yaklabco/langmark/pkg/header"
	"github.com/yaklabco/langmark/pkg/links"
)

// Document is the result of parsing one langmark source. It is not modified
// after parsing completes.
type Document struct {
	Root   *Node
	Header *header.Header
	Links  *links.Registry
}

// NewDocument creates a document with an empty root, header and registry.
func NewDocument() *Document {
	return &Document{
		Root:   NewBlock(NodeDocument, 0, 0),
		Header: header.New(),
		Links:  links.NewRegistry(),
	}
}
