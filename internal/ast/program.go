package ast

import "github.com/covenant-lang/covenant/internal/source"

// Program is the root of one compiled file's tree: an ordered list of
// top-level declarations plus the file it was parsed from.
type Program struct {
	File  source.FileID
	Decls []DeclID
}
