package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// IDE annotations
	IDEInfo              Code = 1000
	IDEMacroCallInfo     Code = 1001
	IDEExpandedLambda    Code = 1002
	IDEAutocomplete      Code = 1003
	IDEMissingMatchArms  Code = 1004
	IDEEllipsisExpansion Code = 1005

	// Ошибки I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	IDEInfo:              "IDE information",
	IDEMacroCallInfo:     "macro call info",
	IDEExpandedLambda:    "expanded lambda",
	IDEAutocomplete:      "autocomplete",
	IDEMissingMatchArms:  "missing match arms",
	IDEEllipsisExpansion: "ellipsis expansion",
	IOLoadFileError:      "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("IDE%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
