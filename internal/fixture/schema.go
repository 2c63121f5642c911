package fixture

// File is the decoded form of a fixture.
type File struct {
	Source      string       `toml:"source"`
	Annotations []Annotation `toml:"annotation"`
}

// Annotation is one [[annotation]] table. Which keys apply depends on Kind.
type Annotation struct {
	Kind string `toml:"kind"`

	// location
	Anchor     string `toml:"anchor"`
	Occurrence int    `toml:"occurrence"` // 1-based, default 1
	Line       int    `toml:"line"`
	Column     int    `toml:"column"`
	Length     int    `toml:"length"`

	// macro_call
	Module   string   `toml:"module"`
	Name     string   `toml:"name"`
	Method   string   `toml:"method"`
	TypeArgs []string `toml:"type_args"`
	Args     []Arg    `toml:"args"`

	// dot_autocomplete
	Methods []Method `toml:"methods"`
	Fields  []Field  `toml:"fields"`

	// path_autocomplete
	Table   string  `toml:"table"` // "leading" (default) or "member"
	Aliases []Alias `toml:"aliases"`

	// missing_match_arms
	Arms []Arm `toml:"arms"`

	// ellipsis_match_entries
	Ellipsis string   `toml:"ellipsis"` // "positional" or "named"
	Names    []string `toml:"names"`
}

type Arg struct {
	Text string `toml:"text"`
	Type string `toml:"type"`
}

type Method struct {
	Name     string `toml:"name"`
	Module   string `toml:"module"`
	Function string `toml:"function"`
}

type Field struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// Alias kinds: "address", "module", "member", "type_param".
type Alias struct {
	Name    string `toml:"name"`
	Kind    string `toml:"kind"`
	Address string `toml:"address"`
	Module  string `toml:"module"`
	Member  string `toml:"member"`
}

type Arm struct {
	Shape   string   `toml:"shape"`
	Module  string   `toml:"module"`
	Type    string   `toml:"type"`
	Variant string   `toml:"variant"`
	Name    string   `toml:"name"`
	Value   string   `toml:"value"`
	Count   int      `toml:"count"`
	Fields  []string `toml:"fields"`
}
