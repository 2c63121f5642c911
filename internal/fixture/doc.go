// Package fixture replays checker output recorded in TOML files.
//
// A fixture names one Move source file and lists the annotations a checking
// pass would record for it:
//
//	source = "option.move"
//
//	[[annotation]]
//	kind = "missing_match_arms"
//	anchor = "match (o)"
//	arms = [{ shape = "empty_variant", module = "0x1::m", type = "Opt", variant = "None" }]
//
// Locations are given either by anchor (the n-th occurrence of a snippet,
// spanning it) or by 1-based line and byte column plus a length.
package fixture
