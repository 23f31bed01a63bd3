// Package sigimsae searches a catalog of Korean musical ornaments (시김새)
// with Hangul-aware fuzzy matching.
//
// Queries are folded (lower-case, no whitespace, Hangul split into jamo) and
// compared against each record's name, description, instrument and category
// with a windowed edit-distance score. A query made only of leading consonants
// such as "ㅇㅅㄱㄴ" is compared against the fields' leading consonants instead.
//
//	engine, _ := sigimsae.New(
//	    sigimsae.WithCatalogFile("data/ornaments.xml"),
//	    sigimsae.WithSQLite("var/history.db"),
//	)
//	defer engine.Close()
//
//	results, _ := engine.Search(ctx, "이산가능", nil)
//	hits, _ := engine.Query("꾸밈").Mode(sigimsae.ModeSubstring).Instrument("장구").Do(ctx)
//
// Non-blank queries run through Search are remembered in a bounded search
// history (most recent first), persisted in memory, SQLite, Redis or Valkey.
package sigimsae
