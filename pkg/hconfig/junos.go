package hconfig

import (
	"strings"
)

// ParseJunos parses Junos-style text. Text whose first significant line
// (skipping blank and "#" lines) ends in "{", ";" or "}" is treated as
// braced and first translated to flat set statements by the braced
// translator (§4.1); anything else goes to the flat "set "/"delete "
// parser directly.
func ParseJunos(driver *Driver, text string) (*Node, error) {
	text = applyFullTextSub(driver, text)
	if looksBraced(text) {
		flat, err := bracedToFlat(text)
		if err != nil {
			return nil, err
		}
		return parseJunosFlatLines(driver, flat)
	}
	return parseJunosFlatLines(driver, splitLines(text))
}

func looksBraced(text string) bool {
	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return strings.HasSuffix(trimmed, "{") || strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "}")
	}
	return false
}

func parseJunosFlatLines(driver *Driver, lines []string) (*Node, error) {
	root := NewRoot(driver)

	for lineNo, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		sub, dropped := applyPerLineSub(driver, line)
		if dropped {
			continue
		}
		line = strings.TrimSpace(sub)
		if line == "" {
			continue
		}

		var negated bool
		switch {
		case strings.HasPrefix(line, "set "):
			negated = false
			line = line[len("set "):]
		case strings.HasPrefix(line, "delete "):
			negated = true
			line = line[len("delete "):]
		default:
			return nil, &ParseError{Line: lineNo + 1, Text: line, Msg: "expected 'set ' or 'delete ' prefix"}
		}

		tokens := tokenizeJunos(line)
		if len(tokens) == 0 {
			continue
		}

		cur := root
		for _, tok := range tokens {
			if cur.allowsDuplicateChildren() {
				cur = cur.AddChild(tok)
			} else {
				cur = cur.GetOrAddChild(tok)
			}
			cur.Negated = negated
		}
	}

	for _, cb := range driver.PostLoadCallbacks {
		cb(root)
	}
	assignOrderWeights(driver, root)
	return root, nil
}

// tokenizeJunos splits on whitespace, treating "quoted strings" as a
// single atomic token (quotes are retained, matching what a device would
// echo back) and dropping a single trailing semicolon.
func tokenizeJunos(line string) []string {
	line = strings.TrimSuffix(strings.TrimSpace(line), ";")
	var tokens []string
	var b strings.Builder
	inQuotes := false
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			b.WriteRune(r)
		case r == ' ' && !inQuotes:
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// ParseSetCommand parses a single "set ..." or "delete ..." line into its
// token path, for interactive set-style command entry.
func ParseSetCommand(line string) ([]string, bool, error) {
	line = strings.TrimSpace(line)
	var negated bool
	switch {
	case strings.HasPrefix(line, "set "):
		line = line[len("set "):]
	case strings.HasPrefix(line, "delete "):
		negated = true
		line = line[len("delete "):]
	default:
		return nil, false, &ParseError{Text: line, Msg: "expected 'set ' or 'delete ' prefix"}
	}
	return tokenizeJunos(line), negated, nil
}

// bracedToFlat translates Junos's braced grammar ("name { ... }" blocks
// and "name value;" leaves) into flat "set ..." statements, one per
// leaf, by walking nested braces and accumulating the path prefix. A
// stack of push-lengths records how many tokens each "{" contributed to
// prefix, so the matching "}" pops exactly that many back off.
func bracedToFlat(text string) ([]string, error) {
	toks := lexBraced(text)
	var out []string
	var prefix []string
	var pushLens []int
	i := 0
	for i < len(toks) {
		switch toks[i] {
		case "{", "}", ";":
			i++
			continue
		}
		// Gather the statement tokens until ';', '{' or '}'.
		var stmt []string
		for i < len(toks) && toks[i] != ";" && toks[i] != "{" && toks[i] != "}" {
			stmt = append(stmt, toks[i])
			i++
		}
		if i >= len(toks) {
			return nil, &ParseError{Text: strings.Join(stmt, " "), Msg: "unterminated statement"}
		}
		switch toks[i] {
		case ";":
			out = append(out, "set "+strings.Join(append(append([]string{}, prefix...), stmt...), " "))
			i++
		case "{":
			prefix = append(prefix, stmt...)
			pushLens = append(pushLens, len(stmt))
			i++
		case "}":
			if len(pushLens) == 0 {
				return nil, &ParseError{Text: "}", Msg: "unbalanced braces"}
			}
			n := pushLens[len(pushLens)-1]
			pushLens = pushLens[:len(pushLens)-1]
			prefix = prefix[:len(prefix)-n]
			i++
		}
	}
	if len(pushLens) != 0 {
		return nil, &ParseError{Text: "", Msg: "unbalanced braces: unclosed block"}
	}
	return out, nil
}

func lexBraced(text string) []string {
	var toks []string
	var b strings.Builder
	inQuotes := false
	flush := func() {
		if b.Len() > 0 {
			toks = append(toks, b.String())
			b.Reset()
		}
	}
	inComment := false
	for _, r := range text {
		switch {
		case inComment:
			if r == '\n' {
				inComment = false
			}
		case r == '"':
			inQuotes = !inQuotes
			b.WriteRune(r)
		case !inQuotes && (r == '{' || r == '}' || r == ';'):
			flush()
			toks = append(toks, string(r))
		case !inQuotes && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()
		case !inQuotes && r == '#':
			// An unquoted "#" starts a comment: the rest of the line is
			// skipped.
			flush()
			inComment = true
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return toks
}
