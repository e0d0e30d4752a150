package cli

import (
	"strings"

	"github.com/psaab/hierconfig/pkg/cmdtree"
)

// Do implements readline.AutoCompleter, dispatching to the operational or
// configuration-mode command tree depending on the store's current mode.
func (c *CLI) Do(line []rune, pos int) (newLine [][]rune, length int) {
	text := string(line[:pos])
	words := strings.Fields(text)
	partial := ""
	if len(words) > 0 && !strings.HasSuffix(text, " ") {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}

	tree := cmdtree.OperationalTree
	if c.store.InConfigMode() {
		tree = cmdtree.ConfigTopLevel
	}

	candidates := cmdtree.CompleteFromTree(tree, words, partial, c.store)
	newLine = make([][]rune, 0, len(candidates))
	for _, cand := range candidates {
		newLine = append(newLine, []rune(strings.TrimPrefix(cand, partial)))
	}
	return newLine, len(partial)
}

// helpCandidates returns the completion candidates for the current mode
// and command path, for the "?" help command.
func (c *CLI) helpCandidates(words []string) []cmdtree.Candidate {
	tree := cmdtree.OperationalTree
	if c.store.InConfigMode() {
		tree = cmdtree.ConfigTopLevel
	}
	return cmdtree.CompleteFromTreeWithDesc(tree, words, "", c.store)
}
