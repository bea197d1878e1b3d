// Package lists understands "criar lista de X com a e b" and
// "adicionar a à lista de X". Lists are never stored.
package lists

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/varsilias/crystal/internal/locale"
)

const (
	MsgCreateUnclear = "Não entendi o nome da lista ou os itens. Tente 'criar lista de compras com leite e pão'."
	MsgAddUnclear    = "Não entendi o item a adicionar ou o nome da lista. Tente 'adicionar ovos à lista de compras'."
)

var (
	createPattern = regexp.MustCompile(`criar lista de (tarefas|compras|(.+?)) com (.+)`)
	addPattern    = regexp.MustCompile(`adicionar (.+?) à lista de (tarefas|compras|(.+))`)
	itemSep       = regexp.MustCompile(`\s*,\s*|\s+e\s+`)
)

type Op int

const (
	OpCreate Op = iota + 1
	OpAdd
)

// Command is a parsed list instruction.
type Command struct {
	Op    Op
	Name  string
	Items []string
}

// Parse reads a list command from folded input.
func Parse(text string) (Command, bool) {
	if m := createPattern.FindStringSubmatch(text); m != nil {
		return Command{Op: OpCreate, Name: strings.TrimSpace(m[1]), Items: splitItems(m[3])}, true
	}
	if m := addPattern.FindStringSubmatch(text); m != nil {
		var items []string
		if item := strings.TrimSpace(m[1]); item != "" {
			items = []string{item}
		}
		return Command{Op: OpAdd, Name: strings.TrimSpace(m[2]), Items: items}, true
	}
	return Command{}, false
}

// Matches reports whether text is a list command.
func Matches(text string) bool {
	return createPattern.MatchString(text) || addPattern.MatchString(text)
}

func splitItems(s string) []string {
	var out []string
	for _, it := range itemSep.Split(s, -1) {
		if it = strings.Trim(strings.TrimSpace(it), "."); it != "" {
			out = append(out, it)
		}
	}
	return out
}

// Reply answers a list command with a simulated confirmation.
func Reply(text string) (string, bool) {
	cmd, ok := Parse(text)
	if !ok {
		return "", false
	}
	switch cmd.Op {
	case OpCreate:
		if cmd.Name == "" || len(cmd.Items) == 0 {
			return MsgCreateUnclear, true
		}
		return fmt.Sprintf("Criei a lista '%s' com os itens: %s. (Simulado)",
			locale.Capitalize(cmd.Name), strings.Join(cmd.Items, ", ")), true
	default:
		if cmd.Name == "" || len(cmd.Items) == 0 {
			return MsgAddUnclear, true
		}
		return fmt.Sprintf("Adicionei '%s' à sua lista de '%s'. (Simulado)",
			cmd.Items[0], locale.Capitalize(cmd.Name)), true
	}
}
