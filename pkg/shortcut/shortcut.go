package shortcut

import (
	"fmt"
	"strings"

	"github.com/hamidzr/displaymode/model"
)

var modifierNames = map[string]model.Modifier{
	"ctrl":    model.ModCtrl,
	"control": model.ModCtrl,
	"shift":   model.ModShift,
	"option":  model.ModOption,
	"opt":     model.ModOption,
	"alt":     model.ModOption,
	"cmd":     model.ModCmd,
	"command": model.ModCmd,
	"super":   model.ModCmd,
}

// keyAliases maps alternative spellings to the canonical key name.
var keyAliases = map[string]string{
	"enter": "return",
	"esc":   "escape",
	"del":   "delete",
}

var namedKeys = map[string]bool{
	"space": true, "return": true, "escape": true, "tab": true, "delete": true,
	"left": true, "right": true, "up": true, "down": true,
}

// IsKey reports whether name is a canonical key name Parse can produce.
func IsKey(name string) bool {
	if namedKeys[name] {
		return true
	}
	if len(name) == 1 {
		c := name[0]
		return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
	}
	var n int
	if _, err := fmt.Sscanf(name, "f%d", &n); err == nil {
		return fmt.Sprintf("f%d", n) == name && n >= 1 && n <= 20
	}
	return false
}

// Parse reads a chord like "ctrl+option+1". Tokens are case-insensitive,
// modifiers may come in any order and the last token is the key.
func Parse(s string) (model.Chord, error) {
	tokens := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(tokens) < 2 {
		return model.Chord{}, fmt.Errorf("shortcut %q needs at least one modifier and a key", s)
	}

	mods := make(map[model.Modifier]bool, len(tokens)-1)
	for _, tok := range tokens[:len(tokens)-1] {
		tok = strings.TrimSpace(tok)
		mod, ok := modifierNames[tok]
		if !ok {
			return model.Chord{}, fmt.Errorf("shortcut %q: unknown modifier %q", s, tok)
		}
		if mods[mod] {
			return model.Chord{}, fmt.Errorf("shortcut %q: modifier %q repeated", s, tok)
		}
		mods[mod] = true
	}

	key := strings.TrimSpace(tokens[len(tokens)-1])
	if alias, ok := keyAliases[key]; ok {
		key = alias
	}
	if !IsKey(key) {
		return model.Chord{}, fmt.Errorf("shortcut %q: unknown key %q", s, key)
	}

	chord := model.Chord{Key: key}
	for _, mod := range model.ModifierOrder {
		if mods[mod] {
			chord.Modifiers = append(chord.Modifiers, mod)
		}
	}
	return chord, nil
}

// Canonical returns the normalized spelling of a chord, so that
// "Option+Ctrl+1" and "ctrl+alt+1" compare equal.
func Canonical(s string) (string, error) {
	chord, err := Parse(s)
	if err != nil {
		return "", err
	}
	return chord.String(), nil
}
