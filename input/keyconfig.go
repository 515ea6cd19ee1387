package input

import (
	"fmt"
	"strings"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"quote":     '"',
}

// KeyConfig is the decoded [keys.*] configuration: section → key → action name
type KeyConfig map[string]map[string]string

// Section names accepted in KeyConfig
const (
	SectionNormal     = "normal"
	SectionNormalKeys = "normal_keys"
	SectionVisual     = "visual"
	SectionOperator   = "operator"
	SectionPrefixG    = "prefix_g"
	SectionPrefixZ    = "prefix_z"
)

// ParseKeyConfig converts decoded key sections into a sparse override KeyTable
// Only sections/keys present are populated
// Returns error on unknown sections, action names or key names
func ParseKeyConfig(cfg KeyConfig) (*KeyTable, error) {
	kt := &KeyTable{}

	for section, bindings := range cfg {
		if section == SectionNormalKeys {
			keyMap, err := parseSpecialKeySection(section, bindings)
			if err != nil {
				return nil, err
			}
			kt.SpecialKeys = keyMap
			continue
		}

		runeMap, err := parseRuneSection(section, bindings)
		if err != nil {
			return nil, err
		}
		switch section {
		case SectionNormal:
			kt.NormalRunes = runeMap
		case SectionVisual:
			kt.VisualRunes = runeMap
		case SectionOperator:
			kt.OperatorMotions = runeMap
		case SectionPrefixG, SectionPrefixZ:
			if kt.Prefixes == nil {
				kt.Prefixes = make(map[rune]map[rune]KeyEntry)
			}
			kt.Prefixes[rune(section[len(section)-1])] = runeMap
		default:
			return nil, fmt.Errorf("unknown key section: [%s]", section)
		}
	}

	return kt, nil
}

// parseRuneSection parses a section of rune key → action name bindings
func parseRuneSection(section string, data map[string]string) (map[rune]KeyEntry, error) {
	result := make(map[rune]KeyEntry, len(data))

	for keyStr, actionName := range data {
		r, err := resolveRune(keyStr)
		if err != nil {
			return nil, fmt.Errorf("[%s] key %q: %w", section, keyStr, err)
		}

		entry, err := resolveAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("[%s] key %q: %w", section, keyStr, err)
		}

		result[r] = entry
	}

	return result, nil
}

// parseSpecialKeySection parses a section of key name or tag → action name bindings
// Keys are names ("esc", "pagedown") or bracket tags ("<C-r>")
func parseSpecialKeySection(section string, data map[string]string) (map[Key]KeyEntry, error) {
	result := make(map[Key]KeyEntry, len(data))

	for keyStr, actionName := range data {
		k, ok := resolveKey(keyStr)
		if !ok {
			return nil, fmt.Errorf("[%s] unknown key name: %q", section, keyStr)
		}

		entry, err := resolveAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("[%s] key %q: %w", section, keyStr, err)
		}

		result[k] = entry
	}

	return result, nil
}

func resolveKey(s string) (Key, bool) {
	if n, ok := KeyByName(s); ok {
		return NamedKey(n), true
	}
	keys := ParseKeys(s)
	if len(keys) != 1 || keys[0].Printable() {
		return Key{}, false
	}
	return keys[0], true
}

// resolveRune converts a config key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

// resolveAction converts an action name string to a KeyEntry
func resolveAction(name string) (KeyEntry, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	entry, ok := ActionEntry(name)
	if !ok {
		return KeyEntry{}, fmt.Errorf("unknown action: %q", name)
	}
	return entry, nil
}

// MergeKeyTable returns a new KeyTable with base values overridden by non-nil override maps
// Override entries with BehaviorNone ("none" action) delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()

	mergeEntries(result.SpecialKeys, override.SpecialKeys)
	mergeEntries(result.NormalRunes, override.NormalRunes)
	mergeEntries(result.VisualRunes, override.VisualRunes)
	mergeEntries(result.OperatorMotions, override.OperatorMotions)
	for p, m := range override.Prefixes {
		if result.Prefixes[p] == nil {
			result.Prefixes[p] = make(map[rune]KeyEntry)
		}
		mergeEntries(result.Prefixes[p], m)
	}

	return result
}

func mergeEntries[K comparable](base, override map[K]KeyEntry) {
	for k, v := range override {
		if v.Behavior == BehaviorNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
