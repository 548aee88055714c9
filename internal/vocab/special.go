package vocab

import (
	"encoding/json"
	"fmt"
	"os"
)

// SpecialTokenMap names the special tokens a tokenizer family uses. Only the
// unknown token is mandatory; the remaining entries are optional and empty
// strings mean "not used by this family". The JSON field names follow the
// special_tokens_map.json convention shipped with pretrained models.
type SpecialTokenMap struct {
	Unknown    string   `json:"unk_token"`
	Padding    string   `json:"pad_token,omitempty"`
	BOS        string   `json:"bos_token,omitempty"`
	EOS        string   `json:"eos_token,omitempty"`
	Separator  string   `json:"sep_token,omitempty"`
	Class      string   `json:"cls_token,omitempty"`
	Mask       string   `json:"mask_token,omitempty"`
	Additional []string `json:"additional_special_tokens,omitempty"`
}

// LoadSpecialTokenMap reads a special token mapping from a JSON file. The
// mapping must name an unknown token.
func LoadSpecialTokenMap(path string) (SpecialTokenMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SpecialTokenMap{}, fmt.Errorf("open special token map %q: %w", path, err)
	}

	var m SpecialTokenMap
	if err := json.Unmarshal(data, &m); err != nil {
		return SpecialTokenMap{}, fmt.Errorf("decode special token map %q: %w", path, err)
	}
	if m.Unknown == "" {
		return SpecialTokenMap{}, fmt.Errorf("special token map %q has no unk_token: %w", path, ErrInvalidVocabulary)
	}
	return m, nil
}

// Tokens returns every non-empty token named by the map, additional tokens
// last. The order is stable so registration errors are deterministic.
func (m SpecialTokenMap) Tokens() []string {
	out := make([]string, 0, 7+len(m.Additional))
	for _, token := range []string{m.Unknown, m.Padding, m.BOS, m.EOS, m.Separator, m.Class, m.Mask} {
		if token != "" {
			out = append(out, token)
		}
	}
	out = append(out, m.Additional...)
	return out
}

// RegisterOn registers every token named by the map as a special token on v.
// The padding token, when defined, must be distinct from the unknown token so
// padded positions never alias out-of-vocabulary content.
func (m SpecialTokenMap) RegisterOn(v *Vocabulary) error {
	if m.Padding != "" && m.Padding == m.Unknown {
		return fmt.Errorf("padding token %q must differ from the unknown token: %w", m.Padding, ErrInvalidVocabulary)
	}
	return v.Register(m.Tokens()...)
}
