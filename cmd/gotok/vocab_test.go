package main

import (
	"strings"
	"testing"
)

func TestCollectVocabInfo_Basic(t *testing.T) {
	cfg := basicTestConfig(t)

	info, err := collectVocabInfo(cfg)
	if err != nil {
		t.Fatalf("collectVocabInfo: %v", err)
	}

	if info.Family != "basic" {
		t.Errorf("Family = %q, want basic", info.Family)
	}
	if info.Size != 5 {
		t.Errorf("Size = %d, want 5", info.Size)
	}
	if info.Unknown != "[UNK]" || info.UnknownID != 0 {
		t.Errorf("Unknown = %q (id %d), want [UNK] (id 0)", info.Unknown, info.UnknownID)
	}
	// The bare layout inserts nothing.
	if info.ReservedSingle != 0 || info.ReservedPair != 0 {
		t.Errorf("reserved = %d/%d, want 0/0", info.ReservedSingle, info.ReservedPair)
	}
}

func TestCollectVocabInfo_IgnoresRunOnlyEncodeOptions(t *testing.T) {
	cfg := basicTestConfig(t)
	// Padding is unsupported by the basic family, but vocab info must not
	// fail over a per-run encode option.
	cfg.Encode.PadToMaxLength = true
	cfg.Encode.NoSpecialTokens = true

	_, err := collectVocabInfo(cfg)
	if err != nil {
		t.Fatalf("collectVocabInfo: %v", err)
	}
}

func TestRenderVocabInfo_Lines(t *testing.T) {
	info := vocabInfo{
		Family:         "bert",
		VocabPath:      "vocab.txt",
		Size:           30522,
		Unknown:        "[UNK]",
		UnknownID:      100,
		Specials:       []string{"[PAD]", "[UNK]", "[CLS]", "[SEP]", "[MASK]"},
		ReservedSingle: 2,
		ReservedPair:   3,
	}

	var buf strings.Builder
	renderVocabInfo(&buf, info)
	out := buf.String()

	for _, want := range []string{"family:", "bert", "size:", "30522", "[MASK]", "2 single, 3 pair"} {
		if !strings.Contains(out, want) {
			t.Errorf("vocab info output missing %q:\n%s", want, out)
		}
	}
}
