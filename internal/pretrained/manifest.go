package pretrained

import "fmt"

type Manifest struct {
	Name  string      `json:"name"`
	Repo  string      `json:"repo"`
	Files []AssetFile `json:"files"`
}

type AssetFile struct {
	Filename string `json:"filename"`
	Revision string `json:"revision"`
	SHA256   string `json:"sha256"`
}

// PinnedManifest maps a pretrained tokenizer name to the Hub files it needs.
// Vocabulary files are plain git blobs without sha256 Hub metadata, so their
// checksums are left empty here and pinned into the local lock manifest on
// first download.
func PinnedManifest(name string) (Manifest, error) {
	switch name {
	case "bert-base-uncased":
		return Manifest{
			Name: name,
			Repo: "bert-base-uncased",
			Files: []AssetFile{
				{Filename: "vocab.txt", Revision: "main"},
				{Filename: "special_tokens_map.json", Revision: "main"},
			},
		}, nil
	case "bert-base-cased":
		return Manifest{
			Name: name,
			Repo: "bert-base-cased",
			Files: []AssetFile{
				{Filename: "vocab.txt", Revision: "main"},
				{Filename: "special_tokens_map.json", Revision: "main"},
			},
		}, nil
	case "opus-mt-en-de":
		return Manifest{
			Name: name,
			Repo: "Helsinki-NLP/opus-mt-en-de",
			Files: []AssetFile{
				{Filename: "vocab.json", Revision: "main"},
				{Filename: "source.spm", Revision: "main"},
			},
		}, nil
	default:
		return Manifest{}, fmt.Errorf(
			"no pinned manifest for %q (known: bert-base-uncased|bert-base-cased|opus-mt-en-de)", name)
	}
}
