package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths     PathsConfig     `mapstructure:"paths"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Encode    EncodeConfig    `mapstructure:"encode"`
	Runtime   RuntimeConfig   `mapstructure:"runtime"`
	LogLevel  string          `mapstructure:"log_level"`
}

type PathsConfig struct {
	VocabPath     string `mapstructure:"vocab_path"`
	ModelPath     string `mapstructure:"model_path"`
	SpecialTokens string `mapstructure:"special_tokens"`
	CacheDir      string `mapstructure:"cache_dir"`
}

type TokenizerConfig struct {
	Family         string `mapstructure:"family"`
	Lowercase      bool   `mapstructure:"lowercase"`
	StripAccents   bool   `mapstructure:"strip_accents"`
	AddPrefixSpace bool   `mapstructure:"add_prefix_space"`
}

type EncodeConfig struct {
	MaxLength       int    `mapstructure:"max_length"`
	Strategy        string `mapstructure:"strategy"`
	Stride          int    `mapstructure:"stride"`
	NoSpecialTokens bool   `mapstructure:"no_special_tokens"`
	PadToMaxLength  bool   `mapstructure:"pad_to_max_length"`
}

type RuntimeConfig struct {
	Workers int `mapstructure:"workers"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			VocabPath:     "models/bert-base-uncased/vocab.txt",
			ModelPath:     "",
			SpecialTokens: "",
			CacheDir:      "models",
		},
		Tokenizer: TokenizerConfig{
			Family:         FamilyBert,
			Lowercase:      true,
			StripAccents:   false,
			AddPrefixSpace: false,
		},
		Encode: EncodeConfig{
			MaxLength:       128,
			Strategy:        "longest_first",
			Stride:          0,
			NoSpecialTokens: false,
			PadToMaxLength:  false,
		},
		Runtime: RuntimeConfig{
			Workers: 0,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-vocab-path", defaults.Paths.VocabPath, "Path to vocabulary file (flat .txt or .json)")
	fs.String("paths-model-path", defaults.Paths.ModelPath, "Path to SentencePiece .spm model (marian family)")
	fs.String("paths-special-tokens", defaults.Paths.SpecialTokens, "Path to special_tokens_map.json overriding family defaults")
	fs.String("paths-cache-dir", defaults.Paths.CacheDir, "Directory for downloaded pretrained assets")
	fs.String("tokenizer-family", defaults.Tokenizer.Family, "Tokenizer family: basic|bert|marian")
	fs.Bool("tokenizer-lowercase", defaults.Tokenizer.Lowercase, "Lowercase input before segmentation")
	fs.Bool("tokenizer-strip-accents", defaults.Tokenizer.StripAccents, "Strip combining accents before segmentation")
	fs.Bool("tokenizer-add-prefix-space", defaults.Tokenizer.AddPrefixSpace, "Prepend a space before segmentation")
	fs.Int("encode-max-length", defaults.Encode.MaxLength, "Maximum encoded sequence length, special tokens included")
	fs.String("encode-strategy", defaults.Encode.Strategy, "Truncation strategy: longest_first|only_first|only_second|do_not_truncate")
	fs.Int("encode-stride", defaults.Encode.Stride, "Overflow window size kept per truncated encoding")
	fs.Bool("encode-no-special-tokens", defaults.Encode.NoSpecialTokens, "Disable special-token insertion")
	fs.Bool("encode-pad-to-max-length", defaults.Encode.PadToMaxLength, "Right-pad encodings to the maximum length")
	fs.Int("runtime-workers", defaults.Runtime.Workers, "Batch worker count (0 = one per CPU)")
	fs.String("log-level", defaults.LogLevel, "Log level: debug|info|warn|error")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("GOTOK")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("paths.cache_dir", "GOTOK_CACHE_DIR", "GOTOKENIZERS_HOME"); err != nil {
		return Config{}, fmt.Errorf("bind cache dir env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("gotok")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.vocab_path", c.Paths.VocabPath)
	v.SetDefault("paths.model_path", c.Paths.ModelPath)
	v.SetDefault("paths.special_tokens", c.Paths.SpecialTokens)
	v.SetDefault("paths.cache_dir", c.Paths.CacheDir)
	v.SetDefault("tokenizer.family", c.Tokenizer.Family)
	v.SetDefault("tokenizer.lowercase", c.Tokenizer.Lowercase)
	v.SetDefault("tokenizer.strip_accents", c.Tokenizer.StripAccents)
	v.SetDefault("tokenizer.add_prefix_space", c.Tokenizer.AddPrefixSpace)
	v.SetDefault("encode.max_length", c.Encode.MaxLength)
	v.SetDefault("encode.strategy", c.Encode.Strategy)
	v.SetDefault("encode.stride", c.Encode.Stride)
	v.SetDefault("encode.no_special_tokens", c.Encode.NoSpecialTokens)
	v.SetDefault("encode.pad_to_max_length", c.Encode.PadToMaxLength)
	v.SetDefault("runtime.workers", c.Runtime.Workers)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("paths.vocab_path", "paths-vocab-path")
	v.RegisterAlias("paths.model_path", "paths-model-path")
	v.RegisterAlias("paths.special_tokens", "paths-special-tokens")
	v.RegisterAlias("paths.cache_dir", "paths-cache-dir")
	v.RegisterAlias("tokenizer.family", "tokenizer-family")
	v.RegisterAlias("tokenizer.lowercase", "tokenizer-lowercase")
	v.RegisterAlias("tokenizer.strip_accents", "tokenizer-strip-accents")
	v.RegisterAlias("tokenizer.add_prefix_space", "tokenizer-add-prefix-space")
	v.RegisterAlias("encode.max_length", "encode-max-length")
	v.RegisterAlias("encode.strategy", "encode-strategy")
	v.RegisterAlias("encode.stride", "encode-stride")
	v.RegisterAlias("encode.no_special_tokens", "encode-no-special-tokens")
	v.RegisterAlias("encode.pad_to_max_length", "encode-pad-to-max-length")
	v.RegisterAlias("runtime.workers", "runtime-workers")
	v.RegisterAlias("log_level", "log-level")
}
