package config

// Defaults returns the default configuration: a single group of 3-of-5
// member shares behind a group threshold of 1, matching the simplest
// useful sharing layout a new user would reach for.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.slip39",
		Sharing: SharingConfig{
			IterationExponent:     1,
			DefaultGroupThreshold: 1,
			DefaultGroups: []GroupTemplate{
				{MemberThreshold: 3, MemberCount: 5},
			},
		},
		Encryption: EncryptionConfig{
			Method:        "age",
			IdentityFile:  "~/.slip39/identity.age",
			KeyDerivation: "scrypt",
		},
		Derivation: DerivationConfig{
			DefaultPath: "m/44'/0'/0'/0/0",
			Paths:       map[string]string{},
		},
		Security: SecurityConfig{
			MemoryLock: true,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.slip39/slip39.log",
		},
	}
}
