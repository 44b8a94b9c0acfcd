// Package config resolves AWS credentials and region for eigenangi.
//
// Three sources are merged, highest precedence first: process environment
// variables, a .env file in the working directory, and a user-level TOML file
// at ~/.config/eigenangi/config.toml. Precedence is per field: for each field
// the first source that supplies a non-empty value wins, independent of what
// the same source supplies for other fields.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"eigenangi/errors"
)

// Environment variable names, matching the AWS convention.
const (
	EnvAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvSessionToken    = "AWS_SESSION_TOKEN"
	EnvDefaultRegion   = "AWS_DEFAULT_REGION"
	EnvRegion          = "AWS_REGION"
)

// dotenvFile is the per-directory override file, read from the working directory.
const dotenvFile = ".env"

// tomlTable is the top-level table holding credentials in the user config file.
const tomlTable = "aws"

// Layer represents one configuration source supplying a partial credential set.
// Any subset of fields may be empty; empty fields defer to lower-precedence layers.
type Layer struct {
	Source          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Region          string
}

// Resolved is the merged, validated configuration handed to the client.
// It is a plain value and never mutated after Resolve returns it.
type Resolved struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Region          string
}

// HasStaticCredentials reports whether the chain supplied an access key pair.
// When it did not, the client falls back to the SDK's default credential chain
// (shared config files, IAM roles).
func (r Resolved) HasStaticCredentials() bool {
	return r.AccessKeyID != "" && r.SecretAccessKey != ""
}

// Resolve reads all configuration layers and merges them.
//
// regionOverride, when non-empty, takes precedence over every layer (it is the
// CLI flag / constructor argument). Missing files are treated as empty layers;
// unparseable files fail with a configuration error. An empty region after the
// merge fails with a credentials error telling the caller how to set one.
func Resolve(regionOverride string) (Resolved, error) {
	dotenv, err := dotenvLayer()
	if err != nil {
		return Resolved{}, err
	}

	userFile, err := tomlLayer()
	if err != nil {
		return Resolved{}, err
	}

	resolved := merge(envLayer(), dotenv, userFile)

	if regionOverride != "" {
		resolved.Region = strings.TrimSpace(regionOverride)
	}

	if resolved.Region == "" {
		return Resolved{}, errors.CredentialsError("AWS region not resolved").
			WithSuggestion(fmt.Sprintf("Set the %s (or %s) environment variable", EnvDefaultRegion, EnvRegion)).
			WithSuggestion(fmt.Sprintf("Add %s to a %s file in the working directory", EnvDefaultRegion, dotenvFile)).
			WithSuggestion(fmt.Sprintf("Add %s under the [%s] table in %s", EnvDefaultRegion, tomlTable, userConfigDescription()))
	}

	return resolved, nil
}

// merge folds the layers in precedence order, taking the first non-empty value
// per field.
func merge(layers ...Layer) Resolved {
	var resolved Resolved
	for _, layer := range layers {
		if resolved.AccessKeyID == "" {
			resolved.AccessKeyID = layer.AccessKeyID
		}
		if resolved.SecretAccessKey == "" {
			resolved.SecretAccessKey = layer.SecretAccessKey
		}
		if resolved.SessionToken == "" {
			resolved.SessionToken = layer.SessionToken
		}
		if resolved.Region == "" {
			resolved.Region = layer.Region
		}
	}
	return resolved
}

// envLayer reads the process environment.
func envLayer() Layer {
	return layerFromValues("environment", os.Getenv(EnvAccessKeyID), os.Getenv(EnvSecretAccessKey),
		os.Getenv(EnvSessionToken), os.Getenv(EnvDefaultRegion), os.Getenv(EnvRegion))
}

// dotenvLayer reads KEY=VALUE pairs from ./.env without touching the process
// environment, so the layer keeps its own precedence slot.
func dotenvLayer() (Layer, error) {
	if _, err := os.Stat(dotenvFile); os.IsNotExist(err) {
		return Layer{Source: dotenvFile}, nil
	}

	values, err := godotenv.Read(dotenvFile)
	if err != nil {
		return Layer{}, errors.ConfigErrorWithCause("failed to parse dotenv file", err).
			WithSuggestion(fmt.Sprintf("Check the syntax of %s (KEY=VALUE lines)", dotenvFile))
	}

	return layerFromValues(dotenvFile, values[EnvAccessKeyID], values[EnvSecretAccessKey],
		values[EnvSessionToken], values[EnvDefaultRegion], values[EnvRegion]), nil
}

// tomlLayer reads the user-level TOML config file. Keys under the [aws] table
// match the environment variable names and are compared case-insensitively.
func tomlLayer() (Layer, error) {
	path, err := UserConfigPath()
	if err != nil {
		// No resolvable home directory; behave like a missing file.
		return Layer{Source: "user config"}, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Layer{Source: path}, nil
	}

	var data map[string]map[string]any
	if _, err := toml.DecodeFile(path, &data); err != nil {
		return Layer{}, errors.ConfigErrorWithCause("failed to parse user config file", err).
			WithSuggestion(fmt.Sprintf("Check the TOML syntax of %s", path))
	}

	section := make(map[string]string, len(data[tomlTable]))
	for key, value := range data[tomlTable] {
		section[strings.ToUpper(key)] = fmt.Sprintf("%v", value)
	}

	return layerFromValues(path, section[EnvAccessKeyID], section[EnvSecretAccessKey],
		section[EnvSessionToken], section[EnvDefaultRegion], section[EnvRegion]), nil
}

// layerFromValues builds a Layer, trimming whitespace so that blank values
// defer to lower-precedence layers. The region falls back from
// AWS_DEFAULT_REGION to AWS_REGION within the same layer.
func layerFromValues(source, accessKey, secretKey, sessionToken, defaultRegion, region string) Layer {
	resolvedRegion := strings.TrimSpace(defaultRegion)
	if resolvedRegion == "" {
		resolvedRegion = strings.TrimSpace(region)
	}

	return Layer{
		Source:          source,
		AccessKeyID:     strings.TrimSpace(accessKey),
		SecretAccessKey: strings.TrimSpace(secretKey),
		SessionToken:    strings.TrimSpace(sessionToken),
		Region:          resolvedRegion,
	}
}

// UserConfigPath returns the fixed per-user TOML config location.
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "eigenangi", "config.toml"), nil
}

func userConfigDescription() string {
	if path, err := UserConfigPath(); err == nil {
		return path
	}
	return "~/.config/eigenangi/config.toml"
}
