package config

import (
	"os"
	"path/filepath"
)

const defaultAPIURL = "http://localhost:8080"

// The token lives at ~/.technexus/token.
const (
	configDirName = ".technexus"
	tokenFileName = "token"
)

// APIURL returns the base URL for the blog API.
// It can be overridden with the BLOG_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("BLOG_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// SaveToken stores the JWT token under the user's config directory (mode 0600),
// creating the directory if needed.
func SaveToken(token string) error {
	if err := os.MkdirAll(configDir(), 0700); err != nil {
		return err
	}
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

// LoadToken returns the locally stored JWT token, or "" when not logged in.
func LoadToken() string {
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return ""
	}
	return string(data)
}

// RemoveToken deletes the stored token. Missing file is not an error.
func RemoveToken() error {
	err := os.Remove(tokenPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func configDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, configDirName)
}

func tokenPath() string {
	return filepath.Join(configDir(), tokenFileName)
}
