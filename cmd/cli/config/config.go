package config

import (
	"os"
	"path/filepath"
)

const defaultAPIURL = "http://localhost:8080"
const tokenFileName = ".sharebnb_token"

// APIURL returns the base URL for the ShareBnB API.
// It can be overridden with the SHAREBNB_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("SHAREBNB_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// SaveToken stores the JWT token in the user's home directory for later commands.
func SaveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

// LoadToken reads the locally stored JWT token.
func LoadToken() (string, error) {
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ClearToken removes the locally stored token. Missing file is not an error.
func ClearToken() error {
	err := os.Remove(tokenPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func tokenPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}
