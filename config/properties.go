package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/getsops/sops/v3/decrypt"
)

const (
	fileExt    = ".json"
	encryptExt = ".enc"
)

var ErrNotFound = errors.New("configuration file not found")

// Properties reads properties[.profile].json from the working directory,
// falling back to properties[.profile].enc.json decrypted with SOPS.
func Properties[T any](profile ...string) (*T, error) {
	return PropertiesIn[T](".", profile...)
}

func PropertiesIn[T any](dir string, profile ...string) (*T, error) {
	config := new(T)
	if err := decodeInto(config, dir, profile...); err != nil {
		return nil, err
	}
	return config, nil
}

// decodeInto decodes the properties over config; fields missing from the file keep their value.
func decodeInto(config any, dir string, profile ...string) error {
	fileName, err := fileNameFor(profile...)
	if err != nil {
		return err
	}
	filePath, isFileEncrypted, err := verifyFilePath(dir, fileName)
	if err != nil {
		return err
	}
	data, err := readData(filePath, isFileEncrypted)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filePath, err)
	}
	return nil
}

func readData(filePath string, isFileEncrypted bool) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}
	if !isFileEncrypted {
		return data, nil
	}
	decrypted, err := decrypt.Data(data, "json")
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt config file %s: %w", filePath, err)
	}
	return decrypted, nil
}

func verifyFilePath(dir, fileName string) (string, bool, error) {
	filePath := filepath.Join(dir, fileName+fileExt)
	if fileExists(filePath) {
		return filePath, false, nil
	}
	encryptedPath := filepath.Join(dir, fileName+encryptExt+fileExt)
	if fileExists(encryptedPath) {
		return encryptedPath, true, nil
	}
	return "", false, fmt.Errorf("%w: neither %s nor %s", ErrNotFound, filePath, encryptedPath)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func fileNameFor(profile ...string) (string, error) {
	name := "properties"

	if len(profile) == 0 {
		return name, nil
	}
	if len(profile) > 1 {
		return "", errors.New("only one profile suffix is allowed")
	}
	if profile[0] == "" {
		return name, nil
	}
	return name + "." + profile[0], nil
}
