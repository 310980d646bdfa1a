package crypto

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AlexZinkM/near-credentials/internal/model"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

var (
	ErrEmptyFile         = errors.New("file is empty")
	ErrNotAFile          = errors.New("path is a directory")
	ErrMissingPrivateKey = errors.New("private_key field is missing")
)

// ReadKeyFile reads and parses a <accountId>.json credential file.
// Filesystem errors are wrapped with %w, so fs.ErrNotExist survives.
func ReadKeyFile(fs billy.Filesystem, filePath string) (*model.KeyFile, error) {
	fileInfo, err := fs.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, ErrNotAFile
	}

	// Check that file is not empty
	if fileInfo.Size() == 0 {
		return nil, ErrEmptyFile
	}

	fileData, err := util.ReadFile(fs, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Skip UTF-8 BOM if present
	if len(fileData) >= 3 && fileData[0] == 0xEF && fileData[1] == 0xBB && fileData[2] == 0xBF {
		fileData = fileData[3:]
	}

	var keyFile model.KeyFile
	if err := json.Unmarshal(fileData, &keyFile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal key file: %w", err)
	}

	if keyFile.PrivateKey == "" {
		return nil, ErrMissingPrivateKey
	}

	return &keyFile, nil
}
