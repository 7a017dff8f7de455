package fs

import (
	"errors"
	"fmt"
	"os"
)

// LocalFileSystem implements FileSystemPort on top of the os package.
type LocalFileSystem struct{}

func NewLocalFileSystem() *LocalFileSystem {
	return &LocalFileSystem{}
}

// Creates a directory and any missing parents. Succeeds if the directory
// already exists; fails if the path exists but is not a directory.
func (lfs *LocalFileSystem) CreateDir(dirPath string, permission os.FileMode) error {
	stat, err := os.Stat(dirPath)
	if err == nil {
		if !stat.IsDir() {
			return fmt.Errorf("existing path %s isn't a directory", dirPath)
		}
		return nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(dirPath, permission); err != nil {
		return fmt.Errorf("error in creating all directories %s : %w", dirPath, err)
	}
	return nil
}

// Writes to a file and flushes it to stable storage.
func (lfs *LocalFileSystem) WriteFile(filePath string, permission os.FileMode, contents []byte) error {
	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, permission)
	if err != nil {
		return err
	}

	if _, err := file.Write(contents); err != nil {
		file.Close()
		return err
	}

	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

// Read file contents.
func (lfs *LocalFileSystem) ReadFile(filePath string) ([]byte, error) {
	return os.ReadFile(filePath)
}

// Deletes a file.
func (lfs *LocalFileSystem) DeleteFile(filePath string) error {
	return os.Remove(filePath)
}

// Renames a file, replacing the destination if it exists.
func (lfs *LocalFileSystem) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// Checks if a file exists or not.
func (lfs *LocalFileSystem) Exists(file string) (bool, error) {
	_, err := os.Stat(file)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
