package ports

import "os"

// Defines the file system operations the snapshot store depends on.
type FileSystemPort interface {
	CreateDir(dirPath string, permission os.FileMode) error
	WriteFile(filePath string, permission os.FileMode, contents []byte) error
	ReadFile(filePath string) ([]byte, error)
	DeleteFile(filePath string) error
	Rename(oldPath, newPath string) error
	Exists(filePath string) (bool, error)
}
