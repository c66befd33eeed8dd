package config

import "os"

// UploadDir returns the directory photos are stored under. The directory is
// created at startup by cmd/api.
func UploadDir() string {
	dir := os.Getenv("UPLOAD_PATH")
	if dir == "" {
		dir = "./uploads"
	}
	return dir
}
