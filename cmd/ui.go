package cmd

import (
	"path/filepath"

	"github.com/koso-app/koso/internal/app"
)

func defaultDBPath() string {
	dir, err := app.GetAppDataDir()
	if err != nil {
		return "Unknown"
	}
	return filepath.Join(dir, "koso.db")
}
