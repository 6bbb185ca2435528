package iooma

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnames/gnsys"
)

const downloadTimeout = 10 * time.Minute

// Fetch downloads the zipped OMA export and unpacks it into dataDir.
// It is a no-op when dataDir already contains files, so repeated runs do
// not re-download a multi-hundred-megabyte archive.
func Fetch(ctx context.Context, url, dataDir string) error {
	if err := gnsys.MakeDir(dataDir); err != nil {
		return DataDirError(dataDir, err)
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return DataDirError(dataDir, err)
	}
	if len(entries) > 0 {
		slog.Info("OMA export already present, skipping download",
			"dir", dataDir, "files", len(entries))
		return nil
	}

	zipPath := filepath.Join(filepath.Dir(dataDir), "OMA_orthologs.zip")
	if _, err := os.Stat(zipPath); err != nil {
		slog.Info("Downloading OMA export", "url", url)
		if err := download(ctx, url, zipPath); err != nil {
			return err
		}
	} else {
		slog.Info("Using previously downloaded archive", "path", zipPath)
	}

	slog.Info("Unpacking OMA export", "dir", dataDir)
	return unzip(zipPath, dataDir)
}

func download(ctx context.Context, url, dest string) error {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return DownloadError(url, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return DownloadError(url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return DownloadError(url,
			fmt.Errorf("unexpected status %s", resp.Status))
	}

	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return DownloadError(url, err)
	}
	if _, err = io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return DownloadError(url, err)
	}
	if err = out.Close(); err != nil {
		return DownloadError(url, err)
	}
	return os.Rename(tmp, dest)
}

func unzip(zipPath, destDir string) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return UnzipError(zipPath, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		// Flatten: export archives nest files under a top directory.
		name := filepath.Base(f.Name)
		if strings.HasPrefix(name, ".") {
			continue
		}
		if err := extractFile(f, filepath.Join(destDir, name)); err != nil {
			return UnzipError(zipPath, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, dest string) error {
	in, err := f.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
